package handlers

import (
	"freight-route-service/internal/api/dto"
	"freight-route-service/internal/domain"
	"net/http"
)

type CityHandler struct {
	Cities []domain.City
}

// List returns every city with known coordinates.
func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListCityResponse{Cities: make([]dto.CityResponse, 0, len(h.Cities))}
	for _, c := range h.Cities {
		res.Cities = append(res.Cities, dto.CityResponse{
			Name: c.Name,
			Lat:  c.Coordinates.Lat,
			Lon:  c.Coordinates.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
