package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"freight-route-service/internal/api/dto"
	"freight-route-service/internal/platform/obs"
	"freight-route-service/internal/ports"
	"freight-route-service/internal/services"
	"io"
	"log"
	"net/http"
)

type PlanHandler struct {
	Planner ports.RoutePlanner
	Rules   ports.RulesSource
}

// Plan returns the candidate freight plans for one origin/destination query.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	res, err := h.plan(r.Context(), req)
	if err != nil {
		status, msg := planErrorStatus(err)
		if status == http.StatusInternalServerError {
			reqID := obs.RequestID(r.Context())
			log.Printf("req_id=%s plan route failed: %v", reqID, err)
		}
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PlanHandler) plan(ctx context.Context, req dto.PlanRequest) (dto.ListPlanResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ListPlanResponse{}, err
	}

	rules := req.ApplyTo(h.Rules.Snapshot())
	plans, err := h.Planner.Plan(ctx, req.Query(), rules)
	if err != nil {
		return dto.ListPlanResponse{}, err
	}

	return dto.NewListPlanResponse(plans), nil
}

func planErrorStatus(err error) (int, string) {
	if errors.Is(err, dto.ErrInvalidRequest) ||
		errors.Is(err, services.ErrInvalidQuery) ||
		errors.Is(err, services.ErrInvalidRules) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
