package seed

import (
	"encoding/json"
	"fmt"
	"freight-route-service/internal/domain"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type City struct {
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

type Edge struct {
	From          string  `json:"from" validate:"required"`
	To            string  `json:"to" validate:"required,nefield=From"`
	Mode          string  `json:"mode" validate:"required,oneof=ship rail driver big_truck small_truck"`
	DistanceKm    float64 `json:"distance_km" validate:"gte=0"`
	DurationHours float64 `json:"duration_hours" validate:"gte=0"`
	Price         float64 `json:"price" validate:"gte=0"`
}

// Network is the on-disk form of a transport network.
type Network struct {
	Cities []City `json:"cities" validate:"dive"`
	Edges  []Edge `json:"edges" validate:"dive"`
}

// ReadFile loads and validates a network seed file.
func ReadFile(path string) (*Network, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: read %q: %w", path, err)
	}

	n, err := Parse(bytes)
	if err != nil {
		return nil, fmt.Errorf("read seed %q: %w", path, err)
	}
	return n, nil
}

func Parse(data []byte) (*Network, error) {
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parse seed: parse json: %w", err)
	}

	for i := range n.Cities {
		n.Cities[i].Name = strings.TrimSpace(n.Cities[i].Name)
	}
	for i := range n.Edges {
		n.Edges[i].From = strings.TrimSpace(n.Edges[i].From)
		n.Edges[i].To = strings.TrimSpace(n.Edges[i].To)
		n.Edges[i].Mode = strings.ToLower(strings.TrimSpace(n.Edges[i].Mode))
	}

	if err := validate.Struct(n); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]struct{}, len(n.Cities))
	for i, c := range n.Cities {
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("parse seed: duplicate city %q at index %d", c.Name, i)
		}
		seen[c.Name] = struct{}{}
	}

	return &n, nil
}

func (n *Network) DomainCities() []domain.City {
	out := make([]domain.City, 0, len(n.Cities))
	for _, c := range n.Cities {
		out = append(out, domain.City{
			Name:        c.Name,
			Coordinates: domain.Coordinates{Lat: c.Lat, Lon: c.Lon},
		})
	}
	return out
}

func (n *Network) DomainEdges() ([]domain.Edge, error) {
	out := make([]domain.Edge, 0, len(n.Edges))
	for i, e := range n.Edges {
		m, err := domain.ParseMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("seed edge %d: %w", i, err)
		}
		out = append(out, domain.Edge{
			From:          e.From,
			To:            e.To,
			Mode:          m,
			DistanceKm:    e.DistanceKm,
			DurationHours: e.DurationHours,
			Price:         e.Price,
		})
	}
	return out, nil
}
