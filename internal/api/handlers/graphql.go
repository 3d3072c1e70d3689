package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"freight-route-service/internal/api/dto"
	"freight-route-service/internal/ports"
	"net/http"

	"github.com/graphql-go/graphql"
)

type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

var legType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Leg",
	Fields: graphql.Fields{
		"seq":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"from":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"to":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"mode":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"distance_km":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"duration_hours": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"price":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"local_service":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var planType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Plan",
	Fields: graphql.Fields{
		"origin":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"destination":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"criterion":            &graphql.Field{Type: graphql.String},
		"total_price":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"total_hours":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"leg_count":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"first_line_haul_mode": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"last_line_haul_mode":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"pickup":               &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"delivery":             &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"legs":                 &graphql.Field{Type: graphql.NewList(legType)},
	},
})

// NewPlanSchema exposes the planner as a GraphQL "plans" query.
func NewPlanSchema(planner ports.RoutePlanner, rules ports.RulesSource) (graphql.Schema, error) {
	h := &PlanHandler{Planner: planner, Rules: rules}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"plans": &graphql.Field{
				Type: graphql.NewList(planType),
				Args: graphql.FieldConfigArgument{
					"origin":                 &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"pickup":                 &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"delivery":               &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"criterion":              &graphql.ArgumentConfig{Type: graphql.String},
					"max_legs":               &graphql.ArgumentConfig{Type: graphql.Int},
					"max_driver_distance_km": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					req := dto.PlanRequest{}
					req.Origin, _ = p.Args["origin"].(string)
					req.Destination, _ = p.Args["destination"].(string)
					req.Pickup, _ = p.Args["pickup"].(bool)
					req.Delivery, _ = p.Args["delivery"].(bool)
					req.Criterion, _ = p.Args["criterion"].(string)
					if v, ok := p.Args["max_legs"].(int); ok {
						req.MaxLegs = &v
					}
					if v, ok := p.Args["max_driver_distance_km"].(float64); ok {
						req.MaxDriverDistanceKm = &v
					}

					res, err := h.plan(p.Context, req)
					if err != nil {
						_, msg := planErrorStatus(err)
						return nil, errors.New(msg)
					}
					return res.Plans, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("new plan schema: %w", err)
	}
	return schema, nil
}

// GraphQL serves POST requests against a schema.
type GraphQL struct {
	Schema graphql.Schema
}

func (h *GraphQL) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req graphQLRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	writeJSON(w, r, http.StatusOK, result)
}
