package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
)

func (s *Server) registerLocationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRootLocations",
		Method:      http.MethodGet,
		Path:        "/api/v1/locations/roots",
		Summary:     "List root locations",
		Description: "Returns all rooms in the location tree",
		Tags:        []string{"Locations"},
	}, s.handleListRootLocations)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLocationChildren",
		Method:      http.MethodGet,
		Path:        "/api/v1/locations/{id}/children",
		Summary:     "List location children",
		Description: "Returns the direct children of a location node",
		Tags:        []string{"Locations"},
	}, s.handleListLocationChildren)
}

// === DTOs ===

type LocationResponse struct {
	ID       int64  `json:"id" doc:"Location ID"`
	Name     string `json:"name" doc:"Location name"`
	ParentID int64  `json:"parent_id,omitempty" doc:"Parent location ID, absent for roots"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations" doc:"List of locations"`
}

type ListLocationsOutput struct {
	Body ListLocationsResponse
}

type ListLocationChildrenInput struct {
	ID int64 `path:"id" doc:"Location ID"`
}

func mapLocationResponses(locations []*domain.Location) []LocationResponse {
	resp := make([]LocationResponse, len(locations))
	for i, l := range locations {
		resp[i] = LocationResponse{ID: l.ID, Name: l.Name, ParentID: l.ParentID}
	}
	return resp
}

// === Handlers ===

func (s *Server) handleListRootLocations(ctx context.Context, _ *struct{}) (*ListLocationsOutput, error) {
	roots, err := s.services.Locations.ListRoots(ctx)
	if err != nil {
		return nil, err
	}
	return &ListLocationsOutput{Body: ListLocationsResponse{Locations: mapLocationResponses(roots)}}, nil
}

func (s *Server) handleListLocationChildren(ctx context.Context, input *ListLocationChildrenInput) (*ListLocationsOutput, error) {
	children, err := s.services.Locations.ListChildren(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListLocationsOutput{Body: ListLocationsResponse{Locations: mapLocationResponses(children)}}, nil
}
