package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/service"
)

// maxShelfSuggestions caps the level-2 suggestion list for display. The
// service returns the unbounded distinct set; the cap is a UI concern.
const maxShelfSuggestions = 7

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLanguages",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/languages",
		Summary:     "List languages",
		Description: "Returns the distinct language codes in use",
		Tags:        []string{"Catalog"},
	}, s.handleListLanguages)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRooms",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/rooms",
		Summary:     "List rooms",
		Description: "Returns the distinct rooms in use, sorted",
		Tags:        []string{"Catalog"},
	}, s.handleListRooms)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRoomShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/rooms/{room}/shelves",
		Summary:     "List shelf suggestions",
		Description: "Returns second-level location suggestions for a room, capped for display",
		Tags:        []string{"Catalog"},
	}, s.handleListRoomShelves)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLanguageSuggestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/language-suggestions",
		Summary:     "List language suggestions",
		Description: "Returns the reference languages ordered used-first",
		Tags:        []string{"Catalog"},
	}, s.handleListLanguageSuggestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/stats",
		Summary:     "Catalog statistics",
		Description: "Returns book counts per language, room and reading status",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkConsistency",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/consistency-check",
		Summary:     "Consistency check",
		Description: "Verifies every book's location reference against its flat path; optionally repairs",
		Tags:        []string{"Catalog"},
	}, s.handleCheckConsistency)
}

// === DTOs ===

type StringListResponse struct {
	Values []string `json:"values" doc:"Result values"`
}

type StringListOutput struct {
	Body StringListResponse
}

type ListRoomShelvesInput struct {
	Room string `path:"room" doc:"Room name"`
}

type LanguageSuggestionsResponse struct {
	Languages []domain.Language `json:"languages" doc:"Reference languages, used catalog languages first"`
}

type LanguageSuggestionsOutput struct {
	Body LanguageSuggestionsResponse
}

type CatalogStatsOutput struct {
	Body domain.CatalogStats
}

type CheckConsistencyInput struct {
	DryRun bool `query:"dry_run" doc:"Report mismatches without repairing"`
}

type ConsistencyOutput struct {
	Body service.ConsistencyReport
}

// === Handlers ===

func (s *Server) handleListLanguages(ctx context.Context, _ *struct{}) (*StringListOutput, error) {
	languages, err := s.services.Catalog.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	return &StringListOutput{Body: StringListResponse{Values: languages}}, nil
}

func (s *Server) handleListRooms(ctx context.Context, _ *struct{}) (*StringListOutput, error) {
	rooms, err := s.services.Locations.RoomSuggestions(ctx)
	if err != nil {
		return nil, err
	}
	return &StringListOutput{Body: StringListResponse{Values: rooms}}, nil
}

func (s *Server) handleListRoomShelves(ctx context.Context, input *ListRoomShelvesInput) (*StringListOutput, error) {
	shelves, err := s.services.Locations.Level2Suggestions(ctx, input.Room)
	if err != nil {
		return nil, err
	}
	if len(shelves) > maxShelfSuggestions {
		shelves = shelves[:maxShelfSuggestions]
	}
	return &StringListOutput{Body: StringListResponse{Values: shelves}}, nil
}

func (s *Server) handleListLanguageSuggestions(ctx context.Context, _ *struct{}) (*LanguageSuggestionsOutput, error) {
	suggestions, err := s.services.Locations.LanguageSuggestions(ctx)
	if err != nil {
		return nil, err
	}
	return &LanguageSuggestionsOutput{Body: LanguageSuggestionsResponse{Languages: suggestions}}, nil
}

func (s *Server) handleGetCatalogStats(ctx context.Context, _ *struct{}) (*CatalogStatsOutput, error) {
	stats, err := s.services.Catalog.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogStatsOutput{Body: *stats}, nil
}

func (s *Server) handleCheckConsistency(ctx context.Context, input *CheckConsistencyInput) (*ConsistencyOutput, error) {
	report, err := s.services.Catalog.CheckConsistency(ctx, input.DryRun)
	if err != nil {
		return nil, err
	}
	return &ConsistencyOutput{Body: *report}, nil
}
