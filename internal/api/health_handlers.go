package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports server and database health",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

type HealthResponse struct {
	Status   string `json:"status" doc:"Overall health status"`
	Database string `json:"database" doc:"Database connectivity"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := HealthResponse{Status: "healthy", Database: "ok"}
	if err := s.store.DB().PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
	}
	return &HealthOutput{Body: resp}, nil
}
