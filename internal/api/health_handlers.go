package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/store"
)

// healthProbeID is a user id that never exists; loading it exercises the store.
const healthProbeID = "health-probe"

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"database": s.checkDatabase(ctx),
		"sse":      s.checkSSEManager(),
	}

	return &HealthOutput{Body: HealthResponse{Status: worstStatus(components), Components: components}}, nil
}

// statusRank orders component states from best to worst.
var statusRank = map[string]int{"healthy": 0, "degraded": 1, "unhealthy": 2}

func worstStatus(components map[string]ComponentHealth) string {
	worst := "healthy"
	for _, c := range components {
		if statusRank[c.Status] > statusRank[worst] {
			worst = c.Status
		}
	}
	return worst
}

// checkDatabase verifies the profile store answers reads.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{Status: "degraded", Message: "database not configured"}
	}

	start := time.Now()
	_, err := s.store.LoadUser(ctx, healthProbeID)
	health := ComponentHealth{Status: "healthy", Latency: time.Since(start).String()}
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		s.logger.Warn("health probe read failed", "error", err)
		health.Status = "unhealthy"
		health.Message = "database read failed"
	}
	return health
}

// checkSSEManager reports how many event streams are open.
func (s *Server) checkSSEManager() ComponentHealth {
	if s.sseManager == nil {
		return ComponentHealth{Status: "degraded", Message: "SSE manager not configured"}
	}
	return ComponentHealth{
		Status:  "healthy",
		Message: formatSSEStatus(s.sseManager.ClientCount(), s.sseManager.UserCount()),
	}
}

func formatSSEStatus(streams, users int) string {
	if streams == 0 {
		return "no open streams"
	}
	return fmt.Sprintf("%d open %s across %d %s", streams, plural(streams, "stream"), users, plural(users, "user"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
