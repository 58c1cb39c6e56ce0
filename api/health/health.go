package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reporting the payment API.
const ServiceName = "paygate.omnipay"

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Server runs dependency checks and publishes the result through the
// standard gRPC health service and as a plain status map for HTTP.
type Server struct {
	grpc   *health.Server
	checks map[string]Check

	mu     sync.RWMutex
	status map[string]string
}

func NewServer(checks map[string]Check) *Server {
	s := &Server{grpc: health.NewServer(), checks: checks, status: map[string]string{}}
	s.grpc.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpc.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Register exposes the health service on g.
func (s *Server) Register(g *grpc.Server) {
	healthpb.RegisterHealthServer(g, s.grpc)
}

// Refresh runs every check and updates the serving status. It reports
// whether all checks passed.
func (s *Server) Refresh(ctx context.Context) bool {
	status := make(map[string]string, len(s.checks))
	ok := true
	for name, check := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(checkCtx)
		cancel()
		if err != nil {
			status[name] = "down"
			ok = false
			continue
		}
		status[name] = "up"
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()

	serving := healthpb.HealthCheckResponse_SERVING
	if !ok {
		serving = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.grpc.SetServingStatus("", serving)
	s.grpc.SetServingStatus(ServiceName, serving)
	return ok
}

// Run refreshes every interval until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Status returns the last result of each check.
func (s *Server) Status() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.status))
	for k, v := range s.status {
		out[k] = v
	}
	return out
}

// Names lists the configured checks, sorted.
func (s *Server) Names() []string {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shutdown marks every service NOT_SERVING so clients drain.
func (s *Server) Shutdown() {
	s.grpc.Shutdown()
}
