package health

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func dial(t *testing.T, s *Server) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	g := grpc.NewServer()
	s.Register(g)
	go func() { _ = g.Serve(lis) }()
	t.Cleanup(g.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestHealth_ServingWhenChecksPass(t *testing.T) {
	s := NewServer(map[string]Check{
		"database": func(context.Context) error { return nil },
	})
	client := dial(t, s)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	require.True(t, s.Refresh(ctx))
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	assert.Equal(t, map[string]string{"database": "up"}, s.Status())
}

func TestHealth_NotServingWhenACheckFails(t *testing.T) {
	s := NewServer(map[string]Check{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
	})
	client := dial(t, s)
	ctx := context.Background()

	assert.False(t, s.Refresh(ctx))
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
	assert.Equal(t, map[string]string{"database": "up", "redis": "down"}, s.Status())
	assert.Equal(t, []string{"database", "redis"}, s.Names())
}

func TestHealth_RunStopsWithContext(t *testing.T) {
	calls := 0
	s := NewServer(map[string]Check{"noop": func(context.Context) error { calls++; return nil }})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx, 1<<30)
	assert.Equal(t, 1, calls)
}
