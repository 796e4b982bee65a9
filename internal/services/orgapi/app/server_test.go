package server

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformgrpc "github.com/louisbranch/orgdash/internal/platform/grpc"
)

func TestNewRequiresHTTPAddr(t *testing.T) {
	_, err := New(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "orgapi.db")})
	require.Error(t, err)
}

func TestNewSeedRequiresDefaultUser(t *testing.T) {
	_, err := New(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "orgapi.db"),
		SeedDemo: true,
	})
	require.Error(t, err)
}

func TestServeHTTPAndHealthUntilCanceled(t *testing.T) {
	srv, err := New(context.Background(), Config{
		HTTPAddr:    "127.0.0.1:0",
		GRPCAddr:    "127.0.0.1:0",
		DBPath:      filepath.Join(t.TempDir(), "nested", "orgapi.db"),
		DefaultUser: "user-1",
		SeedDemo:    true,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer waitCancel()
	require.NoError(t, platformgrpc.WaitForAddr(waitCtx, srv.HealthAddr(), 10*time.Second, nil))

	resp, err := http.Get("http://" + srv.Addr() + "/api/0/organizations/acme/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var org struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&org))
	assert.Equal(t, "acme", org.Slug)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNilServer(t *testing.T) {
	var srv *Server
	require.Error(t, srv.Serve(context.Background()))
	assert.Empty(t, srv.Addr())
	assert.Empty(t, srv.HealthAddr())
	srv.Close()
}
