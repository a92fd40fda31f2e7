package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/rl-replay/rl"
	"github.com/zeu5/rl-replay/server"
	"github.com/zeu5/rl-replay/store"
)

func testServer(t *testing.T) (*server.Server, *store.RunStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	runStore := store.NewFromClient(client)
	return server.New(runStore, ""), runStore
}

func get(t *testing.T, srv *server.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestListRuns(t *testing.T) {
	srv, runStore := testServer(t)
	ctx := context.Background()
	require.NoError(t, runStore.SaveRun(ctx, &store.RunRecord{Name: "one"}))
	require.NoError(t, runStore.SaveRun(ctx, &store.RunRecord{Name: "two"}))

	w := get(t, srv, "/runs")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Runs []string `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"one", "two"}, body.Runs)
}

func TestGetRun(t *testing.T) {
	srv, runStore := testServer(t)
	require.NoError(t, runStore.SaveRun(context.Background(), &store.RunRecord{
		Name: "demo",
		Env:  "cartpole",
	}))

	w := get(t, srv, "/runs/demo")
	require.Equal(t, http.StatusOK, w.Code)

	record := &store.RunRecord{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), record))
	assert.Equal(t, "cartpole", record.Env)
}

func TestGetRunNotFound(t *testing.T) {
	srv, _ := testServer(t)
	w := get(t, srv, "/runs/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTraces(t *testing.T) {
	srv, runStore := testServer(t)
	ctx := context.Background()
	require.NoError(t, runStore.SaveRun(ctx, &store.RunRecord{Name: "demo"}))
	require.NoError(t, runStore.AppendTrace(ctx, "demo", &rl.TraceRecord{
		States:     []string{"(0, 0, 0)"},
		Actions:    []string{"Up"},
		Rewards:    []float64{-1},
		NextStates: []string{"(1, 0, 0)"},
	}))

	w := get(t, srv, "/runs/demo/traces")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Traces []*rl.TraceRecord `json:"traces"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Traces, 1)
	assert.Equal(t, "Up", body.Traces[0].Actions[0])
}

func TestGetArtifact(t *testing.T) {
	srv, runStore := testServer(t)
	dir := t.TempDir()
	gifPath := filepath.Join(dir, "rollout.gif")
	require.NoError(t, os.WriteFile(gifPath, []byte("GIF89a"), 0644))

	require.NoError(t, runStore.SaveRun(context.Background(), &store.RunRecord{
		Name: "demo",
		GIF:  gifPath,
	}))

	w := get(t, srv, "/runs/demo/artifacts/gif")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GIF89a", w.Body.String())

	w = get(t, srv, "/runs/demo/artifacts/png")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, srv, "/runs/demo/artifacts/svg")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
