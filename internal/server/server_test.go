package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := New(":0", Info{Length: 10, Driver: "console", Transport: "ws"}, zerolog.Nop())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body["length"])
	assert.Equal(t, "console", body["driver"])
	assert.Equal(t, "ws", body["transport"])
	assert.Contains(t, body, "uptime_s")
}

func TestPreflight(t *testing.T) {
	s := New(":0", Info{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/command", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestStartServesRegisteredRoutes(t *testing.T) {
	s := New("127.0.0.1:0", Info{Length: 1}, zerolog.Nop())
	s.Handle("/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))
	require.NoError(t, s.Start())
	defer s.Close()

	resp, err := http.Get("http://" + s.Addr() + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(b))
}

func TestStartReportsBindFailure(t *testing.T) {
	a := New("127.0.0.1:0", Info{}, zerolog.Nop())
	require.NoError(t, a.Start())
	defer a.Close()

	b := New(a.Addr(), Info{}, zerolog.Nop())
	assert.Error(t, b.Start())
}
