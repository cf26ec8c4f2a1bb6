package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-roster/internal/http/api"
	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/storage/memory"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// newBackend runs the real students API on a seeded in-memory store.
func newBackend(t *testing.T) *Client {
	t.Helper()
	s := memory.New()
	require.NoError(t, storage.SeedIfEmpty(s))
	srv := httptest.NewServer(api.NewRouter(s, nil, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/students/")
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alice", list[0].Name)

	created, err := c.Create(ctx, types.StudentInput{Name: "Dana", Age: 23, Major: "Chimie"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 4, Name: "Dana", Age: 23, Major: "Chimie"}, created)

	created.Age = 24
	updated, err := c.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, 24, updated.Age)

	require.NoError(t, c.Delete(ctx, created.ID))

	err = c.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Étudiant non trouvé", se.Message)
	assert.Equal(t, http.MethodDelete, se.Method)
}

func TestClient_BaseURLTrimmed(t *testing.T) {
	assert.Equal(t, "http://x.test/students", New("http://x.test/students/").BaseURL())
}

func TestClient_RequestShape(t *testing.T) {
	var gotMethod, gotPath, gotType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"name":"Eve","age":30,"email":"eve@example.com"}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/students")
	got, err := c.Update(context.Background(), 7, types.Student{ID: 7, Name: "Eve", Age: 30, Email: "eve@example.com"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/students/7", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]any{"id": float64(7), "name": "Eve", "age": float64(30), "email": "eve@example.com"}, gotBody)
	assert.Equal(t, "eve@example.com", got.Email)
}

func TestClient_CreateBodyHasNoID(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"name":"A","age":1,"major":"M"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Create(context.Background(), types.StudentInput{Name: "A", Age: 1, Major: "M"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "A", "age": float64(1), "major": "M"}, gotBody)
}

func TestClient_NullListIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	list, err := New(srv.URL).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"fastapi detail", http.StatusNotFound, `{"detail":"Étudiant non trouvé"}`, "Étudiant non trouvé"},
		{"fastapi validation", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"value is not a valid integer"}]}`, "field required, value is not a valid integer"},
		{"students-api error", http.StatusInternalServerError, `{"status":"error","error":"db down"}`, "db down"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).List(context.Background())
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Code)
			assert.Equal(t, tt.message, se.Message)
			assert.Equal(t, tt.body, string(se.Body))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).List(context.Background())
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.MethodGet, ne.Method)
	assert.False(t, IsNotFound(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).List(context.Background())
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestClient_TimeoutLeavesSharedClient(t *testing.T) {
	for _, tt := range []struct {
		name string
		opts func(hc *http.Client) []Option
	}{
		{"timeout after client", func(hc *http.Client) []Option {
			return []Option{WithHTTPClient(hc), WithTimeout(5 * time.Second)}
		}},
		{"timeout before client", func(hc *http.Client) []Option {
			return []Option{WithTimeout(5 * time.Second), WithHTTPClient(hc)}
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			shared := &http.Client{}
			c := New("http://127.0.0.1:8000/students", tt.opts(shared)...)

			assert.Zero(t, shared.Timeout)
			assert.Equal(t, 5*time.Second, c.http.Timeout)
			assert.NotSame(t, shared, c.http)
		})
	}

	shared := &http.Client{Timeout: time.Second}
	c := New("http://127.0.0.1:8000/students", WithHTTPClient(shared))
	assert.Same(t, shared, c.http, "no timeout option keeps the given client")
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(srv.URL).Delete(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Create(context.Background(), types.StudentInput{Name: "A", Age: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
