package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockhub/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "://nope"} {
		_, err := NewClient(raw)
		assert.Error(t, err, raw)
	}
}

func TestListBranches(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/branches", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("skip"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`[{"id":1,"name":"Main Warehouse","location":"Dock 1"}]`))
	}, WithToken(" secret "))

	branches, err := c.ListBranches(context.Background(), 10, 50)
	require.NoError(t, err)
	assert.Equal(t, []domain.Branch{{ID: 1, Name: "Main Warehouse", Location: "Dock 1"}}, branches)
}

func TestListUsersUnwrapsObject(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"items", `{"items":[{"id":4,"name":"Mike Wilson"}],"total":1}`, 1},
		{"data", `{"data":[{"id":4,"name":"Mike Wilson"},{"id":5,"name":"Sarah Johnson"}]}`, 2},
		{"resource", `{"users":[{"id":4,"name":"Mike Wilson"}]}`, 1},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "employee", r.URL.Query().Get("role"))
				_, _ = w.Write([]byte(tt.body))
			})

			users, err := c.ListUsers(context.Background(), "employee")
			require.NoError(t, err)
			assert.Len(t, users, tt.want)
		})
	}
}

func TestListUsersWithoutList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0}`))
	})

	_, err := c.ListUsers(context.Background(), "")
	assert.Error(t, err)
}

func TestUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
	})

	_, err := c.ListBranches(context.Background(), 0, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Body, "Not authenticated")
}

func TestServerErrorIsNotUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListUsers(context.Background(), "")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestCreateAssignment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/assignments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got domain.Assignment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, 4, got.EmployeeID)
		assert.Equal(t, 2, got.BranchID)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":17}`))
	})

	created, err := c.CreateAssignment(context.Background(), domain.Assignment{
		EmployeeID: 4, BranchID: 2, Status: domain.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, 17, created.ID)
	assert.Equal(t, 4, created.EmployeeID)
	assert.Equal(t, domain.StatusActive, created.Status)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, WithTimeout(5*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListBranches(ctx, 0, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
