package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCompanies(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/companies", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "Acme", r.URL.Query().Get("name"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		json.NewEncoder(w).Encode(map[string]any{
			"companies": []map[string]any{
				{"id": 1, "name": "Acme"},
				{"id": 2, "name": "Acme East"},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithAPIKey("secret"))
	got, err := c.List(context.Background(), Companies, map[string]any{
		"name":      "Acme",
		"page_size": float64(25),
		"city":      nil,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0]["name"])
	assert.Equal(t, "Acme East", got[1]["name"])
}

func TestList_BareArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/activity_logs", r.URL.Path)
		w.Write([]byte(`[{"id":9,"action":"viewed"}]`))
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	got, err := c.List(context.Background(), ActivityLogs, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "viewed", got[0]["action"])
}

func TestList_RejectsNonScalarParams(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	_, err := c.List(context.Background(), Companies, map[string]any{"name": []any{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parameter "name"`)
}

func TestGetCompany_Unwraps(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/companies/7", r.URL.Path)
		w.Write([]byte(`{"company":{"id":7,"name":"Globex"}}`))
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL + "/api/v1/"))
	got, err := c.Get(context.Background(), Companies, 7)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got["name"])
}

func TestGet_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Record not found"}`))
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	_, err := c.Get(context.Background(), Articles, 404)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Record not found")
}

func TestCreateAndUpdate_WrapPayload(t *testing.T) {
	var bodies []map[string]any
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		methods = append(methods, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"website":{"id":3,"name":"status page"}}`))
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	created, err := c.Create(context.Background(), Websites, map[string]any{"name": "status page"})
	require.NoError(t, err)
	assert.Equal(t, float64(3), created["id"])

	_, err = c.Update(context.Background(), Websites, 3, map[string]any{"paused": true})
	require.NoError(t, err)

	assert.Equal(t, []string{"POST /api/v1/websites", "PUT /api/v1/websites/3"}, methods)
	assert.Equal(t, map[string]any{"website": map[string]any{"name": "status page"}}, bodies[0])
	assert.Equal(t, map[string]any{"website": map[string]any{"paused": true}}, bodies[1])
}

func TestDeleteArchiveUnarchive(t *testing.T) {
	var calls []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))
	ctx := context.Background()
	require.NoError(t, c.Delete(ctx, Companies, 5))
	require.NoError(t, c.Archive(ctx, Companies, 5))
	require.NoError(t, c.Unarchive(ctx, Companies, 5))

	assert.Equal(t, []string{
		"DELETE /api/v1/companies/5",
		"PUT /api/v1/companies/5/archive",
		"PUT /api/v1/companies/5/unarchive",
	}, calls)
}

func TestClient_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithAPIKey("wrong"))
	_, err := c.List(context.Background(), Companies, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestClient_ServerDown(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1")) // port that's definitely not listening

	_, err := c.List(context.Background(), Companies, nil)
	assert.Error(t, err)
}

func TestClient_NoBaseURL(t *testing.T) {
	c := NewClient()
	_, err := c.List(context.Background(), Companies, nil)
	assert.Error(t, err)
}
