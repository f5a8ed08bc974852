package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBlogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// Services are left nil here; these tests only exercise request
	// validation, which rejects before any service is touched.
	handler := NewBlogHandler(nil, nil, nil)

	r := gin.New()
	r.POST("/api/v1/blog/generate", handler.GenerateBlog)
	r.GET("/api/v1/blog/generate/stream", handler.GenerateBlogStream)
	r.POST("/api/v1/blog/generate/async", handler.EnqueueBlog)
	return r
}

func TestGenerateBlogRejectsInvalidBody(t *testing.T) {
	r := setupBlogRouter()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing domain", `{"target_audience": "developers"}`},
		{"missing target audience", `{"domain": "technology"}`},
		{"empty fields", `{"domain": "", "target_audience": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/generate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Invalid request data", body["error"])
		})
	}
}

func TestGenerateBlogStreamRequiresQueryParams(t *testing.T) {
	r := setupBlogRouter()

	tests := []struct {
		name   string
		target string
	}{
		{"no params", "/api/v1/blog/generate/stream"},
		{"missing audience", "/api/v1/blog/generate/stream?domain=tech"},
		{"missing domain", "/api/v1/blog/generate/stream?target_audience=devs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEnqueueBlogRejectsInvalidBody(t *testing.T) {
	r := setupBlogRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/generate/async", strings.NewReader(`{"domain": "tech"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
