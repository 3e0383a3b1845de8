package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed string
		wantVary    bool
	}{
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodGet, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantAllowed: "*"},
		{name: "listed origin is echoed", allowed: []string{"http://localhost:5173"}, method: http.MethodGet, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantAllowed: "http://localhost:5173", wantVary: true},
		{name: "unlisted origin", allowed: []string{"http://localhost:5173"}, method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusOK},
		{name: "no origin", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "http://localhost:5173", preflight: true, wantStatus: http.StatusNoContent, wantAllowed: "*"},
		{name: "plain options reaches handler", allowed: []string{"*"}, method: http.MethodOptions, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantAllowed: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/cohorts", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowed != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
				assert.Equal(t, TraceIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
			}
			assert.Equal(t, tt.wantVary, rec.Header().Get("Vary") == "Origin")
		})
	}
}
