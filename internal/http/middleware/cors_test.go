package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const landingOrigin = "https://wb.cosmosalonstudios.com"

func TestCORS(t *testing.T) {
	cases := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantReached bool
	}{
		{
			name:        "listed origin reads state",
			allowed:     []string{landingOrigin},
			method:      http.MethodGet,
			origin:      landingOrigin,
			wantStatus:  http.StatusOK,
			wantOrigin:  landingOrigin,
			wantReached: true,
		},
		{
			name:        "unknown origin gets no headers but still reaches handler",
			allowed:     []string{landingOrigin},
			method:      http.MethodGet,
			origin:      "https://unknown.example",
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:        "wildcard echoes caller",
			allowed:     []string{"*"},
			method:      http.MethodPost,
			origin:      "https://partner.example",
			wantStatus:  http.StatusOK,
			wantOrigin:  "https://partner.example",
			wantReached: true,
		},
		{
			name:        "configured origin is normalized",
			allowed:     []string{" HTTPS://WB.CosmoSalonStudios.com/ ", "not a url"},
			method:      http.MethodPost,
			origin:      landingOrigin,
			wantStatus:  http.StatusOK,
			wantOrigin:  landingOrigin,
			wantReached: true,
		},
		{
			name:       "preflight from listed origin",
			allowed:    []string{landingOrigin},
			method:     http.MethodOptions,
			origin:     landingOrigin,
			preflight:  true,
			wantStatus: http.StatusNoContent,
			wantOrigin: landingOrigin,
		},
		{
			name:       "preflight from unknown origin",
			allowed:    []string{landingOrigin},
			method:     http.MethodOptions,
			origin:     "https://evil.example",
			preflight:  true,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tc.method, "/api/dispatch", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantReached, reached)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantOrigin != "" {
				assert.Equal(t, corsAllowMethods, rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Sec-CH-Viewport-Width")
				assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}

func TestNormalizeOrigin(t *testing.T) {
	assert.Equal(t, "https://wb.example", normalizeOrigin("HTTPS://WB.Example/path"))
	assert.Equal(t, "http://localhost:8080", normalizeOrigin(" http://localhost:8080 "))
	assert.Empty(t, normalizeOrigin("wb.example"))
	assert.Empty(t, normalizeOrigin(""))
}
