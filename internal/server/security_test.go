package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		path       string
		wantStatus int
	}{
		{
			name:       "valid key on evaluate route",
			configured: "scouter-key",
			provided:   "scouter-key",
			path:       "/api/v1/potential/evaluate",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key rejected",
			configured: "scouter-key",
			provided:   "other-key",
			path:       "/api/v1/potential/evaluate",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing key rejected",
			configured: "scouter-key",
			provided:   "",
			path:       "/api/v1/substats",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "health probe is public",
			configured: "scouter-key",
			provided:   "",
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "readiness probe is public",
			configured: "scouter-key",
			provided:   "",
			path:       "/readyz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "metrics scrape is public",
			configured: "scouter-key",
			provided:   "",
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
		{
			name:       "version is public",
			configured: "scouter-key",
			provided:   "",
			path:       "/version",
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty configured key disables auth",
			configured: "",
			provided:   "",
			path:       "/api/v1/potential/evaluate",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := authMiddleware(tt.configured, nil)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.provided != "" {
				req.Header.Set(HeaderAPIKey, tt.provided)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwardedFor   string
		trustedProxies []string
		want           string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:         "forwarded header ignored from untrusted peer",
			remoteAddr:   "203.0.113.7:51234",
			forwardedFor: "198.51.100.1",
			want:         "203.0.113.7",
		},
		{
			name:           "rightmost hop from trusted proxy",
			remoteAddr:     "10.0.0.1:443",
			forwardedFor:   "198.51.100.1, 198.51.100.2",
			trustedProxies: []string{"10.0.0.1"},
			want:           "198.51.100.2",
		},
		{
			name:           "trusted proxy without forwarded header",
			remoteAddr:     "10.0.0.1:443",
			trustedProxies: []string{"10.0.0.1"},
			want:           "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/potential/evaluate", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwardedFor)
			}

			if got := clientIP(req, tt.trustedProxies); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := securityHeaders()(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/potential/evaluate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	want := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}
