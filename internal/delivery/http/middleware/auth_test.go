package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier struct {
	organiserID string
	err         error
}

func (s *stubVerifier) Verify(token string) (string, error) {
	return s.organiserID, s.err
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &stubVerifier{organiserID: "org-1"},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "missing header",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification failure",
			header:     "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var gotOrganiserID string
			handler := RequireAuth(tt.verifier)(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotOrganiserID, _ = OrganiserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if called != tt.wantCalled {
				t.Errorf("expected called=%v, got %v", tt.wantCalled, called)
			}
			if tt.wantCalled && gotOrganiserID != "org-1" {
				t.Errorf("expected organiser id in context, got %q", gotOrganiserID)
			}
		})
	}
}
