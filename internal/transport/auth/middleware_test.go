package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fivec_analysis/internal/repository/database"
)

type fakeRepo struct {
	token *database.APIToken
	err   error
}

func (f *fakeRepo) FindByPlainToken(ctx context.Context, plainToken string) (*database.APIToken, error) {
	return f.token, f.err
}

func TestTokenMiddleware_setsUserID(t *testing.T) {
	token := &database.APIToken{ID: 1, UserID: 123}
	fr := &fakeRepo{token: token}

	got := ""
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := GetUserID(r.Context())
		if err != nil {
			t.Fatalf("expected user id present, got err: %v", err)
		}
		got = uid
		w.WriteHeader(http.StatusOK)
	})

	mw := TokenMiddleware(fr)
	srv := mw(handler)

	req := httptest.NewRequest("POST", "/analyze", nil)
	req.Header.Set("Authorization", "Bearer mytoken")
	rr := httptest.NewRecorder()

	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", rr.Code)
	}
	if got != "123" {
		t.Fatalf("expected user id 123 in context, got %q", got)
	}
}

func TestTokenMiddleware_queryTokenFallback(t *testing.T) {
	fr := &fakeRepo{token: &database.APIToken{ID: 2, UserID: 7}}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := TokenMiddleware(fr)(handler)

	req := httptest.NewRequest("GET", "/export?run_id=abc&token=plain", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 OK via query token, got %d", rr.Code)
	}
}

func TestTokenMiddleware_blockWhenMissing(t *testing.T) {
	fr := &fakeRepo{token: nil}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("should not reach handler with missing token")
	})
	srv := TokenMiddleware(fr)(handler)

	req := httptest.NewRequest("POST", "/analyze", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", rr.Code)
	}
}

func TestTokenMiddleware_blocksExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	fr := &fakeRepo{token: &database.APIToken{ID: 3, UserID: 9, ExpiresAt: &past}}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("should not reach handler with expired token")
	})
	srv := TokenMiddleware(fr)(handler)

	req := httptest.NewRequest("POST", "/analyze", nil)
	req.Header.Set("Authorization", "Bearer mytoken")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rr.Code)
	}
}

func TestTokenMiddleware_allowsOptions(t *testing.T) {
	fr := &fakeRepo{token: nil}
	reached := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})
	srv := TokenMiddleware(fr)(handler)

	req := httptest.NewRequest("OPTIONS", "/analyze", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if !reached {
		t.Fatalf("OPTIONS must pass through without auth")
	}
}
