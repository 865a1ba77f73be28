package gate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timetable-portal/internal/session"
)

type stubSessions struct {
	sess         *session.Session
	err          error
	refreshed    *session.Session
	refreshErr   error
	refreshCalls int
}

func (s *stubSessions) Restore(_ context.Context, _ string) (*session.Session, error) {
	return s.sess, s.err
}

func (s *stubSessions) Refresh(_ context.Context, _ string) (*session.Session, error) {
	s.refreshCalls++
	return s.refreshed, s.refreshErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const cookieName = "portal_sid"

func serve(t *testing.T, sessions SessionSource, withCookie bool, roles ...session.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	var sawIdentity bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawIdentity = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := New(discardLogger(), sessions, cookieName, roles...)(next)

	req := httptest.NewRequest(http.MethodGet, "/admin/timetable", nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid-1"})
	}
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec, sawIdentity
}

func authedSession(role session.Role) *session.Session {
	return &session.Session{
		Token: "tok",
		Claims: session.Claims{
			Username: "u",
			Role:     role,
			Expiry:   time.Now().Add(time.Hour),
		},
	}
}

func TestGate_NoCookieRedirectsToLogin(t *testing.T) {
	rec, _ := serve(t, &stubSessions{}, false, session.RoleAdmin)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Errorf("Location = %q, want %q", loc, LoginPath)
	}
}

func TestGate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	rec, _ := serve(t, &stubSessions{sess: nil}, true, session.RoleAdmin)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Errorf("Location = %q, want %q", loc, LoginPath)
	}
}

func TestGate_RoleMismatchRedirectsHome(t *testing.T) {
	rec, _ := serve(t, &stubSessions{sess: authedSession(session.RoleTeacher)}, true, session.RoleAdmin)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != HomePath {
		t.Errorf("Location = %q, want %q", loc, HomePath)
	}
}

func TestGate_AllowedRolePassesWithIdentity(t *testing.T) {
	rec, sawIdentity := serve(t, &stubSessions{sess: authedSession(session.RoleAdmin)}, true, session.RoleAdmin)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !sawIdentity {
		t.Error("protected handler did not get the identity from context")
	}
}

func TestGate_ExpiredSessionRefreshesOnce(t *testing.T) {
	expired := authedSession(session.RoleAdmin)
	expired.Claims.Expiry = time.Now().Add(-time.Minute)

	sessions := &stubSessions{
		sess:      expired,
		refreshed: authedSession(session.RoleAdmin),
	}

	rec, _ := serve(t, sessions, true, session.RoleAdmin)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if sessions.refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", sessions.refreshCalls)
	}
}

func TestGate_FailedRefreshRedirectsToLogin(t *testing.T) {
	expired := authedSession(session.RoleAdmin)
	expired.Claims.Expiry = time.Now().Add(-time.Minute)

	sessions := &stubSessions{
		sess:       expired,
		refreshErr: context.DeadlineExceeded,
	}

	rec, _ := serve(t, sessions, true, session.RoleAdmin)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Errorf("Location = %q, want %q", loc, LoginPath)
	}
}
