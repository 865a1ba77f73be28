package gate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"timetable-portal/internal/session"
	"timetable-portal/pkg/sl"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// HomePath is where authenticated requests with the wrong role are sent.
// The public timetable is always renderable, which a login page would not
// be for a user who is already signed in.
const HomePath = "/"

type ctxKey int

const sessionCtxKey ctxKey = iota

type SessionSource interface {
	Restore(ctx context.Context, sid string) (*session.Session, error)
	Refresh(ctx context.Context, sid string) (*session.Session, error)
}

type Identity struct {
	SID     string
	Session *session.Session
}

// New gates a route on an authenticated session with one of the given
// roles. Evaluated on every request, so a role change binds at the next
// navigation. An expired access token gets one refresh attempt before the
// request is treated as unauthenticated.
func New(log *slog.Logger, sessions SessionSource, cookieName string, roles ...session.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.gate.New"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookieName)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			sid := cookie.Value

			sess, err := sessions.Restore(r.Context(), sid)
			if err != nil {
				log.Error("Failed to restore session", sl.Err(err))
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if sess == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			if sess.Expired() {
				sess, err = sessions.Refresh(r.Context(), sid)
				if err != nil || sess == nil {
					log.Info("Session refresh failed, treating as unauthenticated")
					http.Redirect(w, r, LoginPath, http.StatusSeeOther)
					return
				}
			}

			if !roleAllowed(sess.Claims.Role, roles) {
				log.Info("Role not allowed for route",
					slog.String("role", string(sess.Claims.Role)),
					slog.String("path", r.URL.Path),
				)
				http.Redirect(w, r, HomePath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, Identity{SID: sid, Session: sess})
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func roleAllowed(role session.Role, allowed []session.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// FromContext returns the identity the gate injected, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(sessionCtxKey).(Identity)
	return id, ok
}
