package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Revoker interface {
	Logout(ctx context.Context, sid string) error
}

type Response struct {
	response.Response
	LoggedOut bool `json:"logged_out"`
}

// New clears the portal session. Idempotent: logging out without a session
// still succeeds.
func New(log *slog.Logger, revoker Revoker, cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if cookie, err := r.Cookie(cookieName); err == nil {
			if err := revoker.Logout(r.Context(), cookie.Value); err != nil {
				log.Error("Failed to clear stored credentials", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to log out"))
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("Logged out")

		render.JSON(w, r, Response{LoggedOut: true})
	}
}
