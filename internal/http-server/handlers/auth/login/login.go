package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"timetable-portal/api"
	"timetable-portal/internal/session"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Authenticator interface {
	Login(ctx context.Context, sid, username, password string) (*session.Session, error)
}

type Request struct {
	api.LoginRequest
}

type Response struct {
	response.Response
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func New(log *slog.Logger, auth Authenticator, cookieName string, cookieTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if req.Username == "" {
			log.Error("username is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "username is required"))
			return
		}

		if req.Password == "" {
			log.Error("password is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "password is required"))
			return
		}

		sid := uuid.NewString()

		sess, err := auth.Login(r.Context(), sid, req.Username, req.Password)

		if errors.Is(err, response.ErrInvalidCredentials) {
			log.Info("Invalid credentials", slog.String("username", req.Username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.INVALID_CREDENTIALS), "Login failed. Please check your credentials."))
			return
		}

		if errors.Is(err, response.ErrMalformedToken) {
			log.Error("Backend issued an undecodable token")
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(string(response.MALFORMED_TOKEN), "login response could not be decoded"))
			return
		}

		if err != nil {
			log.Error("Login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to log in"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(cookieTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("Logged in",
			slog.String("username", sess.Claims.Username),
			slog.String("role", string(sess.Claims.Role)),
		)

		render.JSON(w, r, Response{
			Username: sess.Claims.Username,
			Role:     string(sess.Claims.Role),
		})
	}
}
