package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"timetable-portal/api"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Creator interface {
	CreateSubject(ctx context.Context, token string, subject api.Subject) (*api.Subject, error)
	CreateRoom(ctx context.Context, token string, room api.Room) (*api.Room, error)
	CreateTimeSlot(ctx context.Context, token string, slot api.TimeSlot) (*api.TimeSlot, error)
}

type Response struct {
	response.Response
	Subject  *api.Subject  `json:"subject,omitempty"`
	Room     *api.Room     `json:"room,omitempty"`
	TimeSlot *api.TimeSlot `json:"time_slot,omitempty"`
	Message  string        `json:"message,omitempty"`
}

func New(log *slog.Logger, creator Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refdata.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, ok := gate.FromContext(r.Context())
		if !ok {
			log.Error("No session in context")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "not authenticated"))
			return
		}

		resource := chi.URLParam(r, "resource")

		var (
			resp Response
			err  error
		)

		switch resource {
		case "subjects":
			var subject api.Subject
			if err := render.DecodeJSON(r.Body, &subject); err != nil {
				log.Error("Failed to decode request body", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
				return
			}
			resp.Subject, err = creator.CreateSubject(r.Context(), id.Session.Token, subject)
		case "rooms":
			var room api.Room
			if err := render.DecodeJSON(r.Body, &room); err != nil {
				log.Error("Failed to decode request body", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
				return
			}
			resp.Room, err = creator.CreateRoom(r.Context(), id.Session.Token, room)
		case "time-slots":
			var slot api.TimeSlot
			if err := render.DecodeJSON(r.Body, &slot); err != nil {
				log.Error("Failed to decode request body", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
				return
			}
			resp.TimeSlot, err = creator.CreateTimeSlot(r.Context(), id.Session.Token, slot)
		default:
			log.Error("Unknown resource", slog.String("resource", resource))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "unknown resource"))
			return
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Error("Validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validationErrs))
			return
		}

		if err != nil {
			log.Error("Failed to create resource", slog.String("resource", resource), sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create "+resource))
			return
		}

		log.Info("Resource created", slog.String("resource", resource))

		resp.Message = "Created successfully!"

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, resp)
	}
}
