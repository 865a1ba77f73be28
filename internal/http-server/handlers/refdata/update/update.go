package update

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

type Updater interface {
	UpdateSubject(ctx context.Context, token, id string, subject api.Subject) (*api.Subject, error)
	UpdateRoom(ctx context.Context, token, id string, room api.Room) (*api.Room, error)
	UpdateTimeSlot(ctx context.Context, token, id string, slot api.TimeSlot) (*api.TimeSlot, error)
}

type Response struct {
	response.Response
	Subject  *api.Subject  `json:"subject,omitempty"`
	Room     *api.Room     `json:"room,omitempty"`
	TimeSlot *api.TimeSlot `json:"time_slot,omitempty"`
	Message  string        `json:"message,omitempty"`
}

func New(log *slog.Logger, updater Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refdata.update.New"

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
		resourceID := chi.URLParam(r, "id")

		if resourceID == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

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
			resp.Subject, err = updater.UpdateSubject(r.Context(), id.Session.Token, resourceID, subject)
		case "rooms":
			var room api.Room
			if err := render.DecodeJSON(r.Body, &room); err != nil {
				log.Error("Failed to decode request body", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
				return
			}
			resp.Room, err = updater.UpdateRoom(r.Context(), id.Session.Token, resourceID, room)
		case "time-slots":
			var slot api.TimeSlot
			if err := render.DecodeJSON(r.Body, &slot); err != nil {
				log.Error("Failed to decode request body", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
				return
			}
			resp.TimeSlot, err = updater.UpdateTimeSlot(r.Context(), id.Session.Token, resourceID, slot)
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

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Resource not found", slog.String("resource", resource), slog.String("id", resourceID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update resource", slog.String("resource", resource), sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update "+resource))
			return
		}

		log.Info("Resource updated", slog.String("resource", resource), slog.String("id", resourceID))

		resp.Message = "Updated successfully!"

		render.JSON(w, r, resp)
	}
}
