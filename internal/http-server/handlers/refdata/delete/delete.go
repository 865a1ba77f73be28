package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Deleter interface {
	DeleteSubject(ctx context.Context, token, id string) error
	DeleteRoom(ctx context.Context, token, id string) error
	DeleteTimeSlot(ctx context.Context, token, id string) error
}

type Response struct {
	response.Response
	Message string `json:"message,omitempty"`
}

func New(log *slog.Logger, deleter Deleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refdata.delete.New"

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

		var err error

		switch resource {
		case "subjects":
			err = deleter.DeleteSubject(r.Context(), id.Session.Token, resourceID)
		case "rooms":
			err = deleter.DeleteRoom(r.Context(), id.Session.Token, resourceID)
		case "time-slots":
			err = deleter.DeleteTimeSlot(r.Context(), id.Session.Token, resourceID)
		default:
			log.Error("Unknown resource", slog.String("resource", resource))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "unknown resource"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Resource not found", slog.String("resource", resource), slog.String("id", resourceID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete resource", slog.String("resource", resource), sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete "+resource))
			return
		}

		log.Info("Resource deleted", slog.String("resource", resource), slog.String("id", resourceID))

		render.JSON(w, r, Response{Message: "Deleted successfully!"})
	}
}
