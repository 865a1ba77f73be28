package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/api"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Provider interface {
	ListSubjects(ctx context.Context, token string) ([]api.Subject, error)
	ListRooms(ctx context.Context, token string) ([]api.Room, error)
	ListTimeSlots(ctx context.Context, token string) ([]api.TimeSlot, error)
}

type Response struct {
	response.Response
	Subjects  []api.Subject  `json:"subjects,omitempty"`
	Rooms     []api.Room     `json:"rooms,omitempty"`
	TimeSlots []api.TimeSlot `json:"time_slots,omitempty"`
}

func New(log *slog.Logger, provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refdata.get.New"

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
			resp.Subjects, err = provider.ListSubjects(r.Context(), id.Session.Token)
		case "rooms":
			resp.Rooms, err = provider.ListRooms(r.Context(), id.Session.Token)
		case "time-slots":
			resp.TimeSlots, err = provider.ListTimeSlots(r.Context(), id.Session.Token)
		default:
			log.Error("Unknown resource", slog.String("resource", resource))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "unknown resource"))
			return
		}

		if err != nil {
			log.Error("Failed to list resource", slog.String("resource", resource), sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to load "+resource))
			return
		}

		log.Info("Resource listed", slog.String("resource", resource))

		render.JSON(w, r, resp)
	}
}
