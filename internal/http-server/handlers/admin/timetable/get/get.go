package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/api"
	"timetable-portal/internal/grid"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type TimetableProvider interface {
	Admin(ctx context.Context, token string) ([]api.ScheduleEntry, error)
}

type Response struct {
	response.Response
	Days      []string   `json:"days"`
	TimeSlots []string   `json:"time_slots"`
	Rows      []grid.Row `json:"rows"`
	Available bool       `json:"available"`
}

// New renders the admin timetable view. Unlike the public view there is no
// demo fallback here; failures are real.
func New(log *slog.Logger, provider TimetableProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.timetable.get.New"

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

		entries, err := provider.Admin(r.Context(), id.Session.Token)

		if errors.Is(err, response.ErrUnauthorized) {
			log.Error("Backend rejected token")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "not authenticated"))
			return
		}

		if errors.Is(err, response.ErrForbidden) {
			log.Error("Backend denied access")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(string(response.FORBIDDEN), "access denied"))
			return
		}

		if err != nil {
			log.Error("Failed to fetch admin timetable", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to load timetable"))
			return
		}

		g := grid.Build(entries)

		log.Info("Admin timetable rendered",
			slog.Int("entries", len(entries)),
			slog.Int("time_slots", len(g.Axis())),
		)

		render.JSON(w, r, Response{
			Days:      grid.Days,
			TimeSlots: g.Axis(),
			Rows:      g.Rows(),
			Available: g.Available(),
		})
	}
}
