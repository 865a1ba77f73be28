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
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type TimetableProvider interface {
	Public(ctx context.Context) ([]api.ScheduleEntry, error)
}

type Response struct {
	response.Response
	Days      []string   `json:"days"`
	TimeSlots []string   `json:"time_slots"`
	Rows      []grid.Row `json:"rows"`
	Available bool       `json:"available"`
	Demo      bool       `json:"demo,omitempty"`
	Advisory  string     `json:"advisory,omitempty"`
}

// New renders the public timetable view. A missing or unreachable public
// endpoint is not an error here: the bundled demo timetable is shown with
// a non-blocking advisory instead.
func New(log *slog.Logger, provider TimetableProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.home.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		entries, err := provider.Public(r.Context())

		demo := false
		advisory := ""

		switch {
		case err == nil:
		case errors.Is(err, response.ErrNotFound),
			errors.Is(err, response.ErrUnreachable),
			errors.Is(err, response.ErrTimeout):
			log.Warn("Public timetable unavailable, serving demo data", sl.Err(err))
			entries = grid.DemoTimetable()
			demo = true
			advisory = grid.DemoAdvisory
		default:
			log.Error("Failed to fetch public timetable", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to load timetable"))
			return
		}

		g := grid.Build(entries)

		log.Info("Timetable rendered",
			slog.Int("entries", len(entries)),
			slog.Int("time_slots", len(g.Axis())),
			slog.Bool("demo", demo),
		)

		render.JSON(w, r, Response{
			Days:      grid.Days,
			TimeSlots: g.Axis(),
			Rows:      g.Rows(),
			Available: g.Available(),
			Demo:      demo,
			Advisory:  advisory,
		})
	}
}
