package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/api"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/internal/prefs"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Workflows interface {
	For(token string) *prefs.Workflow
}

type Response struct {
	response.Response
	Preferences []api.Preference `json:"preferences"`
}

func New(log *slog.Logger, workflows Workflows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teacher.preferences.get.New"

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

		records, err := workflows.For(id.Session.Token).List(r.Context())

		if err != nil {
			log.Error("Failed to list preferences", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to load preferences"))
			return
		}

		log.Info("Preferences listed", slog.Int("count", len(records)))

		render.JSON(w, r, Response{
			Preferences: records,
		})
	}
}
