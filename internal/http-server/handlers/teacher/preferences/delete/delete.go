package delete

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
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
	Preferences []api.Preference `json:"preferences,omitempty"`
	Message     string           `json:"message,omitempty"`
}

func New(log *slog.Logger, workflows Workflows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teacher.preferences.delete.New"

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

		prefID := chi.URLParam(r, "id")
		if prefID == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		records, err := workflows.For(id.Session.Token).Delete(r.Context(), prefID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Preference not found", slog.String("id", prefID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "preference not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete preference", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "Failed to delete preference"))
			return
		}

		log.Info("Preference deleted", slog.String("id", prefID))

		render.JSON(w, r, Response{
			Preferences: records,
			Message:     "Preference deleted successfully!",
		})
	}
}
