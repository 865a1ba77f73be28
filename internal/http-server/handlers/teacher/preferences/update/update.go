package update

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"timetable-portal/api"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/internal/prefs"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Workflows interface {
	For(token string) *prefs.Workflow
}

type Request struct {
	api.Preference
}

type Response struct {
	response.Response
	Preferences []api.Preference `json:"preferences,omitempty"`
	Message     string           `json:"message,omitempty"`
}

func New(log *slog.Logger, workflows Workflows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teacher.preferences.update.New"

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

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		records, err := workflows.For(id.Session.Token).Update(r.Context(), prefID, req.Preference)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Error("Validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validationErrs))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Preference not found", slog.String("id", prefID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "preference not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update preference", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "Failed to save preference"))
			return
		}

		log.Info("Preference updated", slog.String("id", prefID))

		render.JSON(w, r, Response{
			Preferences: records,
			Message:     "Preference updated successfully!",
		})
	}
}
