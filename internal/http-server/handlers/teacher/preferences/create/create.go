package create

import (
	"errors"
	"log/slog"
	"net/http"

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
		const op = "handlers.teacher.preferences.create.New"

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

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		records, err := workflows.For(id.Session.Token).Create(r.Context(), req.Preference)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Error("Validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validationErrs))
			return
		}

		if err != nil {
			log.Error("Failed to create preference", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "Failed to save preference"))
			return
		}

		log.Info("Preference created", slog.Int("count", len(records)))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Preferences: records,
			Message:     "Preference created successfully!",
		})
	}
}
