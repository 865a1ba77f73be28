package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"timetable-portal/api"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type TeacherCreator interface {
	CreateTeacher(ctx context.Context, token string, req api.TeacherCreateRequest) (*api.Teacher, error)
}

type Request struct {
	api.TeacherCreateRequest
}

type Response struct {
	response.Response
	Teacher *api.Teacher `json:"teacher,omitempty"`
	Message string       `json:"message,omitempty"`
}

func New(log *slog.Logger, creator TeacherCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.teachers.create.New"

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

		teacher, err := creator.CreateTeacher(r.Context(), id.Session.Token, req.TeacherCreateRequest)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Error("Validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validationErrs))
			return
		}

		if err != nil {
			log.Error("Failed to create teacher", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create teacher"))
			return
		}

		log.Info("Teacher created", slog.String("username", teacher.Username))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Teacher: teacher,
			Message: "Teacher created successfully!",
		})
	}
}
