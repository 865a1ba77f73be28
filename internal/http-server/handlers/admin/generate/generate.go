package generate

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/api"
	"timetable-portal/internal/generation"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/pkg/response"
	"timetable-portal/pkg/sl"
)

type Registry interface {
	For(sid string) *generation.Orchestrator
}

type Response struct {
	response.Response
	State  string                `json:"state"`
	Result *api.GenerationResult `json:"result,omitempty"`
}

// New triggers timetable regeneration. While a run is in flight for this
// session, further triggers get 409 without reaching the backend.
func New(log *slog.Logger, registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.generate.New"

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

		orch := registry.For(id.SID)

		result, err := orch.Trigger(r.Context(), id.Session.Token)

		if errors.Is(err, response.ErrGenerationInFlight) {
			log.Info("Generation already in flight")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.GENERATION_IN_FLIGHT), "generation already in flight"))
			return
		}

		if err != nil {
			log.Error("Failed to trigger generation", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to trigger generation"))
			return
		}

		log.Info("Generation finished",
			slog.Bool("success", result.Success),
			slog.String("state", orch.State().String()),
		)

		render.JSON(w, r, Response{
			State:  orch.State().String(),
			Result: result,
		})
	}
}
