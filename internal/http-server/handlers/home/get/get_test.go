package get_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"timetable-portal/api"
	"timetable-portal/internal/grid"
	"timetable-portal/internal/http-server/handlers/home/get"
	"timetable-portal/pkg/response"
)

type stubProvider struct {
	entries []api.ScheduleEntry
	err     error
}

func (s *stubProvider) Public(_ context.Context) ([]api.ScheduleEntry, error) {
	return s.entries, s.err
}

func serve(t *testing.T, provider *stubProvider) (*httptest.ResponseRecorder, get.Response) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := get.New(log, provider)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var resp get.Response
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}

	return rec, resp
}

func TestHome_RealTimetable(t *testing.T) {
	provider := &stubProvider{entries: []api.ScheduleEntry{
		{Day: "Monday", StartTime: "09:00", EndTime: "10:00", SubjectName: "Algorithms"},
		{Day: "Tuesday", StartTime: "10:00", EndTime: "11:00", SubjectName: "Databases"},
	}}

	rec, resp := serve(t, provider)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp.Demo {
		t.Error("demo = true, want false for real data")
	}
	if resp.Advisory != "" {
		t.Errorf("advisory = %q, want empty", resp.Advisory)
	}
	if !resp.Available {
		t.Error("available = false, want true")
	}
	if len(resp.TimeSlots) != 2 {
		t.Errorf("time slots = %d, want 2", len(resp.TimeSlots))
	}
}

func TestHome_MissingEndpointServesDemo(t *testing.T) {
	for _, cause := range []error{
		response.ErrNotFound,
		response.ErrUnreachable,
		response.ErrTimeout,
	} {
		t.Run(cause.Error(), func(t *testing.T) {
			rec, resp := serve(t, &stubProvider{err: cause})

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if !resp.Demo {
				t.Error("demo = false, want true")
			}
			if resp.Advisory != grid.DemoAdvisory {
				t.Errorf("advisory = %q, want %q", resp.Advisory, grid.DemoAdvisory)
			}
			if !resp.Available {
				t.Error("available = false, want true for demo data")
			}
			if len(resp.Rows) == 0 {
				t.Error("rows empty, want demo rows")
			}
		})
	}
}

func TestHome_EmptyTimetableNotAvailable(t *testing.T) {
	rec, resp := serve(t, &stubProvider{entries: nil})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp.Available {
		t.Error("available = true, want false for empty timetable")
	}
	if resp.Demo {
		t.Error("demo = true, want false")
	}
}

func TestHome_HardErrorIsServerError(t *testing.T) {
	rec, _ := serve(t, &stubProvider{err: response.ErrServer})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
