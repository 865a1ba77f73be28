package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"timetable-portal/internal/gateway"
	"timetable-portal/pkg/response"
)

func TestTrigger_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/generate_timetable/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Timetable generated",
			"stats":   map[string]int{"total_classes": 12, "teachers": 4, "subjects": 6, "rooms_used": 3},
		})
	}))
	defer srv.Close()

	orch := NewOrchestrator(gateway.New(srv.URL, time.Second))

	result, err := orch.Trigger(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if !result.Success {
		t.Error("result.Success = false, want true")
	}
	if orch.State() != Completed {
		t.Errorf("State() = %v, want Completed", orch.State())
	}
	if orch.Result() == nil || orch.Result().Stats == nil || orch.Result().Stats.TotalClasses != 12 {
		t.Errorf("Result() = %+v, want stats carried through", orch.Result())
	}
}

func TestTrigger_SingleFlight(t *testing.T) {
	var calls int32
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok"})
	}))
	defer srv.Close()

	orch := NewOrchestrator(gateway.New(srv.URL, 5*time.Second))

	done := make(chan struct{})
	go func() {
		defer close(done)
		orch.Trigger(context.Background(), "tok")
	}()

	// Wait for the first trigger to reach the backend.
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := orch.Trigger(context.Background(), "tok")
	if !errors.Is(err, response.ErrGenerationInFlight) {
		t.Errorf("second Trigger() error = %v, want %v", err, response.ErrGenerationInFlight)
	}

	close(release)
	<-done

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
	if orch.State() != Completed {
		t.Errorf("State() = %v, want Completed", orch.State())
	}
}

func TestTrigger_ServerFailureSynthesizesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "No teacher preferences found"})
	}))
	defer srv.Close()

	orch := NewOrchestrator(gateway.New(srv.URL, time.Second))

	result, err := orch.Trigger(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Trigger() error = %v, failures must be folded into the result", err)
	}
	if result.Success {
		t.Error("result.Success = true, want false")
	}
	if result.Message != "No teacher preferences found" {
		t.Errorf("result.Message = %q, want the extracted reason", result.Message)
	}
	if orch.State() != Failed {
		t.Errorf("State() = %v, want Failed", orch.State())
	}
}

func TestTrigger_TransportFailureUsesFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	orch := NewOrchestrator(gateway.New(srv.URL, time.Second))

	result, err := orch.Trigger(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if result.Success {
		t.Error("result.Success = true, want false")
	}
	if result.Message != fallbackMessage {
		t.Errorf("result.Message = %q, want %q", result.Message, fallbackMessage)
	}
}

func TestTrigger_FromTerminalStateActsAsAcknowledge(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok"})
	}))
	defer srv.Close()

	orch := NewOrchestrator(gateway.New(srv.URL, time.Second))

	if _, err := orch.Trigger(context.Background(), "tok"); err != nil {
		t.Fatalf("first Trigger() error = %v", err)
	}
	if _, err := orch.Trigger(context.Background(), "tok"); err != nil {
		t.Fatalf("second Trigger() error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("backend calls = %d, want 2", got)
	}
}

func TestAcknowledge_ReturnsToIdle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok"})
	}))
	defer srv.Close()

	orch := NewOrchestrator(gateway.New(srv.URL, time.Second))

	orch.Trigger(context.Background(), "tok")
	orch.Acknowledge()

	if orch.State() != Idle {
		t.Errorf("State() = %v, want Idle", orch.State())
	}
	if orch.Result() != nil {
		t.Error("Result() should be cleared on acknowledge")
	}
}

func TestRegistry_OneOrchestratorPerSession(t *testing.T) {
	reg := NewRegistry(gateway.New("http://localhost", time.Second))

	a := reg.For("sid-a")
	b := reg.For("sid-b")

	if a == b {
		t.Error("different sessions share an orchestrator")
	}
	if a != reg.For("sid-a") {
		t.Error("same session got a new orchestrator")
	}
}
