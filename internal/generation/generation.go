package generation

import (
	"context"
	"fmt"
	"sync"

	"timetable-portal/api"
	"timetable-portal/internal/gateway"
	"timetable-portal/pkg/response"
)

type State int

const (
	Idle State = iota
	Generating
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Generating:
		return "generating"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

const fallbackMessage = "Failed to generate timetable"

// Orchestrator drives the regenerate-timetable action for one portal
// session. At most one request is in flight per session: a second Trigger
// while Generating is rejected without touching the network. The guard is
// process-local on purpose; serializing concurrent triggers from different
// clients is the remote service's job.
type Orchestrator struct {
	gw *gateway.Client

	mu     sync.Mutex
	state  State
	result *api.GenerationResult
}

func NewOrchestrator(gw *gateway.Client) *Orchestrator {
	return &Orchestrator{gw: gw}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Result() *api.GenerationResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Acknowledge returns a terminal state to Idle. A no-op while Idle or
// Generating.
func (o *Orchestrator) Acknowledge() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == Completed || o.state == Failed {
		o.state = Idle
		o.result = nil
	}
}

// Trigger starts a generation run. Triggering from a terminal state
// acknowledges the previous result implicitly. A transport or server
// failure is folded into a failed GenerationResult with the best-effort
// reason instead of surfacing as a raw error.
func (o *Orchestrator) Trigger(ctx context.Context, token string) (*api.GenerationResult, error) {
	const op = "generation.Orchestrator.Trigger"

	o.mu.Lock()
	if o.state == Generating {
		o.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, response.ErrGenerationInFlight)
	}
	o.state = Generating
	o.result = nil
	o.mu.Unlock()

	var result api.GenerationResult
	err := o.gw.Post(ctx, "admin/generate_timetable/", token, nil, &result)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		synthesized := api.GenerationResult{
			Success: false,
			Message: gateway.Reason(err, fallbackMessage),
		}
		o.state = Failed
		o.result = &synthesized
		return &synthesized, nil
	}

	if result.Success {
		o.state = Completed
	} else {
		o.state = Failed
	}
	o.result = &result

	return &result, nil
}

// Registry hands out the per-session orchestrator, creating it lazily.
type Registry struct {
	gw *gateway.Client

	mu        sync.Mutex
	bySession map[string]*Orchestrator
}

func NewRegistry(gw *gateway.Client) *Registry {
	return &Registry{
		gw:        gw,
		bySession: make(map[string]*Orchestrator),
	}
}

func (r *Registry) For(sid string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()

	orch, ok := r.bySession[sid]
	if !ok {
		orch = NewOrchestrator(r.gw)
		r.bySession[sid] = orch
	}

	return orch
}
