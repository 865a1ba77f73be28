package prefs

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"timetable-portal/api"
	"timetable-portal/internal/gateway"
)

// Workflow stages a teacher's preference records for one view. Every
// mutation is validated locally first and followed by a full refetch, so
// the held snapshot always ends up reflecting server state.
//
// Duplicate (subject, time_slot, preference_number) triples are not
// rejected here; the backend's unique constraint is the authority for that.
type Workflow struct {
	gw       *gateway.Client
	token    string
	validate *validator.Validate
	records  []api.Preference
}

func NewWorkflow(gw *gateway.Client, token string) *Workflow {
	return &Workflow{
		gw:       gw,
		token:    token,
		validate: validator.New(),
	}
}

// Factory builds a workflow bound to the calling session's token.
type Factory struct {
	gw *gateway.Client
}

func NewFactory(gw *gateway.Client) *Factory {
	return &Factory{gw: gw}
}

func (f *Factory) For(token string) *Workflow {
	return NewWorkflow(f.gw, token)
}

// Records returns the current snapshot without any IO.
func (w *Workflow) Records() []api.Preference {
	return w.records
}

// List refetches the full preference set and replaces the snapshot.
func (w *Workflow) List(ctx context.Context) ([]api.Preference, error) {
	const op = "prefs.Workflow.List"

	var records []api.Preference
	if err := w.gw.Get(ctx, "teacher/preferences/", w.token, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.records = records

	return w.records, nil
}

// Create validates the record, stages an optimistic copy under a temporary
// id, submits it and refetches. The staged copy never survives the call:
// either the refetch replaces it with server state or a failure removes it.
func (w *Workflow) Create(ctx context.Context, input api.Preference) ([]api.Preference, error) {
	const op = "prefs.Workflow.Create"

	if err := w.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	staged := input
	staged.ID = "pending-" + uuid.NewString()
	w.records = append(w.records, staged)

	input.ID = ""
	if err := w.gw.Post(ctx, "teacher/preferences/", w.token, input, nil); err != nil {
		w.unstage(staged.ID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := w.List(ctx)
	if err != nil {
		w.unstage(staged.ID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

// Update validates the record, submits it and refetches.
func (w *Workflow) Update(ctx context.Context, id string, input api.Preference) ([]api.Preference, error) {
	const op = "prefs.Workflow.Update"

	if err := w.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	input.ID = ""
	if err := w.gw.Put(ctx, "teacher/preferences/"+id+"/", w.token, input, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := w.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

// Delete removes the record and refetches.
func (w *Workflow) Delete(ctx context.Context, id string) ([]api.Preference, error) {
	const op = "prefs.Workflow.Delete"

	if err := w.gw.Delete(ctx, "teacher/preferences/"+id+"/", w.token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := w.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

func (w *Workflow) unstage(id string) {
	for i, record := range w.records {
		if record.ID == id {
			w.records = append(w.records[:i], w.records[i+1:]...)
			return
		}
	}
}
