package timetable

import (
	"context"
	"fmt"

	"timetable-portal/api"
	"timetable-portal/internal/gateway"
)

// Service exposes the two timetable read endpoints as typed calls.
type Service struct {
	gw *gateway.Client
}

func New(gw *gateway.Client) *Service {
	return &Service{gw: gw}
}

// Public fetches the active timetable from the unauthenticated endpoint.
// Callers decide what an unavailable endpoint means; nothing is swallowed
// here.
func (s *Service) Public(ctx context.Context) ([]api.ScheduleEntry, error) {
	const op = "timetable.Service.Public"

	var payload api.PublicTimetable
	if err := s.gw.Get(ctx, "public/timetable/", "", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payload.Timetable, nil
}

// Admin fetches the full timetable through the admin endpoint.
func (s *Service) Admin(ctx context.Context, token string) ([]api.ScheduleEntry, error) {
	const op = "timetable.Service.Admin"

	var entries []api.ScheduleEntry
	if err := s.gw.Get(ctx, "admin/timetable/", token, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
