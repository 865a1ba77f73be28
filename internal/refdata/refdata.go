package refdata

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"timetable-portal/api"
	"timetable-portal/internal/gateway"
)

// Service proxies the reference-data surface (subjects, rooms, time slots,
// teacher accounts) to the backend with client-side validation in front of
// every write.
type Service struct {
	gw       *gateway.Client
	validate *validator.Validate
}

func New(gw *gateway.Client) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
	}
}

// Subjects

func (s *Service) ListSubjects(ctx context.Context, token string) ([]api.Subject, error) {
	const op = "refdata.Service.ListSubjects"

	var subjects []api.Subject
	if err := s.gw.Get(ctx, "subjects/", token, &subjects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subjects, nil
}

func (s *Service) CreateSubject(ctx context.Context, token string, subject api.Subject) (*api.Subject, error) {
	const op = "refdata.Service.CreateSubject"

	if err := s.validate.Struct(subject); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created api.Subject
	if err := s.gw.Post(ctx, "subjects/", token, subject, &created); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

func (s *Service) UpdateSubject(ctx context.Context, token, id string, subject api.Subject) (*api.Subject, error) {
	const op = "refdata.Service.UpdateSubject"

	if err := s.validate.Struct(subject); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated api.Subject
	if err := s.gw.Put(ctx, "subjects/"+id+"/", token, subject, &updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &updated, nil
}

func (s *Service) DeleteSubject(ctx context.Context, token, id string) error {
	const op = "refdata.Service.DeleteSubject"

	if err := s.gw.Delete(ctx, "subjects/"+id+"/", token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Rooms

func (s *Service) ListRooms(ctx context.Context, token string) ([]api.Room, error) {
	const op = "refdata.Service.ListRooms"

	var rooms []api.Room
	if err := s.gw.Get(ctx, "rooms/", token, &rooms); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rooms, nil
}

func (s *Service) CreateRoom(ctx context.Context, token string, room api.Room) (*api.Room, error) {
	const op = "refdata.Service.CreateRoom"

	if err := s.validate.Struct(room); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created api.Room
	if err := s.gw.Post(ctx, "rooms/", token, room, &created); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

func (s *Service) UpdateRoom(ctx context.Context, token, id string, room api.Room) (*api.Room, error) {
	const op = "refdata.Service.UpdateRoom"

	if err := s.validate.Struct(room); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated api.Room
	if err := s.gw.Put(ctx, "rooms/"+id+"/", token, room, &updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &updated, nil
}

func (s *Service) DeleteRoom(ctx context.Context, token, id string) error {
	const op = "refdata.Service.DeleteRoom"

	if err := s.gw.Delete(ctx, "rooms/"+id+"/", token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Time slots

func (s *Service) ListTimeSlots(ctx context.Context, token string) ([]api.TimeSlot, error) {
	const op = "refdata.Service.ListTimeSlots"

	var slots []api.TimeSlot
	if err := s.gw.Get(ctx, "time-slots/", token, &slots); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return slots, nil
}

func (s *Service) CreateTimeSlot(ctx context.Context, token string, slot api.TimeSlot) (*api.TimeSlot, error) {
	const op = "refdata.Service.CreateTimeSlot"

	if err := s.validate.Struct(slot); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created api.TimeSlot
	if err := s.gw.Post(ctx, "time-slots/", token, slot, &created); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

func (s *Service) UpdateTimeSlot(ctx context.Context, token, id string, slot api.TimeSlot) (*api.TimeSlot, error) {
	const op = "refdata.Service.UpdateTimeSlot"

	if err := s.validate.Struct(slot); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updated api.TimeSlot
	if err := s.gw.Put(ctx, "time-slots/"+id+"/", token, slot, &updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &updated, nil
}

func (s *Service) DeleteTimeSlot(ctx context.Context, token, id string) error {
	const op = "refdata.Service.DeleteTimeSlot"

	if err := s.gw.Delete(ctx, "time-slots/"+id+"/", token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Teacher accounts

func (s *Service) CreateTeacher(ctx context.Context, token string, req api.TeacherCreateRequest) (*api.Teacher, error) {
	const op = "refdata.Service.CreateTeacher"

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var created api.Teacher
	if err := s.gw.Post(ctx, "admin/create_teacher/", token, req, &created); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}
