package api

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

// ScheduleEntry is one scheduled class occurrence as the backend emits it.
type ScheduleEntry struct {
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	ShortForm   string `json:"short_form"`
	RoomNumber  string `json:"room_number"`
	Semester    int    `json:"semester"`
}

type PublicTimetable struct {
	Timetable []ScheduleEntry `json:"timetable"`
}

type Preference struct {
	ID               string `json:"id"`
	SubjectID        string `json:"subject" validate:"required"`
	Semester         int    `json:"semester" validate:"gte=1,lte=8"`
	TimeSlotID       string `json:"time_slot" validate:"required"`
	PreferenceNumber int    `json:"preference_number" validate:"gte=1"`
}

type Subject struct {
	ID          string `json:"id,omitempty"`
	SubjectCode string `json:"subject_code" validate:"required"`
	SubjectName string `json:"subject_name" validate:"required"`
}

type Room struct {
	ID         string `json:"id,omitempty"`
	RoomNumber string `json:"room_number" validate:"required"`
	Capacity   int    `json:"capacity,omitempty" validate:"gte=0"`
}

type TimeSlot struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type TeacherCreateRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	ShortForm string `json:"short_form" validate:"required"`
}

type Teacher struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	ShortForm string `json:"short_form"`
	Role      string `json:"role"`
}

type GenerationStats struct {
	TotalClasses int `json:"total_classes"`
	Teachers     int `json:"teachers"`
	Subjects     int `json:"subjects"`
	RoomsUsed    int `json:"rooms_used"`
}

type GenerationResult struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Conflicts []string         `json:"conflicts,omitempty"`
	Stats     *GenerationStats `json:"stats,omitempty"`
}
