package grid

import "timetable-portal/api"

// DemoAdvisory is shown alongside the bundled sample when the public
// timetable cannot be fetched.
const DemoAdvisory = "Failed to fetch real-time data. Using demo timetable."

// DemoTimetable returns the bundled sample shown when the public endpoint
// is missing or unreachable. A fresh slice each call so callers can't
// mutate the sample.
func DemoTimetable() []api.ScheduleEntry {
	return []api.ScheduleEntry{
		{Day: "Monday", StartTime: "09:00", EndTime: "10:00", SubjectCode: "MATH101", SubjectName: "Mathematics", ShortForm: "Dr. A", RoomNumber: "A101", Semester: 1},
		{Day: "Tuesday", StartTime: "09:00", EndTime: "10:00", SubjectCode: "PHY101", SubjectName: "Physics", ShortForm: "Dr. B", RoomNumber: "B201", Semester: 1},
		{Day: "Wednesday", StartTime: "09:00", EndTime: "10:00", SubjectCode: "CS101", SubjectName: "Computer Science", ShortForm: "Prof. C", RoomNumber: "A102", Semester: 1},
		{Day: "Thursday", StartTime: "09:00", EndTime: "10:00", SubjectCode: "ENG101", SubjectName: "English", ShortForm: "Dr. D", RoomNumber: "B101", Semester: 1},
		{Day: "Friday", StartTime: "09:00", EndTime: "10:00", SubjectCode: "REV101", SubjectName: "Review", ShortForm: "Dr. A", RoomNumber: "A105", Semester: 1},
	}
}
