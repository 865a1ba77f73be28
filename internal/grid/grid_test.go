package grid

import (
	"reflect"
	"testing"

	"timetable-portal/api"
)

func entry(day, start, end, code string) api.ScheduleEntry {
	return api.ScheduleEntry{
		Day:         day,
		StartTime:   start,
		EndTime:     end,
		SubjectCode: code,
		SubjectName: code,
		ShortForm:   "T",
		RoomNumber:  "R1",
		Semester:    1,
	}
}

func TestBuild_AxisSortedAndDistinct(t *testing.T) {
	entries := []api.ScheduleEntry{
		entry("Monday", "11:00", "12:00", "CS101"),
		entry("Tuesday", "09:00", "10:00", "MA101"),
		entry("Monday", "09:00", "10:00", "PH101"),
		entry("Wednesday", "11:00", "12:00", "EN101"),
		entry("Friday", "09:00", "10:00", "MA101"),
	}

	g := Build(entries)

	want := []string{"09:00-10:00", "11:00-12:00"}
	if !reflect.DeepEqual(g.Axis(), want) {
		t.Errorf("Axis() = %v, want %v", g.Axis(), want)
	}
}

func TestBuild_CellMatchesBothFieldsPreservingOrder(t *testing.T) {
	entries := []api.ScheduleEntry{
		entry("Monday", "09:00", "10:00", "FIRST"),
		entry("Monday", "10:00", "11:00", "OTHER_SLOT"),
		entry("Tuesday", "09:00", "10:00", "OTHER_DAY"),
		entry("Monday", "09:00", "10:00", "SECOND"),
	}

	g := Build(entries)

	cell := g.Cell("Monday", "09:00-10:00")
	if len(cell) != 2 {
		t.Fatalf("Cell() returned %d entries, want 2", len(cell))
	}
	if cell[0].SubjectCode != "FIRST" || cell[1].SubjectCode != "SECOND" {
		t.Errorf("Cell() order = [%s %s], want [FIRST SECOND]", cell[0].SubjectCode, cell[1].SubjectCode)
	}
}

func TestBuild_SameSlotTwiceOnOneDay(t *testing.T) {
	entries := []api.ScheduleEntry{
		entry("Monday", "09:00", "10:00", "A"),
		entry("Monday", "09:00", "10:00", "B"),
	}

	g := Build(entries)

	if want := []string{"09:00-10:00"}; !reflect.DeepEqual(g.Axis(), want) {
		t.Errorf("Axis() = %v, want %v", g.Axis(), want)
	}
	if got := g.Cell("Monday", "09:00-10:00"); len(got) != 2 {
		t.Errorf("Cell() returned %d entries, want both", len(got))
	}
}

func TestBuild_UnknownDayExcludedFromCellsNotAxis(t *testing.T) {
	entries := []api.ScheduleEntry{
		entry("Sunday", "09:00", "10:00", "SUN"),
		entry("Monday", "11:00", "12:00", "MON"),
	}

	g := Build(entries)

	// The slot still shows up as a column.
	want := []string{"09:00-10:00", "11:00-12:00"}
	if !reflect.DeepEqual(g.Axis(), want) {
		t.Errorf("Axis() = %v, want %v", g.Axis(), want)
	}

	for _, day := range Days {
		for _, label := range g.Axis() {
			for _, e := range g.Cell(day, label) {
				if e.SubjectCode == "SUN" {
					t.Errorf("entry with day outside the fixed list appeared in cell (%s, %s)", day, label)
				}
			}
		}
	}
}

func TestBuild_EmptyInputNotAvailable(t *testing.T) {
	g := Build(nil)

	if g.Available() {
		t.Error("Available() = true for empty input")
	}
	if len(g.Axis()) != 0 {
		t.Errorf("Axis() = %v, want empty", g.Axis())
	}
	if rows := g.Rows(); len(rows) != 0 {
		t.Errorf("Rows() = %v, want empty", rows)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	entries := []api.ScheduleEntry{
		entry("Monday", "09:00", "10:00", "A"),
		entry("Tuesday", "10:00", "11:00", "B"),
		entry("Monday", "09:00", "10:00", "C"),
	}

	first := Build(entries)
	second := Build(entries)

	if !reflect.DeepEqual(first.Axis(), second.Axis()) {
		t.Errorf("axis differs between builds: %v vs %v", first.Axis(), second.Axis())
	}

	for _, day := range Days {
		for _, label := range first.Axis() {
			a := first.Cell(day, label)
			b := second.Cell(day, label)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("cell (%s, %s) differs between builds", day, label)
			}
		}
	}
}

func TestRows_OnePerAxisLabel(t *testing.T) {
	entries := []api.ScheduleEntry{
		entry("Monday", "09:00", "10:00", "A"),
		entry("Friday", "11:00", "12:00", "B"),
	}

	g := Build(entries)
	rows := g.Rows()

	if len(rows) != 2 {
		t.Fatalf("Rows() returned %d rows, want 2", len(rows))
	}
	if rows[0].Time != "09:00-10:00" || rows[1].Time != "11:00-12:00" {
		t.Errorf("row labels = [%s %s], want axis order", rows[0].Time, rows[1].Time)
	}
	if len(rows[0].Cells["Monday"]) != 1 {
		t.Errorf("expected Monday cell in first row")
	}
	if _, ok := rows[0].Cells["Friday"]; ok {
		t.Errorf("empty cell should be omitted from row")
	}
}

func TestDemoTimetable_BuildsAvailableGrid(t *testing.T) {
	g := Build(DemoTimetable())

	if !g.Available() {
		t.Fatal("demo timetable should build an available grid")
	}
	if want := []string{"09:00-10:00"}; !reflect.DeepEqual(g.Axis(), want) {
		t.Errorf("Axis() = %v, want %v", g.Axis(), want)
	}
}
