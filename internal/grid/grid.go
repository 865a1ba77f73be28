package grid

import (
	"sort"

	"timetable-portal/api"
)

// Days is the fixed column order of the timetable. It is configuration,
// not derived from data; entries naming any other day land in no cell.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Label renders a (start, end) pair as the grid row key.
func Label(start, end string) string {
	return start + "-" + end
}

type cellKey struct {
	day   string
	label string
}

// Grid is a day-by-time-slot index over one timetable snapshot. Built once
// per fetch; lookups are O(1).
type Grid struct {
	axis  []string
	cells map[cellKey][]api.ScheduleEntry
}

// Build indexes the entries in one pass. The axis is the distinct set of
// "start-end" labels over all entries, sorted ascending; times are
// zero-padded 24-hour HH:MM so lexicographic order is chronological.
func Build(entries []api.ScheduleEntry) *Grid {
	known := make(map[string]struct{}, len(Days))
	for _, day := range Days {
		known[day] = struct{}{}
	}

	g := &Grid{
		cells: make(map[cellKey][]api.ScheduleEntry),
	}

	seen := make(map[string]struct{})

	for _, entry := range entries {
		label := Label(entry.StartTime, entry.EndTime)

		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			g.axis = append(g.axis, label)
		}

		if _, ok := known[entry.Day]; !ok {
			continue
		}

		key := cellKey{day: entry.Day, label: label}
		g.cells[key] = append(g.cells[key], entry)
	}

	sort.Strings(g.axis)

	return g
}

// Axis returns the sorted time-slot labels.
func (g *Grid) Axis() []string {
	return g.axis
}

// Cell returns the entries scheduled at (day, label) in their original
// relative order.
func (g *Grid) Cell(day, label string) []api.ScheduleEntry {
	return g.cells[cellKey{day: day, label: label}]
}

// Available reports whether the snapshot produced any time slot at all.
// An empty grid means "no timetable available", not an error.
func (g *Grid) Available() bool {
	return len(g.axis) > 0
}

// Row is one rendered axis row: the label plus the per-day cells.
type Row struct {
	Time  string                         `json:"time"`
	Cells map[string][]api.ScheduleEntry `json:"cells"`
}

// Rows produces the view payload, one row per axis label in axis order.
func (g *Grid) Rows() []Row {
	rows := make([]Row, 0, len(g.axis))

	for _, label := range g.axis {
		row := Row{
			Time:  label,
			Cells: make(map[string][]api.ScheduleEntry, len(Days)),
		}
		for _, day := range Days {
			if cell := g.Cell(day, label); len(cell) > 0 {
				row.Cells[day] = cell
			}
		}
		rows = append(rows, row)
	}

	return rows
}
