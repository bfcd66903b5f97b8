// Package schedule lays out construction tasks back to back on a calendar.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// BarWidthPerDay scales a task's duration into a Gantt bar width in pixels.
const BarWidthPerDay = 20

var ErrNoTasks = errors.New("at least one task is required")

type Task struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration"`
}

type ScheduledTask struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DurationDays int    `json:"duration"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartDay     int    `json:"start_day"`
	Width        int    `json:"width"`
}

type Schedule struct {
	Tasks         []ScheduledTask `json:"tasks"`
	ProjectStart  string          `json:"project_start"`
	ProjectEnd    string          `json:"project_end"`
	TotalDuration int             `json:"total_duration"`
	TotalTasks    int             `json:"total_tasks"`
}

// Create schedules tasks sequentially from start. Each task occupies whole
// days inclusive of both ends; the next task begins the following day.
func Create(tasks []Task, start time.Time) (Schedule, error) {
	if len(tasks) == 0 {
		return Schedule{}, ErrNoTasks
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	out := Schedule{
		Tasks:        make([]ScheduledTask, 0, len(tasks)),
		ProjectStart: day.Format(dateLayout),
		TotalTasks:   len(tasks),
	}
	offset := 0
	for i, t := range tasks {
		if strings.TrimSpace(t.Name) == "" {
			return Schedule{}, fmt.Errorf("task %d: name is required", i+1)
		}
		if t.DurationDays <= 0 {
			return Schedule{}, fmt.Errorf("task %q: duration must be at least one day", t.Name)
		}
		first := day.AddDate(0, 0, offset)
		last := first.AddDate(0, 0, t.DurationDays-1)
		out.Tasks = append(out.Tasks, ScheduledTask{
			ID:           i + 1,
			Name:         t.Name,
			DurationDays: t.DurationDays,
			StartDate:    first.Format(dateLayout),
			EndDate:      last.Format(dateLayout),
			StartDay:     offset + 1,
			Width:        t.DurationDays * BarWidthPerDay,
		})
		offset += t.DurationDays
		out.ProjectEnd = last.Format(dateLayout)
	}
	out.TotalDuration = offset
	return out, nil
}

// Summary renders the schedule as plain lines for prompts and logs.
func (s Schedule) Summary() string {
	var b strings.Builder
	for _, t := range s.Tasks {
		fmt.Fprintf(&b, "%d. %s: %d days (%s to %s)\n", t.ID, t.Name, t.DurationDays, t.StartDate, t.EndDate)
	}
	fmt.Fprintf(&b, "Total: %d days, %s to %s\n", s.TotalDuration, s.ProjectStart, s.ProjectEnd)
	return b.String()
}
