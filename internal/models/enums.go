package models

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Weight orders priorities for the Priority sort. Unknown values weigh 0.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// Palette is the fixed set of category swatches.
var Palette = []string{
	"bg-blue-500", "bg-emerald-500", "bg-amber-500",
	"bg-red-500", "bg-purple-500", "bg-pink-500",
	"bg-cyan-500", "bg-orange-500",
}

func ValidColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// CategoryOrDefault returns the label a record is filed under.
func CategoryOrDefault(category string) string {
	if strings.TrimSpace(category) == "" {
		return DefaultCategory
	}
	return category
}

// ParseDueDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// An empty string yields nil.
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	// A bare date means midnight where the server runs, the zone overdue checks use.
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q", raw)
	}
	t = t.UTC()
	return &t, nil
}
