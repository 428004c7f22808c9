// Package jobs orders job records for display.
package jobs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jobdash/jobdash/internal/types"
)

// SortKey names a sortable column
type SortKey string

// Sortable columns
const (
	SortByTitle      SortKey = "title"
	SortByCompany    SortKey = "company"
	SortByLocation   SortKey = "location"
	SortByDatePosted SortKey = "date_posted"
	SortByDateFound  SortKey = "date_found"
)

// SortKeys lists every valid key in column order
var SortKeys = []SortKey{SortByTitle, SortByCompany, SortByLocation, SortByDatePosted, SortByDateFound}

// Direction is ascending or descending
type Direction string

// Directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey validates a key coming from a flag or a request body
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (valid: %s)", s, joinKeys())
}

// ParseDirection validates a direction
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (valid: asc, desc)", s)
}

// Sort returns a new slice ordered by key. The input is never modified.
// The sort is stable in both directions: records with equal keys keep their input order.
// Absent or unparsable dates order before every valid date.
func Sort(in []types.Job, key SortKey, dir Direction) []types.Job {
	out := slices.Clone(in)
	if len(out) < 2 {
		return out
	}

	cmp := compareBy(key)
	if dir == Desc {
		slices.SortStableFunc(out, func(a, b types.Job) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func compareBy(key SortKey) func(a, b types.Job) int {
	switch key {
	case SortByTitle:
		return func(a, b types.Job) int { return strings.Compare(a.Title, b.Title) }
	case SortByCompany:
		return func(a, b types.Job) int { return strings.Compare(a.Company, b.Company) }
	case SortByLocation:
		return func(a, b types.Job) int { return strings.Compare(a.Location, b.Location) }
	case SortByDatePosted:
		return func(a, b types.Job) int { return a.DatePosted.Compare(b.DatePosted) }
	case SortByDateFound:
		return func(a, b types.Job) int { return a.DateFound.Compare(b.DateFound) }
	default:
		// unknown keys leave the order untouched
		return func(types.Job, types.Job) int { return 0 }
	}
}

// SortState is the column and direction the user picked
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSortState shows the most recently found jobs first
func DefaultSortState() SortState {
	return SortState{Key: SortByDateFound, Direction: Desc}
}

// Request applies a click on a column header: the same column toggles direction,
// a different column starts ascending.
func (s SortState) Request(key SortKey) SortState {
	if s.Key == key && s.Direction == Asc {
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Asc}
}

// Apply sorts jobs with this state
func (s SortState) Apply(in []types.Job) []types.Job {
	return Sort(in, s.Key, s.Direction)
}

func joinKeys() string {
	names := make([]string, len(SortKeys))
	for i, k := range SortKeys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
