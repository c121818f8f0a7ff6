// Package mission owns the committed schedule: which calendar dates already
// host a mission and what each mission says. The registry lives purely in
// process memory and is mutated only by the create workflow.
package mission

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by draft validation and registry mutation.
var (
	ErrMissingDate    = errors.New("mission: draft date is required")
	ErrMissingContent = errors.New("mission: draft content is required")
	ErrDateTaken      = errors.New("mission: date already hosts a mission")
)

// Mission is one scheduled mission: a calendar date plus its payload.
type Mission struct {
	Date    string // ISO YYYY-MM-DD
	Content string
	Prize   int // KRW
}

// Draft is the transient create-flow input. It either becomes a committed
// Mission on submit or is discarded on cancel.
type Draft struct {
	Date    string
	Prize   int
	Content string
}

// Validate checks the submission preconditions: a selected date and
// non-empty content. Prize is enforced at the form level and is not
// re-validated here.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Date) == "" {
		return ErrMissingDate
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrMissingContent
	}
	return nil
}

// Registry is the ordered, duplicate-free collection of scheduled missions.
type Registry struct {
	missions []Mission
	byDate   map[string]int
}

// NewRegistry seeds a registry, preserving order and dropping any
// duplicate dates after their first occurrence.
func NewRegistry(seed []Mission) *Registry {
	r := &Registry{byDate: make(map[string]int, len(seed))}
	for _, m := range seed {
		if _, taken := r.byDate[m.Date]; taken {
			continue
		}
		r.byDate[m.Date] = len(r.missions)
		r.missions = append(r.missions, m)
	}
	return r
}

// Scheduled reports whether the date already hosts a mission. This is the
// lookup the calendar availability model consumes.
func (r *Registry) Scheduled(date string) bool {
	_, ok := r.byDate[date]
	return ok
}

// Add appends a mission, enforcing the one-mission-per-day invariant.
func (r *Registry) Add(m Mission) error {
	if strings.TrimSpace(m.Date) == "" {
		return ErrMissingDate
	}
	if _, taken := r.byDate[m.Date]; taken {
		return fmt.Errorf("%w: %s", ErrDateTaken, m.Date)
	}
	r.byDate[m.Date] = len(r.missions)
	r.missions = append(r.missions, m)
	return nil
}

// Dates returns the scheduled dates in insertion order.
func (r *Registry) Dates() []string {
	out := make([]string, len(r.missions))
	for i, m := range r.missions {
		out[i] = m.Date
	}
	return out
}

// Missions returns a copy of the scheduled missions in insertion order.
func (r *Registry) Missions() []Mission {
	return append([]Mission(nil), r.missions...)
}

// Len returns the number of scheduled missions.
func (r *Registry) Len() int {
	return len(r.missions)
}
