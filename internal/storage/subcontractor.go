package storage

import (
	"errors"
	"strings"

	"effort-planner/internal/constants"
)

var ErrEmptyName = errors.New("subcontractor name is empty")

type Subcontractor struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

func (s Subcontractor) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// DefaultSubcontractors is the seed used by every directory backend.
func DefaultSubcontractors() []Subcontractor {
	out := make([]Subcontractor, 0, len(constants.Subcontractors))
	for i, name := range constants.Subcontractors {
		out = append(out, Subcontractor{Name: name, SortOrder: i + 1, IsActive: true})
	}
	return out
}

// Names returns the names of subs in order.
func Names(subs []Subcontractor) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Name)
	}
	return out
}
