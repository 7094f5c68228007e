// Package search holds sorting criteria and the handlers that translate
// them into ORDER BY clauses of a gorm query.
package search

import (
	"errors"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection normalizes s to Asc or Desc. Anything but "desc"
// (case-insensitive) is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sorting is a named sort criterion.
type Sorting interface {
	Name() string
	Direction() Direction
}

// ErrEmptySortingName is returned by NewSimpleSorting for an empty name.
var ErrEmptySortingName = errors.New("no sorting name provided")

// SimpleSorting sorts by an arbitrary named field.
type SimpleSorting struct {
	name      string
	direction Direction
}

// NewSimpleSorting returns a sorting on name in direction.
func NewSimpleSorting(name string, direction Direction) (*SimpleSorting, error) {
	if name == "" {
		return nil, ErrEmptySortingName
	}
	return &SimpleSorting{name: name, direction: ParseDirection(string(direction))}, nil
}

func (s *SimpleSorting) Name() string         { return s.name }
func (s *SimpleSorting) Direction() Direction { return s.direction }

// LastNameSorting sorts customers by last name.
type LastNameSorting struct {
	direction Direction
}

func NewLastNameSorting(direction Direction) *LastNameSorting {
	return &LastNameSorting{direction: ParseDirection(string(direction))}
}

func (s *LastNameSorting) Name() string         { return "customer_lastname" }
func (s *LastNameSorting) Direction() Direction { return s.direction }
