package search

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortingHandler adds the ORDER BY clause for the sortings it supports.
type SortingHandler interface {
	Supports(s Sorting) bool
	Handle(s Sorting, query *gorm.DB) *gorm.DB
}

// LastNameSortingHandler orders by customer.lastname.
type LastNameSortingHandler struct{}

func (LastNameSortingHandler) Supports(s Sorting) bool {
	_, ok := s.(*LastNameSorting)
	return ok
}

func (LastNameSortingHandler) Handle(s Sorting, query *gorm.DB) *gorm.DB {
	return orderBy(query, "customer.lastname", s.Direction())
}

// SimpleSortingHandler orders by whitelisted column names. Columns maps a
// sorting name to the column it sorts.
type SimpleSortingHandler struct {
	Columns map[string]string
}

func (h SimpleSortingHandler) Supports(s Sorting) bool {
	simple, ok := s.(*SimpleSorting)
	if !ok {
		return false
	}
	_, known := h.Columns[simple.Name()]
	return known
}

func (h SimpleSortingHandler) Handle(s Sorting, query *gorm.DB) *gorm.DB {
	return orderBy(query, h.Columns[s.Name()], s.Direction())
}

func orderBy(query *gorm.DB, column string, dir Direction) *gorm.DB {
	return query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column, Raw: true},
		Desc:   dir == Desc,
	})
}

// UnsupportedSortingError is returned when no handler supports a sorting.
type UnsupportedSortingError struct {
	Sorting string
}

func (e *UnsupportedSortingError) Error() string {
	return fmt.Sprintf("sorting %s not supported", e.Sorting)
}

// Dispatcher routes each sorting to the first handler that supports it.
type Dispatcher struct {
	handlers []SortingHandler
}

// NewDispatcher returns a dispatcher trying handlers in the given order.
func NewDispatcher(handlers ...SortingHandler) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// Handler returns the first handler supporting s.
func (d *Dispatcher) Handler(s Sorting) (SortingHandler, error) {
	for _, h := range d.handlers {
		if h.Supports(s) {
			return h, nil
		}
	}
	return nil, &UnsupportedSortingError{Sorting: s.Name()}
}

// Apply adds the ORDER BY clauses of sortings to query in order.
func (d *Dispatcher) Apply(query *gorm.DB, sortings ...Sorting) (*gorm.DB, error) {
	for _, s := range sortings {
		h, err := d.Handler(s)
		if err != nil {
			return nil, err
		}
		query = h.Handle(s, query)
	}
	return query, nil
}
