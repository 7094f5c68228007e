package search

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type customer struct {
	ID       int
	Lastname string
}

func (customer) TableName() string { return "s_user" }

func newMockDB(t *testing.T, dryRun bool) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true, DryRun: dryRun})
	require.NoError(t, err)
	return db, mock
}

func renderSQL(t *testing.T, query *gorm.DB) string {
	t.Helper()
	var rows []customer
	return query.Find(&rows).Statement.SQL.String()
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"ASC":   Asc,
		"asc":   Asc,
		"DESC":  Desc,
		" desc": Desc,
		"":      Asc,
		"down":  Asc,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseDirection(in), in)
	}
}

func TestNewSimpleSorting(t *testing.T) {
	s, err := NewSimpleSorting("popularity", "desc")
	require.NoError(t, err)
	assert.Equal(t, "popularity", s.Name())
	assert.Equal(t, Desc, s.Direction())

	_, err = NewSimpleSorting("", Asc)
	assert.ErrorIs(t, err, ErrEmptySortingName)
}

func TestLastNameSortingHandler(t *testing.T) {
	db, _ := newMockDB(t, true)
	h := LastNameSortingHandler{}

	assert.True(t, h.Supports(NewLastNameSorting(Asc)))
	simple, _ := NewSimpleSorting("lastname", Asc)
	assert.False(t, h.Supports(simple))

	sql := renderSQL(t, h.Handle(NewLastNameSorting(Desc), db.Model(&customer{})))
	assert.Contains(t, sql, "ORDER BY customer.lastname DESC")

	sql = renderSQL(t, h.Handle(NewLastNameSorting(Asc), db.Model(&customer{})))
	assert.Contains(t, sql, "ORDER BY customer.lastname")
	assert.NotContains(t, sql, "DESC")
}

func TestSimpleSortingHandler(t *testing.T) {
	db, _ := newMockDB(t, true)
	h := SimpleSortingHandler{Columns: map[string]string{"popularity": "product.sales"}}

	known, _ := NewSimpleSorting("popularity", Desc)
	unknown, _ := NewSimpleSorting("password", Asc)
	assert.True(t, h.Supports(known))
	assert.False(t, h.Supports(unknown))
	assert.False(t, h.Supports(NewLastNameSorting(Asc)))

	sql := renderSQL(t, h.Handle(known, db.Model(&customer{})))
	assert.Contains(t, sql, "ORDER BY product.sales DESC")
}

func TestDispatcher_FirstSupportingHandlerWins(t *testing.T) {
	first := SimpleSortingHandler{Columns: map[string]string{"name": "first.name"}}
	second := SimpleSortingHandler{Columns: map[string]string{"name": "second.name"}}
	d := NewDispatcher(LastNameSortingHandler{}, first, second)

	s, _ := NewSimpleSorting("name", Asc)
	h, err := d.Handler(s)
	require.NoError(t, err)
	assert.Equal(t, first, h)
}

func TestDispatcher_Apply(t *testing.T) {
	db, mock := newMockDB(t, false)
	d := NewDispatcher(
		LastNameSortingHandler{},
		SimpleSortingHandler{Columns: map[string]string{"id": "customer.id"}},
	)

	byID, _ := NewSimpleSorting("id", Asc)
	query, err := d.Apply(db.Model(&customer{}), NewLastNameSorting(Desc), byID)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "s_user" ORDER BY customer.lastname DESC,customer.id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lastname"}).
			AddRow(2, "Zuse").
			AddRow(1, "Adams"))

	var rows []customer
	require.NoError(t, query.Find(&rows).Error)
	assert.Equal(t, []customer{{ID: 2, Lastname: "Zuse"}, {ID: 1, Lastname: "Adams"}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcher_Unsupported(t *testing.T) {
	db, _ := newMockDB(t, true)
	d := NewDispatcher(LastNameSortingHandler{})

	s, _ := NewSimpleSorting("price", Asc)
	_, err := d.Apply(db.Model(&customer{}), s)

	var unsupported *UnsupportedSortingError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "price", unsupported.Sorting)
	assert.EqualError(t, err, "sorting price not supported")
}
