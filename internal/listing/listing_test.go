package listing

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	p, err := ParseParams(url.Values{})
	require.NoError(t, err)
	require.Equal(t, Params{Page: 1, PerPage: DefaultPerPage}, p)
	require.Equal(t, 0, p.Offset())

	p, err = ParseParams(url.Values{"page": {"3"}, "per_page": {"25"}, "q": {"  shirt "}})
	require.NoError(t, err)
	require.Equal(t, Params{Page: 3, PerPage: 25, Search: "shirt"}, p)
	require.Equal(t, 50, p.Offset())

	for _, bad := range []url.Values{
		{"page": {"0"}},
		{"page": {"x"}},
		{"per_page": {"101"}},
		{"per_page": {"-1"}},
	} {
		_, err := ParseParams(bad)
		require.ErrorIs(t, err, ErrBadParam, bad)
	}
}

func TestNewPage_NeverNilItems(t *testing.T) {
	pg := NewPage[int](nil, 0, Params{Page: 1, PerPage: 10})
	require.NotNil(t, pg.Items)
	require.Empty(t, pg.Items)
}

func TestDateRangeSince(t *testing.T) {
	now := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)

	_, ok := AnyDate.Since(now)
	require.False(t, ok)

	cases := map[DateRange]time.Time{
		Today:     time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		Past7Days: time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC),
		ThisMonth: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		ThisYear:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for r, want := range cases {
		got, ok := r.Since(now)
		require.True(t, ok, r)
		require.Equal(t, want, got, r)
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("this_month")
	require.NoError(t, err)
	require.Equal(t, ThisMonth, r)

	_, err = ParseDateRange("yesterday")
	require.ErrorIs(t, err, ErrBadParam)
}

func TestParseBoolAndID(t *testing.T) {
	b, err := ParseBool("is_paid", "")
	require.NoError(t, err)
	require.Nil(t, b)

	b, err = ParseBool("is_paid", "true")
	require.NoError(t, err)
	require.True(t, *b)

	_, err = ParseBool("is_paid", "maybe")
	require.ErrorIs(t, err, ErrBadParam)

	id, err := ParseID("product", "42")
	require.NoError(t, err)
	require.Equal(t, int64(42), *id)

	_, err = ParseID("product", "0")
	require.ErrorIs(t, err, ErrBadParam)
}

func TestWhere(t *testing.T) {
	var w Where
	require.Equal(t, "", w.SQL())

	w.Add("p.status = ?", "size")
	w.Like("50%_off", "p.name", "p.slug")
	w.Add("p.datetime_created >= ? AND p.id <> ?", "t", 7)

	require.Equal(t,
		" WHERE p.status = $1 AND (p.name ILIKE $2 OR p.slug ILIKE $2) AND p.datetime_created >= $3 AND p.id <> $4",
		w.SQL())
	require.Equal(t, []any{"size", `%50\%\_off%`, "t", 7}, w.Args())

	limit, args := w.Page(Params{Page: 2, PerPage: 10})
	require.Equal(t, " LIMIT $5 OFFSET $6", limit)
	require.Equal(t, []any{"size", `%50\%\_off%`, "t", 7, 10, 10}, args)
	require.Len(t, w.Args(), 4)
}

func TestWhere_LikeIgnoresEmpty(t *testing.T) {
	var w Where
	w.Like("", "name")
	require.Equal(t, "", w.SQL())
}
