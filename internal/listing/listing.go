// Package listing carries the paging, search and filter plumbing shared by the admin lists.
package listing

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var ErrBadParam = errors.New("bad list parameter")

type Params struct {
	Page    int
	PerPage int
	Search  string
}

func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// ParseParams reads page, per_page and q from a query string.
func ParseParams(v url.Values) (Params, error) {
	p := Params{Page: 1, PerPage: DefaultPerPage, Search: strings.TrimSpace(v.Get("q"))}
	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("%w: page=%q", ErrBadParam, s)
		}
		p.Page = n
	}
	if s := v.Get("per_page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxPerPage {
			return Params{}, fmt.Errorf("%w: per_page=%q", ErrBadParam, s)
		}
		p.PerPage = n
	}
	return p, nil
}

type Page[T any] struct {
	Items   []T `json:"items"`
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func NewPage[T any](items []T, count int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Count: count, Page: p.Page, PerPage: p.PerPage}
}

// DateRange is the admin date filter on a creation timestamp.
type DateRange string

const (
	AnyDate   DateRange = ""
	Today     DateRange = "today"
	Past7Days DateRange = "past_7_days"
	ThisMonth DateRange = "this_month"
	ThisYear  DateRange = "this_year"
)

func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(s); r {
	case AnyDate, Today, Past7Days, ThisMonth, ThisYear:
		return r, nil
	}
	return AnyDate, fmt.Errorf("%w: created=%q", ErrBadParam, s)
}

// Since returns the inclusive lower bound of r relative to now, in now's location.
// ok is false for AnyDate.
func (r DateRange) Since(now time.Time) (since time.Time, ok bool) {
	y, m, d := now.Date()
	loc := now.Location()
	switch r {
	case Today:
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	case Past7Days:
		return time.Date(y, m, d-7, 0, 0, 0, 0, loc), true
	case ThisMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc), true
	case ThisYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

// ParseBool reads an optional boolean filter; empty means unset.
func ParseBool(name, s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrBadParam, name, s)
	}
	return &b, nil
}

// ParseID reads an optional positive id filter; empty means unset.
func ParseID(name, s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: %s=%q", ErrBadParam, name, s)
	}
	return &n, nil
}
