package postgrest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filter is one equality-style constraint in PostgREST query syntax
// (column=op.value).
type Filter struct {
	Column string
	Op     string
	Value  string
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: "eq", Value: fmt.Sprint(value)}
}

// In builds a membership filter over a set of ids.
func In(column string, ids []int64) Filter {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return Filter{Column: column, Op: "in", Value: "(" + strings.Join(parts, ",") + ")"}
}

// Query describes a read: projected columns, filters, ordering, row limit.
// The zero value selects every column of every row.
type Query struct {
	Columns string
	Filters []Filter
	Order   []string // column names, ascending unless suffixed with .desc
	Limit   int
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Columns != "" {
		v.Set("select", q.Columns)
	} else {
		v.Set("select", "*")
	}
	for _, f := range q.Filters {
		v.Set(f.Column, f.Op+"."+f.Value)
	}
	if len(q.Order) > 0 {
		cols := make([]string, len(q.Order))
		for i, c := range q.Order {
			if strings.HasSuffix(c, ".asc") || strings.HasSuffix(c, ".desc") {
				cols[i] = c
			} else {
				cols[i] = c + ".asc"
			}
		}
		v.Set("order", strings.Join(cols, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func filterValues(filters []Filter) url.Values {
	v := url.Values{}
	for _, f := range filters {
		v.Set(f.Column, f.Op+"."+f.Value)
	}
	return v
}
