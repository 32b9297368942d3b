// filters.go: typed filter expressions for list queries. Handlers build a
// Filter value instead of assembling ad-hoc WHERE fragments; the store applies
// it to a gorm query in one place.
package datastore

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type predicate struct {
	clause string
	args   []any
}

// Filter is a conjunction of equality, substring and range predicates.
// The zero value matches everything.
type Filter struct {
	preds []predicate
}

// Eq adds an equality predicate.
func (f *Filter) Eq(column string, value any) *Filter {
	f.preds = append(f.preds, predicate{clause: column + " = ?", args: []any{value}})
	return f
}

// In adds a set-membership predicate.
func (f *Filter) In(column string, values []string) *Filter {
	f.preds = append(f.preds, predicate{clause: column + " IN ?", args: []any{values}})
	return f
}

// Like adds a case-insensitive substring predicate.
func (f *Filter) Like(column, substring string) *Filter {
	f.preds = append(f.preds, predicate{
		clause: "LOWER(" + column + ") LIKE ?",
		args:   []any{"%" + strings.ToLower(substring) + "%"},
	})
	return f
}

// AnyLike adds one predicate that matches when any of the columns contains the
// substring, case-insensitively.
func (f *Filter) AnyLike(columns []string, substring string) *Filter {
	if len(columns) == 0 || substring == "" {
		return f
	}
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	needle := "%" + strings.ToLower(substring) + "%"
	for _, column := range columns {
		parts = append(parts, "LOWER("+column+") LIKE ?")
		args = append(args, needle)
	}
	f.preds = append(f.preds, predicate{clause: "(" + strings.Join(parts, " OR ") + ")", args: args})
	return f
}

// Range adds an inclusive range predicate. Empty bounds are open.
func (f *Filter) Range(column, from, to string) *Filter {
	if from != "" {
		f.preds = append(f.preds, predicate{clause: column + " >= ?", args: []any{from}})
	}
	if to != "" {
		f.preds = append(f.preds, predicate{clause: column + " <= ?", args: []any{to}})
	}
	return f
}

// Apply attaches every predicate to the query.
func (f *Filter) Apply(query *gorm.DB) *gorm.DB {
	for _, p := range f.preds {
		query = query.Where(p.clause, p.args...)
	}
	return query
}

// MonthVariants returns the stored representations that denote the same
// calendar month: the zero-padded and the unpadded decimal string. Values that
// do not parse as an integer are returned as-is.
func MonthVariants(bulan string) []string {
	month, err := strconv.Atoi(strings.TrimSpace(bulan))
	if err != nil {
		return []string{bulan}
	}
	padded := fmt.Sprintf("%02d", month)
	plain := strconv.Itoa(month)
	if padded == plain {
		return []string{padded}
	}
	return []string{padded, plain}
}

// TrafficQuery describes one paginated traffic-flight list request.
type TrafficQuery struct {
	Search   string // substring over text columns, case-insensitive
	Bulan    string // partition month, tolerant of zero padding
	Tahun    string // partition year
	SortBy   string // column to sort on, validated by the store
	SortDesc bool
	Page     int // 1-based
	Limit    int
}

// IncidentQuery describes one paginated list request over the strike or
// species tables.
type IncidentQuery struct {
	Search   string
	SortDesc bool
	Page     int
	Limit    int
}

// ModelQuery describes one cursor-paginated model-row list request. Cursor is
// the last-seen row id, zero for the first page.
type ModelQuery struct {
	Strike   string // "1", "0" or empty for both
	Search   string
	Cursor   uint
	Limit    int
	SortDesc bool
}

// ModelDeleteFilter selects model rows for bulk deletion by source and an
// inclusive date range.
type ModelDeleteFilter struct {
	Strike string
	Since  string
	Until  string
}
