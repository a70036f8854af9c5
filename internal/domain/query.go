package domain

import "strings"

// Filter is one server-side column predicate. An empty Op means Value is
// already a rendered predicate group (the "or=(...)" form); otherwise the
// source renders "op.value".
type Filter struct {
	Column string
	Op     string // "eq" for every list predicate; the source builds "in" itself
	Value  any
}

// Eq builds the equality predicate all list filters use
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: "eq", Value: value}
}

// AnyOf builds a disjunction group over pre-rendered conditions, e.g.
// AnyOf("title_fa.ilike.*x*", "title_en.ilike.*x*")
func AnyOf(conditions ...string) Filter {
	return Filter{Column: "or", Value: "(" + strings.Join(conditions, ",") + ")"}
}

// Order is the server-side sort of a query. One column, one direction;
// ties land in backend scan order.
type Order struct {
	Column    string
	Ascending bool
}

// RemoteQuery is the shape of one read against a remote table.
type RemoteQuery struct {
	Select  string   // Column projection, "*" when empty
	Filters []Filter // ANDed predicates
	Order   Order    // Zero value means backend default order
	Limit   int      // Row cap, 0 means backend default
}
