package trafikverket

import (
	"strings"

	"github.com/beevik/etree"
)

// Operation is a filter comparison operation. The value is the wire element
// name used inside the FILTER block.
type Operation string

const (
	OpEqual            Operation = "EQ"
	OpNotEqual         Operation = "NE"
	OpExists           Operation = "EXISTS"
	OpGreaterThan      Operation = "GT"
	OpGreaterThanEqual Operation = "GTE"
	OpLessThan         Operation = "LT"
	OpLessThanEqual    Operation = "LTE"
	OpLike             Operation = "LIKE"
	OpNotLike          Operation = "NOTLIKE"
	OpNotIn            Operation = "NOTIN"
	OpWithin           Operation = "WITHIN"
)

// Filter is one node of a filter expression tree. appendTo renders the node
// as a child of parent and returns the created element so groups can nest.
type Filter interface {
	appendTo(parent *etree.Element) *etree.Element
}

// FieldFilter filters on a single field. The field path is passed through
// verbatim; the server interprets it (e.g. "ViaToLocation.LocationName").
type FieldFilter struct {
	Operation Operation
	Name      string
	Value     string
}

// Field creates a FieldFilter.
func Field(op Operation, name, value string) FieldFilter {
	return FieldFilter{Operation: op, Name: name, Value: value}
}

func (f FieldFilter) appendTo(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(string(f.Operation))
	el.CreateAttr("name", f.Name)
	el.CreateAttr("value", f.Value)
	return el
}

// AndFilter groups filters that must all match.
type AndFilter struct {
	Filters []Filter
}

// And creates an AndFilter.
func And(filters ...Filter) AndFilter {
	return AndFilter{Filters: filters}
}

func (f AndFilter) appendTo(parent *etree.Element) *etree.Element {
	el := parent.CreateElement("AND")
	for _, sub := range f.Filters {
		sub.appendTo(el)
	}
	return el
}

// OrFilter groups filters of which at least one must match.
type OrFilter struct {
	Filters []Filter
}

// Or creates an OrFilter.
func Or(filters ...Filter) OrFilter {
	return OrFilter{Filters: filters}
}

func (f OrFilter) appendTo(parent *etree.Element) *etree.Element {
	el := parent.CreateElement("OR")
	for _, sub := range f.Filters {
		sub.appendTo(el)
	}
	return el
}

// SortOrder specifies how rows of data are sorted.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// FieldSort names a field to sort on and the direction.
type FieldSort struct {
	Field string
	Order SortOrder
}

// String renders the sort as it appears in the orderby attribute.
func (s FieldSort) String() string {
	return s.Field + " " + string(s.Order)
}

// joinSorts joins sort specs for the orderby attribute.
func joinSorts(sorts []FieldSort) string {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
