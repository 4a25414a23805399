package trafikverket

import (
	"testing"

	"github.com/beevik/etree"
)

func TestFieldFilter_AppendTo(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		field   string
		value   string
		wantTag string
	}{
		{"equal", OpEqual, "Name", "Nöbbele", "EQ"},
		{"not equal", OpNotEqual, "Deleted", "true", "NE"},
		{"exists", OpExists, "PhotoUrl", "true", "EXISTS"},
		{"greater than", OpGreaterThan, "DepartureTime", "2024-05-01T12:00:00", "GT"},
		{"greater than equal", OpGreaterThanEqual, "AdvertisedTimeAtLocation", "2024-05-01T12:00:00", "GTE"},
		{"less than", OpLessThan, "Id", "100", "LT"},
		{"less than equal", OpLessThanEqual, "Id", "100", "LTE"},
		{"like", OpLike, "AdvertisedLocationName", "Stock", "LIKE"},
		{"not like", OpNotLike, "Name", "Test", "NOTLIKE"},
		{"not in", OpNotIn, "Id", "1,2", "NOTIN"},
		{"within", OpWithin, "Geometry.WGS84", "center 17 59 radius 500", "WITHIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := etree.NewElement("FILTER")
			el := Field(tt.op, tt.field, tt.value).appendTo(parent)

			if got := el.Tag; got != tt.wantTag {
				t.Errorf("tag = %q, want %q", got, tt.wantTag)
			}
			if got := el.SelectAttrValue("name", ""); got != tt.field {
				t.Errorf("name attr = %q, want %q", got, tt.field)
			}
			if got := el.SelectAttrValue("value", ""); got != tt.value {
				t.Errorf("value attr = %q, want %q", got, tt.value)
			}
			if len(parent.ChildElements()) != 1 {
				t.Errorf("parent has %d children, want 1", len(parent.ChildElements()))
			}
		})
	}
}

func TestGroupFilters_Nesting(t *testing.T) {
	parent := etree.NewElement("FILTER")
	Or(
		Field(OpLike, "Name", "y"),
		Field(OpLike, "Id", "y"),
	).appendTo(parent)
	And(
		Field(OpEqual, "Advertised", "true"),
		Or(Field(OpEqual, "A", "1"), Field(OpEqual, "B", "2")),
	).appendTo(parent)

	children := parent.ChildElements()
	if len(children) != 2 {
		t.Fatalf("top-level children = %d, want 2", len(children))
	}

	or := children[0]
	if or.Tag != "OR" {
		t.Errorf("first child tag = %q, want OR", or.Tag)
	}
	if got := len(or.ChildElements()); got != 2 {
		t.Errorf("OR children = %d, want 2", got)
	}
	for _, leaf := range or.ChildElements() {
		if leaf.Tag != "LIKE" {
			t.Errorf("OR leaf tag = %q, want LIKE", leaf.Tag)
		}
		if got := leaf.SelectAttrValue("value", ""); got != "y" {
			t.Errorf("OR leaf value = %q, want y", got)
		}
	}

	and := children[1]
	if and.Tag != "AND" {
		t.Errorf("second child tag = %q, want AND", and.Tag)
	}
	andChildren := and.ChildElements()
	if len(andChildren) != 2 {
		t.Fatalf("AND children = %d, want 2", len(andChildren))
	}
	if andChildren[0].Tag != "EQ" {
		t.Errorf("AND first child tag = %q, want EQ", andChildren[0].Tag)
	}
	nested := andChildren[1]
	if nested.Tag != "OR" {
		t.Errorf("nested group tag = %q, want OR", nested.Tag)
	}
	if got := len(nested.ChildElements()); got != 2 {
		t.Errorf("nested OR children = %d, want 2", got)
	}
}

func TestEmptyGroup_SerializesEmpty(t *testing.T) {
	parent := etree.NewElement("FILTER")
	el := And().appendTo(parent)
	if len(el.ChildElements()) != 0 {
		t.Errorf("empty AND has %d children, want 0", len(el.ChildElements()))
	}
}

func TestFieldSort_String(t *testing.T) {
	tests := []struct {
		sort FieldSort
		want string
	}{
		{FieldSort{Field: "AdvertisedTimeAtLocation", Order: Ascending}, "AdvertisedTimeAtLocation asc"},
		{FieldSort{Field: "DepartureTime", Order: Descending}, "DepartureTime desc"},
	}
	for _, tt := range tests {
		if got := tt.sort.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestJoinSorts(t *testing.T) {
	sorts := []FieldSort{
		{Field: "A", Order: Ascending},
		{Field: "B", Order: Descending},
	}
	if got := joinSorts(sorts); got != "A asc, B desc" {
		t.Errorf("joinSorts = %q, want %q", got, "A asc, B desc")
	}
}
