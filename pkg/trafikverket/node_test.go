package trafikverket

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/etree"
)

func elementFromXML(t *testing.T, raw string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.Root()
}

func TestNodeHelper_Text(t *testing.T) {
	node := elementFromXML(t, `<Station>
		<Name>Nöbbele</Name>
		<Nested><Deep>value</Deep></Nested>
		<Dup>a</Dup><Dup>b</Dup>
	</Station>`)
	helper := NewNodeHelper(node)

	got, err := helper.Text("Name")
	if err != nil {
		t.Fatalf("Text(Name) error: %v", err)
	}
	if got == nil || *got != "Nöbbele" {
		t.Errorf("Text(Name) = %v, want Nöbbele", got)
	}

	got, err = helper.Text("Nested/Deep")
	if err != nil {
		t.Fatalf("Text(Nested/Deep) error: %v", err)
	}
	if got == nil || *got != "value" {
		t.Errorf("Text(Nested/Deep) = %v, want value", got)
	}

	got, err = helper.Text("Missing")
	if err != nil {
		t.Fatalf("Text(Missing) error: %v", err)
	}
	if got != nil {
		t.Errorf("Text(Missing) = %v, want nil", *got)
	}

	_, err = helper.Text("Dup")
	if !errors.Is(err, ErrMultipleNodes) {
		t.Errorf("Text(Dup) error = %v, want ErrMultipleNodes", err)
	}
}

func TestNodeHelper_Number(t *testing.T) {
	node := elementFromXML(t, `<Obs>
		<Value>-3.5</Value>
		<Bad>not-a-number</Bad>
		<Dup>1</Dup><Dup>2</Dup>
	</Obs>`)
	helper := NewNodeHelper(node)

	got, err := helper.Number("Value")
	if err != nil {
		t.Fatalf("Number(Value) error: %v", err)
	}
	if got == nil || *got != -3.5 {
		t.Errorf("Number(Value) = %v, want -3.5", got)
	}

	// Unparsable values yield nil rather than an error.
	got, err = helper.Number("Bad")
	if err != nil {
		t.Fatalf("Number(Bad) error: %v", err)
	}
	if got != nil {
		t.Errorf("Number(Bad) = %v, want nil", *got)
	}

	got, err = helper.Number("Missing")
	if err != nil || got != nil {
		t.Errorf("Number(Missing) = %v, %v, want nil, nil", got, err)
	}

	_, err = helper.Number("Dup")
	if !errors.Is(err, ErrMultipleNodes) {
		t.Errorf("Number(Dup) error = %v, want ErrMultipleNodes", err)
	}
}

func TestNodeHelper_Bool(t *testing.T) {
	node := elementFromXML(t, `<Obs>
		<Yes>true</Yes>
		<AlsoYes>TRUE</AlsoYes>
		<No>false</No>
		<Junk>yes please</Junk>
		<Dup>true</Dup><Dup>true</Dup>
	</Obs>`)
	helper := NewNodeHelper(node)

	tests := []struct {
		path string
		want bool
	}{
		{"Yes", true},
		{"AlsoYes", true},
		{"No", false},
		{"Junk", false},
	}
	for _, tt := range tests {
		got, err := helper.Bool(tt.path)
		if err != nil {
			t.Fatalf("Bool(%s) error: %v", tt.path, err)
		}
		if got == nil || *got != tt.want {
			t.Errorf("Bool(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	// Absence is nil, not false.
	got, err := helper.Bool("Missing")
	if err != nil {
		t.Fatalf("Bool(Missing) error: %v", err)
	}
	if got != nil {
		t.Errorf("Bool(Missing) = %v, want nil", *got)
	}

	_, err = helper.Bool("Dup")
	if !errors.Is(err, ErrMultipleNodes) {
		t.Errorf("Bool(Dup) error = %v, want ErrMultipleNodes", err)
	}
}

func TestNodeHelper_Texts(t *testing.T) {
	node := elementFromXML(t, `<Stop>
		<Info>first</Info>
		<Info>second</Info>
		<Info>third</Info>
	</Stop>`)
	helper := NewNodeHelper(node)

	got := helper.Texts("Info")
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Texts(Info) len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Texts(Info)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Zero matches is an empty slice, not nil.
	if got := helper.Texts("Missing"); got == nil || len(got) != 0 {
		t.Errorf("Texts(Missing) = %v, want empty slice", got)
	}
}

func TestNodeHelper_DateTime(t *testing.T) {
	node := elementFromXML(t, `<Stop>
		<Departure>2024-05-01T12:30:00.000000+02:00</Departure>
		<Dup>2024-05-01T12:30:00.000000+02:00</Dup>
		<Dup>2024-05-01T12:30:00.000000+02:00</Dup>
	</Stop>`)
	helper := NewNodeHelper(node)

	got, err := helper.DateTime("Departure")
	if err != nil {
		t.Fatalf("DateTime error: %v", err)
	}
	if got == nil {
		t.Fatal("DateTime = nil, want value")
	}
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.FixedZone("", 2*3600))
	if !got.Equal(want) {
		t.Errorf("DateTime = %v, want %v", got, want)
	}

	if got, err := helper.DateTime("Missing"); err != nil || got != nil {
		t.Errorf("DateTime(Missing) = %v, %v, want nil, nil", got, err)
	}

	if _, err := helper.DateTime("Dup"); !errors.Is(err, ErrMultipleNodes) {
		t.Errorf("DateTime(Dup) error = %v, want ErrMultipleNodes", err)
	}
}

func TestNodeHelper_DateTimeModified(t *testing.T) {
	node := elementFromXML(t, `<Stop>
		<ModifiedTime>2024-05-01T10:30:00.000000Z</ModifiedTime>
	</Stop>`)
	helper := NewNodeHelper(node)

	got, err := helper.DateTimeModified("ModifiedTime")
	if err != nil {
		t.Fatalf("DateTimeModified error: %v", err)
	}
	if got == nil {
		t.Fatal("DateTimeModified = nil, want value")
	}
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateTimeModified = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("DateTimeModified zone = %v, want UTC", got.Location())
	}

	if got, err := helper.DateTimeModified("Missing"); err != nil || got != nil {
		t.Errorf("DateTimeModified(Missing) = %v, %v, want nil, nil", got, err)
	}
}

// The two wire formats must not be conflated: the general layout requires an
// offset, the modified layout a literal Z.
func TestNodeHelper_DateTimeFormatsAreDistinct(t *testing.T) {
	node := elementFromXML(t, `<Stop>
		<General>2024-05-01T12:30:00.000000+02:00</General>
		<Modified>2024-05-01T10:30:00.000000Z</Modified>
	</Stop>`)
	helper := NewNodeHelper(node)

	if _, err := helper.DateTime("Modified"); err == nil {
		t.Error("DateTime on a modified-format value should fail")
	}
	if _, err := helper.DateTimeModified("General"); err == nil {
		t.Error("DateTimeModified on a general-format value should fail")
	}
}
