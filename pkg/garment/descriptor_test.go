package garment

import "testing"

func TestNew_FillsMissingFieldsWithSentinels(t *testing.T) {
	d := New("", "blue")
	if d.Category != UnknownCategory || d.Color != "blue" {
		t.Errorf("Expected {%s blue}, got %v", UnknownCategory, d)
	}

	d = New("shirt", "")
	if d.Category != "shirt" || d.Color != UnknownColor {
		t.Errorf("Expected {shirt %s}, got %v", UnknownColor, d)
	}
}

func TestUnknown_IsRecognizedAsUnknown(t *testing.T) {
	if !Unknown().IsUnknown() {
		t.Errorf("Expected sentinel descriptor to be unknown")
	}

	if New("jacket", "black").IsUnknown() {
		t.Errorf("Expected detected descriptor not to be unknown")
	}
}

func TestString_OmitsUnknownColor(t *testing.T) {
	if s := New("jacket", "red").String(); s != "red jacket" {
		t.Errorf("Expected \"red jacket\", got %q", s)
	}

	if s := Unknown().String(); s != UnknownCategory {
		t.Errorf("Expected %q, got %q", UnknownCategory, s)
	}
}
