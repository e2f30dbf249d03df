package domain

import "testing"

func TestMatchRateWithinTolerance(t *testing.T) {
	categories := []DutyCategory{
		{ID: 1, Label: "Apparel", Rate: 12.5},
		{ID: 2, Label: "Electronics", Rate: 20},
		{ID: 3, Label: "Furniture", Rate: 20.005},
	}

	match, ok := MatchRate(categories, 20.004)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.ID != 2 {
		t.Fatalf("expected first matching category, got %d", match.ID)
	}

	if _, ok := MatchRate(categories, 20.5); ok {
		t.Fatal("expected no match outside tolerance")
	}
	if _, ok := MatchRate(nil, 0); ok {
		t.Fatal("expected no match on empty list")
	}
}

func TestSelectionIsOther(t *testing.T) {
	cases := map[string]bool{
		"":      true,
		"other": true,
		"OTHER": true,
		" ":     true,
		"12345": false,
	}
	for choice, want := range cases {
		if got := (Selection{Choice: choice}).IsOther(); got != want {
			t.Fatalf("choice %q: expected %v, got %v", choice, want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	c := DutyCategory{Label: "X", Rate: -1}
	if err := c.Validate(); err != ErrInvalidRate {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	c = DutyCategory{Label: "  ", Rate: 1}
	if err := c.Validate(); err != ErrInvalidLabel {
		t.Fatalf("expected ErrInvalidLabel, got %v", err)
	}
	c = DutyCategory{Label: "%", Rate: 1}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected symbol-only label to be valid, got %v", err)
	}
}
