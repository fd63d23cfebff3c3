package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "exact match", input: "ANIMAL", want: CategoryAnimal},
		{name: "lowercase", input: "animal", want: CategoryAnimal},
		{name: "mixed case", input: "MoViE", want: CategoryMovie},
		{name: "surrounding whitespace", input: "  FOOD  ", want: CategoryFood},
		{name: "unknown value", input: "DINOSAUR", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCategory(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllCategoriesAreValid(t *testing.T) {
	for _, c := range AllCategories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
		if c.DisplayName() == string(c) {
			t.Errorf("category %q has no display name", c)
		}
	}
}

func TestCategoryDisplayName(t *testing.T) {
	if got := CategoryAnimal.DisplayName(); got != "Animal" {
		t.Errorf("DisplayName() = %q, want %q", got, "Animal")
	}
	// Unknown values fall back to the raw tag
	if got := Category("DINOSAUR").DisplayName(); got != "DINOSAUR" {
		t.Errorf("DisplayName() = %q, want %q", got, "DINOSAUR")
	}
}

func TestCategoryValid(t *testing.T) {
	if Category("DINOSAUR").Valid() {
		t.Error("unknown category should not be valid")
	}
	if Category("").Valid() {
		t.Error("empty category should not be valid")
	}
}
