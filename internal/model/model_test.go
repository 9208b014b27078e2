package model

import (
	"errors"
	"testing"
)

func TestContactString(t *testing.T) {
	cases := []struct {
		in   Contact
		want string
	}{
		{Contact{Name: "Ana", Phone: "111"}, "Ana <111>"},
		{Contact{Name: "Bob"}, "Bob"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestContactValidate(t *testing.T) {
	if err := (Contact{Name: "  "}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName for blank name, got %v", err)
	}
	if err := (Contact{Name: "Ana"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestContactNormalize(t *testing.T) {
	got := Contact{Name: " Ana ", Phone: "\t111\n"}.Normalize()
	if got != (Contact{Name: "Ana", Phone: "111"}) {
		t.Fatalf("unexpected normalized contact: %+v", got)
	}
}
