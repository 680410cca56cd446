package database

import (
	"testing"
	"time"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

func TestCaseFoldingRoundTrip(t *testing.T) {
	d := NewFirebirdDialect(model.DefaultBooleanDomain)

	for _, name := range []string{"users", "order_items", "a1", "x$y", "created_at"} {
		folded := d.ToCatalogCase(name)
		if folded == name {
			t.Errorf("Expected %s to be folded to catalog case, got %s", name, folded)
		}
		if restored := d.FromCatalogCase(folded); restored != name {
			t.Errorf("Round trip of %s: expected %s, got %s", name, name, restored)
		}
	}
}

func TestCaseFoldingMixedCase(t *testing.T) {
	d := NewFirebirdDialect(model.DefaultBooleanDomain)

	if got := d.ToCatalogCase("CamelCase"); got != "CamelCase" {
		t.Errorf("Expected mixed case to pass through, got %s", got)
	}
	if got := d.FromCatalogCase("CamelCase   "); got != "CamelCase" {
		t.Errorf("Expected padding trimmed and case kept, got %q", got)
	}
	if got := d.FromCatalogCase("USERS                          "); got != "users" {
		t.Errorf("Expected users, got %q", got)
	}
}

func TestQuoteColumnName(t *testing.T) {
	d := NewFirebirdDialect(model.DefaultBooleanDomain)

	tests := map[string]string{
		"email":    `"EMAIL"`,
		"Email":    `"Email"`,
		`odd"name`: `"ODD""NAME"`,
	}
	for name, expected := range tests {
		if got := d.QuoteColumnName(name); got != expected {
			t.Errorf("QuoteColumnName(%q): expected %s, got %s", name, expected, got)
		}
	}
	if got := d.QuoteTableName("users"); got != `"USERS"` {
		t.Errorf(`Expected "USERS", got %s`, got)
	}
}

type label string

func (l label) String() string { return string(l) }

func TestQuote(t *testing.T) {
	d := NewFirebirdDialect(model.DefaultBooleanDomain)

	tests := []struct {
		value    interface{}
		expected string
	}{
		{nil, "NULL"},
		{true, "1"},
		{false, "0"},
		{"it's", "'it''s'"},
		{[]byte("raw"), "'raw'"},
		{42, "42"},
		{int64(-7), "-7"},
		{1.5, "1.5"},
		{time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC), "'2024-03-09 14:05:00.0000'"},
		{label("tag"), "'tag'"},
	}

	for _, tt := range tests {
		if got := d.Quote(tt.value); got != tt.expected {
			t.Errorf("Quote(%v): expected %s, got %s", tt.value, tt.expected, got)
		}
	}

	custom := NewFirebirdDialect(model.BooleanDomain{Name: "flag", Type: "char(1)", True: "'T'", False: "'F'"})
	if got := custom.Quote(true); got != "'T'" {
		t.Errorf("Expected the configured true literal, got %s", got)
	}
}
