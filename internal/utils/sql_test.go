package utils

import "testing"

func TestSquishSQL(t *testing.T) {
	input := `
		ALTER TABLE "USERS"
		ALTER COLUMN "EMAIL"
		POSITION 3
	`
	expected := `ALTER TABLE "USERS" ALTER COLUMN "EMAIL" POSITION 3`

	if got := SquishSQL(input); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if got := SquishSQL("  \t\n "); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestStatementVerb(t *testing.T) {
	tests := map[string]string{
		`CREATE TABLE "USERS" ("ID" integer)`:     "CREATE TABLE",
		`CREATE UNIQUE INDEX "UX" ON "T" ("C")`:   "CREATE INDEX",
		`DROP SEQUENCE users_seq`:                 "DROP SEQUENCE",
		`alter table "USERS" drop "EMAIL"`:        "ALTER TABLE",
		`UPDATE RDB$RELATION_FIELDS SET X=1`:      "UPDATE",
		"\n\tSELECT rdb$relation_name FROM rdb$r": "SELECT",
		"":                                        "UNKNOWN",
	}

	for sql, expected := range tests {
		if got := StatementVerb(sql); got != expected {
			t.Errorf("StatementVerb(%q): expected %s, got %s", sql, expected, got)
		}
	}
}
