package database

import "testing"

func TestNormalizePostgresDSN(t *testing.T) {
	cases := []struct {
		in, user, pass, want string
	}{
		{"r2dbc:postgresql://db:5432/sweetmarket", "", "", "postgres://db:5432/sweetmarket"},
		{"jdbc:postgresql://db:5432/sweetmarket?ssl=false", "", "", "postgres://db:5432/sweetmarket?sslmode=disable"},
		{"postgres://db/sweetmarket", "goat", "s3cret", "postgres://goat:s3cret@db/sweetmarket"},
		{"host=db user=goat dbname=sweetmarket", "", "", "host=db user=goat dbname=sweetmarket"},
	}
	for _, c := range cases {
		if got := normalizePostgresDSN(c.in, c.user, c.pass); got != c.want {
			t.Fatalf("normalizePostgresDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeMySQLDSN(t *testing.T) {
	got := normalizeMySQLDSN("mysql://db:3306/sweetmarket", "goat", "s3cret")
	want := "goat:s3cret@tcp(db:3306)/sweetmarket?charset=utf8mb4&parseTime=true"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	// native go-sql-driver DSNs pass through untouched
	raw := "goat:s3cret@tcp(db:3306)/sweetmarket?parseTime=true"
	if got := normalizeMySQLDSN(raw, "", ""); got != raw {
		t.Fatalf("raw DSN rewritten: %q", got)
	}
}
