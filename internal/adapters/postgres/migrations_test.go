package postgres_adapter

import (
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"testing"
)

func TestMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(Migrations, MigrationsDir+"/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)

	versions := map[string]int{}
	for _, name := range names {
		base := strings.TrimPrefix(name, MigrationsDir+"/")
		version, _, _ := strings.Cut(base, "_")
		if !strings.HasSuffix(base, ".up.sql") && !strings.HasSuffix(base, ".down.sql") {
			t.Errorf("unexpected migration file %s", base)
		}
		versions[version]++
	}
	for version, n := range versions {
		if n != 2 {
			t.Errorf("migration %s has %d files, want up and down", version, n)
		}
	}
}

// Цены и суммы хранятся в NUMERIC: границы диапазона цен сравниваются точно.
func TestMoneyColumnsAreDecimal(t *testing.T) {
	body, err := fs.ReadFile(Migrations, MigrationsDir+"/000003_decimal_money.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	sql := string(body)

	for _, column := range []string{"price", "value", "tax"} {
		re := regexp.MustCompile(`ALTER COLUMN ` + column + `\s+TYPE NUMERIC\b`)
		if !re.MatchString(sql) {
			t.Errorf("column %s is not converted to NUMERIC", column)
		}
	}
}
