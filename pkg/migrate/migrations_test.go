package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestTargetKindMigrationBackfills(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_promotion_target_kind.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no target kind migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"ADD COLUMN target_kind",
		"is_combo_category THEN 'combo'",
		"SET target_kind = 'combo'",
		"SET NOT NULL",
		"DROP COLUMN target_kind",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
