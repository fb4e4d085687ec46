package services

import "testing"

func TestTipsForTheme(t *testing.T) {
	for _, theme := range TipThemes() {
		tips, err := TipsForTheme(theme)
		if err != nil {
			t.Fatalf("TipsForTheme(%q) error: %v", theme, err)
		}
		if len(tips) == 0 {
			t.Fatalf("theme %q has no tips", theme)
		}
	}
}

func TestTipsOrderStable(t *testing.T) {
	first, _ := TipsForTheme("Workload")
	second, _ := TipsForTheme("Workload")
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tip order changed between lookups")
		}
	}
	if first[0] != "Time-block 60 minutes daily for deep work; batch interrupts." {
		t.Fatalf("unexpected first workload tip: %q", first[0])
	}
}

func TestTipsUnknownTheme(t *testing.T) {
	_, err := TipsForTheme("Compensation")
	if err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestTipsCallerCannotMutateCatalogue(t *testing.T) {
	tips, _ := TipsForTheme("Boundaries")
	tips[0] = "changed"
	again, _ := TipsForTheme("Boundaries")
	if again[0] == "changed" {
		t.Fatalf("catalogue mutated through returned slice")
	}
}
