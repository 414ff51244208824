package theme

import "testing"

func TestNamesHavePalettes(t *testing.T) {
	pals := palettes()
	for _, name := range Names() {
		if _, ok := pals[name]; !ok {
			t.Fatalf("theme %q listed but has no palette", name)
		}
	}
	if len(Names()) != len(pals) {
		t.Fatalf("expected %d palettes, got %d", len(Names()), len(pals))
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	styles := Load("no-such-theme")
	if styles.Name != DefaultName {
		t.Fatalf("expected fallback to %q, got %q", DefaultName, styles.Name)
	}
	if styles.GitBranch == nil || styles.SelectedItem == nil {
		t.Fatalf("expected fully populated style set")
	}
}

func TestLoadKnownTheme(t *testing.T) {
	styles := Load("Nord")
	if styles.Name != "Nord" {
		t.Fatalf("expected Nord, got %q", styles.Name)
	}
}
