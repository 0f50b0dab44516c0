package theme

import "testing"

func TestLoadKnownThemes(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if th.Name != name {
				t.Errorf("Name = %q, want %q", th.Name, name)
			}
			for field, v := range map[string]string{
				"bg": th.Bg, "bg_card": th.BgCard, "fg": th.Fg,
				"accent": th.Accent, "pause": th.Pause, "active": th.Active,
			} {
				if v == "" {
					t.Errorf("%s: %s is empty", name, field)
				}
			}
		})
	}
}

func TestLoadUnknownFallsBackToLight(t *testing.T) {
	th, err := Load("solarized")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "light" {
		t.Errorf("fallback theme = %q, want light", th.Name)
	}
}

func TestLoadAutoResolves(t *testing.T) {
	th, err := Load("auto")
	if err != nil {
		t.Fatalf("Load(auto): %v", err)
	}
	if th.Name != "light" && th.Name != "dark" {
		t.Errorf("auto resolved to %q", th.Name)
	}
}
