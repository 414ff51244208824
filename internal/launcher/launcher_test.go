package launcher

import "testing"

func TestProjectNameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/widget.git", "widget"},
		{"https://github.com/acme/widget", "widget"},
		{"https://github.com/acme/widget/", "widget"},
		{"git@github.com:acme/widget.git", "widget"},
		{"widget", "widget"},
		{"  https://github.com/acme/widget.git  ", "widget"},
	}
	for _, tc := range cases {
		if got := ProjectNameFromURL(tc.url); got != tc.want {
			t.Errorf("ProjectNameFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestOpenTerminalEmptyCommand(t *testing.T) {
	l := New("/usr/bin/idea", "   ")
	if err := l.OpenTerminal("/tmp"); err == nil {
		t.Fatal("expected error for empty terminal command")
	}
}
