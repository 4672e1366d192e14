package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestPrettyPlain(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version = origVersion
	})
	color.NoColor = true

	cases := []string{
		"0.1.0",
		"1.2.3",
		"0.1.0-dev",
		"1.0.0-beta.1",
		"1.2.3-rc.1+build.123",
		"dev",
		"",
	}
	for _, v := range cases {
		Version = v
		if got := Pretty(); got != v {
			t.Fatalf("Pretty() with Version=%q = %q, want %q", v, got, v)
		}
	}
}

func TestPrettyColored(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version = origVersion
	})
	color.NoColor = false
	Version = "1.2.3"

	got := Pretty()
	if got == Version {
		t.Fatalf("Pretty() = %q, want colored output", got)
	}
	want := majorColor.Sprint("1") + "." + minorColor.Sprint("2") + "." + patchColor.Sprint("3")
	if got != want {
		t.Fatalf("Pretty() = %q, want %q", got, want)
	}
}
