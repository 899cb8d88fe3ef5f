package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKeyPrintsLegendAndShortcuts(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	k := Key{Out: buf}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"Status", "task in progress", "Priority", "(blank)", "Records", "habit done", "Keys", "left h p", "toggle help"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestKeyGlyphsOnly(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	k := Key{Out: buf, Glyphs: true}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if strings.Contains(buf.String(), "toggle help") {
		t.Fatalf("shortcuts printed:\n%s", buf.String())
	}
}
