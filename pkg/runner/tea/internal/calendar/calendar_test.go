package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/runner/tea/internal/theme"
	"github.com/edc-app/edc/pkg/score"
)

func TestRenderMonth(t *testing.T) {
	current := time.Date(2024, 6, 18, 0, 0, 0, 0, time.Local)
	g := calendar.Build(calendar.Month, current, current, calendar.Data{}, calendar.Options{})

	// Styles wrap each cell in escape sequences; compare the visible text.
	got := ansi.Strip(Render(g, Options{Theme: theme.Default().Calendar, Selected: "2024-06-18", ShowHeader: true}))
	for _, want := range []string{"Su", "Sa", "26", "18", "30", " 6"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	// Header plus six weeks of three line cells.
	if lines := strings.Count(got, "\n") + 1; lines != 1+6*3 {
		t.Errorf("got %d lines", lines)
	}
}

func TestRenderEmptyGrid(t *testing.T) {
	if got := Render(calendar.Grid{}, Options{}); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestHeat(t *testing.T) {
	if _, ok := Heat(score.Result{}); ok {
		t.Fatal("no data should not be coloured")
	}
	low, _ := Heat(score.Result{Value: 0, HasData: true})
	high, _ := Heat(score.Result{Value: 100, HasData: true})
	mid, _ := Heat(score.Result{Value: 60, HasData: true})
	if low.R <= low.G || high.G <= high.R {
		t.Fatalf("low %v high %v", low.Hex(), high.Hex())
	}
	if mid == low || mid == high {
		t.Fatalf("mid %v not blended", mid.Hex())
	}
}
