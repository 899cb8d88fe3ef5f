package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/tasks"
)

func TestEncodeYAML(t *testing.T) {
	search := tasks.SavedSearch{
		ID:        "abc",
		Name:      "Urgent",
		Filter:    tasks.Filter{Priorities: []model.Priority{model.PriorityHigh}, DueTo: date(2024, 6, 30)},
		CreatedAt: time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := Encode(&buf, FormatYAML, tasks.Searches{search}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{"- id: abc\n", "  name: Urgent\n", "priorities:\n", "- high\n", `due_to: "2024-06-30"`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if strings.ContainsAny(got, "{[") {
		t.Errorf("flow style leaked into\n%s", got)
	}
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("json = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, "yaml": FormatYAML, "text": FormatPretty} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected an error")
	}
}
