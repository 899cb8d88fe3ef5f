package commands

import (
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range []string{
		"calendar",
		"tasks list", "tasks board", "tasks show", "tasks add", "tasks done", "tasks reopen", "tasks move", "tasks rm",
		"search list", "search save", "search show", "search rm",
		"recurrence preview",
		"event add", "event rm",
		"habits list", "habits check", "habits add",
		"mood log", "mood list",
		"analytics", "score",
		"timer status", "timer start", "timer stop", "timer watch",
		"refresh", "ui", "key", "version",
	} {
		cmd, rest, err := root.Find(strings.Fields(path))
		if err != nil || len(rest) != 0 {
			t.Errorf("%s: not found (%v)", path, err)
			continue
		}
		if cmd.Short == "" {
			t.Errorf("%s: no short description", path)
		}
	}
}

func TestCalendarArgs(t *testing.T) {
	root := New()
	cmd, _, err := root.Find([]string{"calendar"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if err := cmd.Args(cmd, []string{"2week"}); err != nil {
		t.Errorf("2week: %v", err)
	}
	if err := cmd.Args(cmd, []string{"decade"}); err == nil {
		t.Error("expected an unknown view error")
	}
	if err := cmd.Args(cmd, []string{"week", "day"}); err == nil {
		t.Error("expected too many views error")
	}
}

func TestMoveArgs(t *testing.T) {
	root := New()
	cmd, _, err := root.Find([]string{"tasks", "move"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	for _, args := range [][]string{{"4"}, {"x", "done"}, {"4", "later"}, {"4", "done", "-1"}} {
		if err := cmd.Args(cmd, args); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
	if err := cmd.Args(cmd, []string{"4", "doing", "0"}); err != nil {
		t.Errorf("valid move: %v", err)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "17"})
	if err != nil || len(ids) != 2 || ids[1] != 17 {
		t.Fatalf("got %v, %v", ids, err)
	}
	if _, err := parseIDs([]string{"0"}); err == nil {
		t.Fatal("zero is not an id")
	}
}
