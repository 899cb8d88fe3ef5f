package tasks

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/client"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/store"
	"github.com/edc-app/edc/pkg/tasks"
)

type testConfig struct{ path string }

func (t testConfig) BasePath() string        { return t.path }
func (t testConfig) APIURL() string          { return "" }
func (t testConfig) APIToken() string        { return "" }
func (t testConfig) CacheTTL() time.Duration { return time.Minute }
func (t testConfig) Timeout() time.Duration  { return time.Second }
func (t testConfig) WeekStart() time.Weekday { return time.Sunday }

const taskList = `[
  {"id": 1, "title": "Write report", "priority": "high", "status": "pending", "position": 0},
  {"id": 2, "title": "Call mom", "priority": "low", "status": "completed", "completed": true, "position": 1}
]`

func setup(t *testing.T, handler http.HandlerFunc) (*app.Service, *printers.PrettyPrint, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	now := time.Date(2024, 6, 18, 9, 0, 0, 0, time.Local)
	svc := &app.Service{
		API:         client.New(srv.URL, "", time.Second),
		Persistence: p,
		Settings:    app.Settings{CacheTTL: time.Minute},
		Now:         func() time.Time { return now },
		Warn:        func(string, ...interface{}) {},
	}
	buf := &bytes.Buffer{}
	return svc, &printers.PrettyPrint{Out: buf, Now: svc.Clock}, buf
}

func TestListGroupsByStatus(t *testing.T) {
	svc, pp, buf := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(taskList))
	})

	l := List{Service: svc, Printer: pp, GroupBy: tasks.GroupStatus}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"To do - 1 task", "! ● Write report", "Done - 1 task", "  ✘ Call mom"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestListJSON(t *testing.T) {
	svc, pp, buf := setup(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(taskList))
	})
	pp.Format = printers.FormatJSON

	l := List{Service: svc, Printer: pp, Filter: tasks.Filter{Query: "report"}}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `"title": "Write report"`) || strings.Contains(got, "Call mom") {
		t.Fatalf("unexpected output\n%s", got)
	}
}

func TestAddPrintsFieldErrors(t *testing.T) {
	posted := false
	svc, pp, buf := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posted = true
		}
		_, _ = w.Write([]byte(`{}`))
	})

	a := Add{Service: svc, Printer: pp, Input: model.TaskInput{Title: "  "}}
	err := a.Do(context.Background())
	var verrs model.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("want validation errors, got %v", err)
	}
	if posted {
		t.Fatal("invalid task was sent to the api")
	}
	if got := buf.String(); !strings.Contains(got, "title: is required") {
		t.Fatalf("field error not printed: %q", got)
	}
}

func TestNoService(t *testing.T) {
	l := List{}
	if err := l.Do(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
}
