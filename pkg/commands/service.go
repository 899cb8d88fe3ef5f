package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/client"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/store"
)

// loadService wires the config, local store and api client together.
func loadService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		API:         client.New(cfg.APIURL(), cfg.APIToken(), cfg.Timeout()),
		Persistence: p,
		Settings: app.Settings{
			CacheTTL: cfg.CacheTTL(),
			Offline:  service.Offline,
			Calendar: calendar.Options{WeekStart: cfg.WeekStart()},
		},
	}, nil
}

// setup loads the service and a printer honouring the output flags.
func setup() (*app.Service, *printers.PrettyPrint, error) {
	f, err := output.Format()
	if err != nil {
		return nil, nil, err
	}
	svc, err := loadService()
	if err != nil {
		return nil, nil, err
	}
	return svc, &printers.PrettyPrint{ShowID: output.ShowID, Format: f, Now: svc.Clock}, nil
}

// interruptible is cancelled on ctrl+c so long running commands can exit
// cleanly.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
