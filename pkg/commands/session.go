package commands

import (
	"os"

	"go.uber.org/zap"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/cloud"
	"tableflip.dev/nova/pkg/logging"
	"tableflip.dev/nova/pkg/store"
	"tableflip.dev/nova/pkg/suggest"
	"tableflip.dev/nova/pkg/timer"
)

// session is an open app and everything that has to be closed with it.
type session struct {
	Config store.Config
	App    *app.App

	ticker *timer.Ticker
	log    *zap.Logger
}

func openSession() (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{
		File:    cfg.LogFile(),
		Level:   cfg.LogLevel(),
		Console: os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	backend, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	var suggester suggest.Suggester
	if c := suggest.New(suggest.Config{
		Endpoint: cfg.SuggestEndpoint(),
		Model:    cfg.SuggestModel(),
		APIKey:   cfg.SuggestAPIKey(),
		Timeout:  cfg.SuggestTimeout(),
	}, log); c.Enabled() {
		suggester = c
	}

	work, short, long := cfg.PomodoroMinutes()
	ticker := timer.NewTicker()
	a, err := app.New(app.Options{
		Backend:   backend,
		Settings:  timer.Settings{Work: work, Short: short, Long: long},
		Debounce:  cfg.FlushDebounce(),
		Interval:  cfg.FlushInterval(),
		Suggester: suggester,
		Cloud:     cloud.NewSimulated(cfg.CloudLatency(), log),
		Ticks:     ticker,
		Log:       log,
	})
	if err != nil {
		ticker.Close()
		_ = backend.Close()
		return nil, err
	}
	return &session{Config: cfg, App: a, ticker: ticker, log: log}, nil
}

// Close writes pending changes and stops the scheduler.
func (s *session) Close() error {
	err := s.App.Close()
	s.ticker.Close()
	_ = s.log.Sync()
	return err
}

// withSession opens the app, runs fn and always closes it. Errors are routed
// through the output options so --json callers get them as JSON.
func withSession(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return output.HandleError(err)
	}
	err = fn(s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return output.HandleError(err)
}
