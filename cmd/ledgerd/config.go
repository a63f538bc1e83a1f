package main

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/ledger/app"
	ledgerd "github.com/iov-one/ledger/cmd/ledgerd/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/eventlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the process configuration. Every value can be set with an
// environment variable and most of them can be overwritten by a command
// flag.
type Config struct {
	Home        string `env:"LEDGER_HOME"`
	LogLevel    string `env:"LEDGER_LOG_LEVEL" envDefault:"info"`
	ChainID     string `env:"LEDGER_CHAIN_ID" envDefault:"ledger-devnet"`
	MetricsAddr string `env:"LEDGER_METRICS_ADDR" envDefault:"localhost:9090"`
	EventsDB    string `env:"LEDGER_EVENTS_DB"`
}

var (
	conf   = Config{LogLevel: "info", ChainID: "ledger-devnet"}
	logger = log.NewNopLogger()
)

func loadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(errors.ErrInput, err.Error())
	}
	if c.Home == "" {
		c.Home = filepath.Join(os.ExpandEnv("$HOME"), ".ledgerd")
	}
	return c, nil
}

// newLogger returns a logger writing to stderr, so that the standard
// output can be used for command pipelines.
func newLogger(level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	l := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "ledgerd")
	return log.NewFilter(l, opt), nil
}

// debugMode reports whether internal error details may be shown.
func debugMode() bool {
	return conf.LogLevel == "debug"
}

// openNode opens the ledger stored in the home directory. Delivered events
// are journaled if an events database is configured. Call the returned
// function to release all resources.
func openNode(home string, reg prometheus.Registerer) (*app.Application, func(), error) {
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInput, "home directory: %s", err)
	}
	kv, err := ledgerd.CommitKVStore(filepath.Join(home, "ledger.db"))
	if err != nil {
		return nil, nil, err
	}
	a, err := ledgerd.Application(kv, reg)
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	a.WithLogger(logger)

	cleanup := kv.Close
	if conf.EventsDB != "" {
		events, err := eventlog.Open(conf.EventsDB)
		if err != nil {
			kv.Close()
			return nil, nil, err
		}
		a.WithSink(events)
		cleanup = func() {
			if err := events.Close(); err != nil {
				logger.Error("Cannot close event journal", "err", err)
			}
			kv.Close()
		}
	}
	return a, cleanup, nil
}
