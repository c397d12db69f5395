package server

import (
	"flag"

	"github.com/iov-one/jointbank/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"

	defaultBind = "tcp://localhost:26658"
)

// Options are the settings used to build the application.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

func parseFlags(args []string) (string, bool, error) {
	var (
		addr  string
		debug bool
	)
	startFlags := flag.NewFlagSet("start", flag.ExitOnError)
	startFlags.StringVar(&addr, flagBind, defaultBind, "address server listens on")
	startFlags.BoolVar(&debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return "", false, errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, debug, nil
}

// StartCmd initializes the application and serves it over an ABCI socket
// until the process is signaled.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	addr, debug, err := parseFlags(args)
	if err != nil {
		return err
	}

	app, err := gen(&Options{Home: home, Logger: logger, Debug: debug})
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot start server: %s", err)
	}

	// TrapSignal exits the process once the server is stopped
	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})
	select {}
}
