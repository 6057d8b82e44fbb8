package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/apps/api/di"
	echoapi "github.com/Nebras-project/nebras-dashboard/apps/api/echo"
	"github.com/Nebras-project/nebras-dashboard/core"
	logsvc "github.com/Nebras-project/nebras-dashboard/services/logger"
)

func main() {
	if err := run(core.NewConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "api: %+v\n", err)
		os.Exit(1)
	}
}

func run(conf *core.Config) error {
	c, err := di.NewContainer(context.Background(), conf)
	if err != nil {
		return errors.Wrap(err, "setting up dependencies")
	}
	logger := c.Logger
	defer func() {
		if cerr := c.Close(); cerr != nil {
			logger.Error(fmt.Sprintf("closing dependencies: %v", cerr), cerr)
		}
	}()

	logger.Info(fmt.Sprintf("dashboard API starting : build %q, env %q", conf.Build, conf.Env))
	defer logger.Info("dashboard API stopped")

	if conf.Server.DebugHost != "" {
		startDebug(conf, logger)
	}

	server := echoapi.NewServer(c.Deps)
	go server.Start()

	select {
	case err = <-server.Errors():
		return errors.Wrap(err, "serving")

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: shutting down", sig))

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("graceful shutdown failed: %v", err), err)
			return errors.Wrap(server.Close(), "forcing shutdown")
		}
	}
	return nil
}

// startDebug serves /debug/pprof and /debug/vars on the debug host.
func startDebug(conf *core.Config, logger *logsvc.RollbarLogger) {
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()
}
