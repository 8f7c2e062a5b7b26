package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"asistente/app/client/llm"
	"asistente/app/client/rates"
	"asistente/app/config"
	"asistente/app/console"
	"asistente/app/server"
	"asistente/app/service/currency"
	"asistente/app/service/dates"
	"asistente/app/service/engine"
	"asistente/app/service/normalizer"
	"asistente/app/service/session"
	"asistente/app/service/speller"
	"asistente/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, llm.NewClient)
	do.Provide(di, rates.NewClient)
	do.Provide(di, speller.New)
	do.Provide(di, session.New)
	do.Provide(di, normalizer.New)
	do.Provide(di, currency.New)
	do.Provide(di, dates.New)
	do.Provide(di, engine.New)
	do.Provide(di, server.New)
	do.Provide(di, server.NewMCP)
	do.Provide(di, console.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)

	group.Go(func() error {
		return do.MustInvoke[*server.Service](di).Run(groupCtx)
	})

	switch {
	case cfg.MCP.Enabled:
		group.Go(func() error {
			return do.MustInvoke[*server.MCPService](di).Run(groupCtx)
		})
	case !cfg.Console.Disabled:
		// not part of the group: the loop blocks on stdin and only
		// releases it on EOF, it must not hold up shutdown
		go func() {
			do.MustInvoke[*console.Service](di).Run(groupCtx)
			cancel()
		}()
	}

	if err = group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Service failed", "error", err, "telegram", true)
	}
}
