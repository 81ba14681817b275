package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"userhub/internal/client/cli"
	"userhub/internal/client/datasource"
	"userhub/internal/client/repository"
	"userhub/internal/client/tokenstore"
	"userhub/internal/config"
	"userhub/internal/logging"
)

func main() {
	cfg := config.LoadClient()

	logger, err := logging.New(config.EnvDevelopment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	api := datasource.New(cfg.APIURL, datasource.WithLogger(logger))
	store := tokenstore.NewFileStorage(cfg.TokenFile)
	auth := repository.NewAuth(api, store, logger)
	users := repository.NewUsers(api)

	app := cli.NewApp(auth, users, logger, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, os.Args[1:])
	stop()
	_ = logger.Sync()

	if err == nil {
		return
	}
	if errors.Is(err, cli.ErrUsage) {
		// bare ErrUsage means the usage text is already printed
		if msg := cli.UsageDetail(err); msg != "" {
			fmt.Fprintln(os.Stderr, "error:", msg)
		}
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
