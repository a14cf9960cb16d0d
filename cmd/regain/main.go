package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"regain/internal/app"
	"regain/internal/app/deps"
	"regain/internal/app/services"
	"syscall"
	"time"

	dl "regain/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	go startTokenCleanup(cleanupCtx, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	stopCleanup()
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("recoveryStore", deps.Config.RecoveryStore),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func startTokenCleanup(ctx context.Context, deps *deps.Deps) {
	interval := deps.Config.RecoveryCleanupInterval()
	deps.Logger.Info(
		ctx,
		"Expired recovery token cleanup has started.",
		dl.Entry("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			deps.Logger.Info(context.Background(), "Expired recovery token cleanup has stopped.")
			return
		case <-ticker.C:
			count, err := deps.TokenRepository.DeleteExpired(ctx, deps.Now())
			if errors.Is(err, context.Canceled) {
				continue
			}
			if err != nil {
				deps.Logger.Error(
					ctx,
					"Could not delete expired recovery tokens.",
					dl.Entry("err", err),
				)
				continue
			}
			if count > 0 {
				deps.Logger.Info(
					ctx,
					"Expired recovery tokens have been deleted.",
					dl.Entry("count", count),
				)
			}
		}
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
