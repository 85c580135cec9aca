package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tvqdev/deanboard/api"
	"github.com/tvqdev/deanboard/core"
	logsvc "github.com/tvqdev/deanboard/services/logger"
)

// deanstub runs the in-memory reference backend with the seeded dataset. OTP
// codes are printed to the console in place of the email delivery the real
// deployment uses.
func main() {
	logger := logsvc.New(os.Stderr, core.Conf.Debug)

	app := api.NewServer(&api.Options{
		Addr:   core.Conf.Server.Addr,
		Logger: logger,
		OTPSink: func(username, code string) {
			fmt.Printf("OTP for %s: %s\n", username, code)
		},
	})

	done := make(chan error, 1)
	go func() { done <- app.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", err)
			os.Exit(1)
		}
	case <-quit:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("shutdown failed", err)
			os.Exit(1)
		}
	}
}
