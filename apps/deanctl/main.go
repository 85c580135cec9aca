package main

import (
	"fmt"
	"os"

	"github.com/tvqdev/deanboard/client"
	"github.com/tvqdev/deanboard/core"
	logsvc "github.com/tvqdev/deanboard/services/logger"
	"github.com/tvqdev/deanboard/storage/credfile"
)

func main() {
	logger := logsvc.New(os.Stderr, core.Conf.Debug)

	creds, err := credfile.Open(core.Conf.Auth.CredentialsFile)
	if err != nil {
		logger.Error("opening credential store", err)
		os.Exit(1)
	}

	cl, err := client.New(client.Options{
		BaseURL: core.Conf.API.BaseURL,
		Creds:   creds,
		Logger:  logger,
		OnAuthFailure: func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `deanctl login` to sign in again.")
		},
	})
	if err != nil {
		logger.Error("building API client", err)
		os.Exit(1)
	}

	cli := &commandLine{client: cl, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}
