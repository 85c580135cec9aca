package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/tvqdev/deanboard/client"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ContinueOnError)
	username := cmd.String("username", "", "account username")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		cmd.Usage()
		return errHelp
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	res, err := cli.client.Login(ctx, *username, password)
	if err != nil {
		return err
	}
	if res.Challenge == nil {
		fmt.Fprintf(cli.out, "Signed in as %s (%s).\n", *username, res.Role)
		return nil
	}

	fmt.Fprintln(cli.out, res.Message)
	if res.Challenge.EmailHint != "" {
		fmt.Fprintf(cli.out, "Code sent to %s.\n", res.Challenge.EmailHint)
	}
	return cli.verifyLoop(ctx)
}

// verifyLoop prompts for OTP codes until the session is established or the
// operator gives up. "resend" asks for a fresh code, an empty entry abandons.
func (cli *commandLine) verifyLoop(ctx context.Context) error {
	for {
		code, err := readLineFunc("OTP code (empty to cancel, 'resend' for a new code): ")
		if err != nil {
			return err
		}
		switch code {
		case "":
			if err := cli.client.AbandonOTP(); err != nil {
				return err
			}
			fmt.Fprintln(cli.out, "Login cancelled.")
			return nil
		case "resend":
			ch, err := cli.client.ResendOTP(ctx)
			if cdErr, ok := err.(*client.CooldownError); ok {
				fmt.Fprintf(cli.out, "Please wait %s before requesting another code.\n", cdErr.Remaining.Round(time.Second))
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "A new code was sent to %s.\n", ch.EmailHint)
			continue
		}

		res, err := cli.client.VerifyOTP(ctx, code)
		if err != nil {
			if apiErr, ok := err.(*client.APIError); ok && apiErr.IsUnauthorized() {
				fmt.Fprintln(cli.out, apiErr.Detail)
				continue
			}
			return err
		}
		fmt.Fprintf(cli.out, "Signed in (%s).\n", res.Role)
		return nil
	}
}

// otp resumes a pending challenge, e.g. after the process exited mid-login.
// The challenge survives restarts in the credential file.
func (cli *commandLine) otp(ctx context.Context) error {
	if cli.client.State() != client.StateAuthenticating {
		fmt.Fprintln(cli.out, "No OTP verification pending. Run `deanctl login` first.")
		return nil
	}
	ch := cli.client.Creds().Challenge()
	fmt.Fprintf(cli.out, "Resuming OTP verification for %s.\n", ch.Username)
	return cli.verifyLoop(ctx)
}

func (cli *commandLine) logout() error {
	if err := cli.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Signed out.")
	return nil
}

func (cli *commandLine) whoami() error {
	switch cli.client.State() {
	case client.StateAuthenticated:
		info, err := cli.client.TokenInfo()
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s (%s), session expires %s\n",
			info.Username, info.Role, info.ExpiresAt.Local().Format("2006-01-02 15:04"))
	case client.StateAuthenticating:
		ch := cli.client.Creds().Challenge()
		fmt.Fprintf(cli.out, "OTP verification pending for %s. Run `deanctl login` to finish.\n", ch.Username)
	default:
		fmt.Fprintln(cli.out, "Not signed in.")
	}
	return nil
}
