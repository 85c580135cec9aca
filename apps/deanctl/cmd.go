package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/tvqdev/deanboard/client"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	readLineFunc     = readLine          // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	client *client.Client
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: deanctl COMMAND [SUBCOMMAND] [FLAGS]")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Session:")
	fmt.Fprintln(cli.out, "  login -username USERNAME      sign in (password and OTP prompted)")
	fmt.Fprintln(cli.out, "  otp                           resume a pending OTP verification")
	fmt.Fprintln(cli.out, "  logout                        clear the stored session")
	fmt.Fprintln(cli.out, "  whoami                        show the current session")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Catalog:")
	fmt.Fprintln(cli.out, "  departments list|create|update|delete")
	fmt.Fprintln(cli.out, "  courses     list|create|update|delete")
	fmt.Fprintln(cli.out, "  classes     list|show|create|update|delete|students|enroll|grades|export")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "People:")
	fmt.Fprintln(cli.out, "  lecturers   list|create|update|delete")
	fmt.Fprintln(cli.out, "  students    list|create|update|delete|results")
	fmt.Fprintln(cli.out, "  grades      set|update")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "Administration:")
	fmt.Fprintln(cli.out, "  years       list|create|update|delete")
	fmt.Fprintln(cli.out, "  semesters   list|create|update|delete|activate")
	fmt.Fprintln(cli.out, "  tuition     settings|set-price|list|pay")
	fmt.Fprintln(cli.out, "  reports     list|show|update|stats")
	fmt.Fprintln(cli.out, "  stats       [-charts]")
	fmt.Fprintln(cli.out, "  audit")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "otp":
		return cli.otp(ctx)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "departments":
		return cli.departments(ctx, args[2:])
	case "courses":
		return cli.courses(ctx, args[2:])
	case "classes":
		return cli.classes(ctx, args[2:])
	case "lecturers":
		return cli.lecturers(ctx, args[2:])
	case "students":
		return cli.students(ctx, args[2:])
	case "grades":
		return cli.grades(ctx, args[2:])
	case "years":
		return cli.years(ctx, args[2:])
	case "semesters":
		return cli.semesters(ctx, args[2:])
	case "tuition":
		return cli.tuition(ctx, args[2:])
	case "reports":
		return cli.reports(ctx, args[2:])
	case "stats":
		return cli.stats(ctx, args[2:])
	case "audit":
		return cli.audit(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// confirm asks before a destructive action; only an explicit yes proceeds.
func (cli *commandLine) confirm(what string) (bool, error) {
	answer, err := readLineFunc(fmt.Sprintf("Delete %s? This cannot be undone [y/N]: ", what))
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
