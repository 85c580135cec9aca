package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tvqdev/deanboard/api"
	"github.com/tvqdev/deanboard/client"
	"github.com/tvqdev/deanboard/core"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()

	var lastOTP string
	srv := api.NewServer(&api.Options{
		DisableReqLogs: true,
		Logger:         core.NopLogger{},
		OTPSink:        func(_, code string) { lastOTP = code },
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	cl, err := client.New(client.Options{
		BaseURL: ts.URL,
		Creds:   client.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("client.New() failed, %v", err)
	}

	out := &bytes.Buffer{}
	cli := &commandLine{client: cl, out: out}

	// sign in as the seeded dean; the OTP sink stands in for the mailer
	origPwd, origLine := readPasswordFunc, readLineFunc
	t.Cleanup(func() { readPasswordFunc, readLineFunc = origPwd, origLine })
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("deanpass"), nil }
	readLineFunc = func(prompt string) (string, error) { return lastOTP, nil }
	if err := cli.run([]string{"deanctl", "login", "-username", "dean01"}); err != nil {
		t.Fatalf("login failed, %v", err)
	}
	out.Reset()

	return cli, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string // substring of stdout, checked when no error is expected
	input      string // canned answer for line prompts (confirmations)
}

func runCliTests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"deanctl"}, tt.args...)

		readLineFunc = func(prompt string) (string, error) { return tt.input, nil }

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			default:
				if err != nil {
					t.Errorf("cli.run() unexpected error = %v", err)
				} else if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
					t.Errorf("output %q does not contain %q", out.String(), tt.wantOut)
				}
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "whoami", args: []string{"whoami"}, wantOut: "dean01 (dean)"},
	})
}

func Test_commandLine_login(t *testing.T) {
	cli, out := setup(t)

	// setup already went through the password + OTP exchange
	if got := cli.client.State(); got != client.StateAuthenticated {
		t.Fatalf("State() = %v, want %v", got, client.StateAuthenticated)
	}

	runCliTests(t, cli, out, []cliTest{
		{name: "no username", args: []string{"login"}, wantErr: errHelp},
		{name: "logout", args: []string{"logout"}, wantOut: "Signed out."},
		{name: "whoami signed out", args: []string{"whoami"}, wantOut: "Not signed in."},
	})

	// fresh login with a bad password surfaces the backend detail
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("nope"), nil }
	err := cli.run([]string{"deanctl", "login", "-username", "dean01"})
	apiErr, ok := err.(*client.APIError)
	if !ok {
		t.Fatalf("cli.run() error = %v, want *client.APIError", err)
	}
	if apiErr.Detail != "Incorrect username or password" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
}

func Test_commandLine_departments(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"departments"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"departments", "lol"}, wantErr: errHelp},
		{name: "list", args: []string{"departments", "list"}, wantOut: "Information Technology"},
		{name: "create", args: []string{"departments", "create", "-name", "Physics"}, wantOut: `Created department "Physics"`},
		{name: "update", args: []string{"departments", "update", "-id", "3", "-name", "Engineering Physics"}, wantOut: `Updated department "Engineering Physics"`},
		{name: "delete declined", args: []string{"departments", "delete", "-id", "3"}, input: "n", wantOut: "Cancelled."},
		{name: "delete confirmed", args: []string{"departments", "delete", "-id", "3"}, input: "y", wantOut: "Deleted department 3."},
		{
			name: "delete with courses refused", args: []string{"departments", "delete", "-id", "1"}, input: "y",
			wantErrStr: "api: Cannot delete department with existing courses (HTTP 400)",
		},
	})

	// the refused department must still be listed
	out.Reset()
	if err := cli.run([]string{"deanctl", "departments", "list"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Information Technology") {
		t.Error("department disappeared after a refused delete")
	}
}

func Test_commandLine_classes(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"classes"}, wantErr: errHelp},
		{name: "list", args: []string{"classes", "list"}, wantOut: "IT304020231"},
		{name: "show", args: []string{"classes", "show", "-id", "1"}, wantOut: "Class IT304020231"},
		{
			// the code derives from the course code and semester
			name:    "create derives code",
			args:    []string{"classes", "create", "-course-id", "1", "-semester", "2023.1", "-lecturer-id", "2", "-max-students", "40"},
			wantOut: "Created class MI111120231",
		},
		{
			name:    "create with code override",
			args:    []string{"classes", "create", "-course-id", "1", "-semester", "2023.1", "-max-students", "40", "-code", "MI1111X"},
			wantOut: "Created class MI1111X",
		},
		{name: "students", args: []string{"classes", "students", "-id", "1"}, wantOut: "20210001"},
		{name: "grades", args: []string{"classes", "grades", "-id", "1"}, wantOut: "Nguyễn Văn Đức"},
		{name: "enroll suggestions", args: []string{"classes", "enroll", "-id", "1"}, wantOut: "20210003"},
		{name: "enroll", args: []string{"classes", "enroll", "-id", "1", "-student-ids", "5"}, wantOut: "Enrolled 1 students."},
	})
}

func Test_commandLine_stats(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "totals", args: []string{"stats"}, wantOut: "STUDENTS"},
		{name: "charts", args: []string{"stats", "-charts"}, wantOut: "Students per department:"},
		{name: "audit", args: []string{"audit"}, wantOut: "No audit entries yet."},
	})
}
