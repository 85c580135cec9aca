package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tvqdev/deanboard/client"
	"github.com/tvqdev/deanboard/core"
	"github.com/tvqdev/deanboard/core/form"
	"github.com/tvqdev/deanboard/core/user"
)

func (cli *commandLine) lecturers(ctx context.Context, args []string) error {
	return cli.userCommand(ctx, args, user.RoleLecturer)
}

func (cli *commandLine) students(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "results" {
		cmd := flag.NewFlagSet("students results", flag.ContinueOnError)
		id := cmd.Int("id", 0, "student id")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.academicResults(ctx, *id)
	}
	return cli.userCommand(ctx, args, user.RoleStudent)
}

func (cli *commandLine) userCommand(ctx context.Context, args []string, role string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet(role+"s list", flag.ContinueOnError)
	listSkip := listCmd.Int("skip", 0, "rows to skip")
	listLimit := listCmd.Int("limit", 0, "max rows (0 = all)")

	createCmd := flag.NewFlagSet(role+"s create", flag.ContinueOnError)
	createName := createCmd.String("name", "", "full name (username and email derive from it)")
	createCode := createCmd.String("code", "", "student code (students only)")
	createPhone := createCmd.String("phone", "", "phone number")
	createDept := createCmd.Int("department-id", 0, "department id")
	createUsername := createCmd.String("username", "", "username override")
	createEmail := createCmd.String("email", "", "email override")

	updateCmd := flag.NewFlagSet(role+"s update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "account id")
	updateName := updateCmd.String("name", "", "full name")
	updateEmail := updateCmd.String("email", "", "email")
	updatePhone := updateCmd.String("phone", "", "phone number")
	updateDept := updateCmd.Int("department-id", 0, "department id")
	updateActive := updateCmd.String("active", "", "true|false")

	deleteCmd := flag.NewFlagSet(role+"s delete", flag.ContinueOnError)
	deleteID := deleteCmd.Int("id", 0, "account id")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.listUsers(ctx, role, client.ListOptions{Skip: *listSkip, Limit: *listLimit})
	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *createName == "" {
			createCmd.Usage()
			return errHelp
		}
		return cli.createUser(ctx, role, userCreateArgs{
			fullName: *createName, studentCode: *createCode, phone: *createPhone,
			departmentID: *createDept, username: *createUsername, email: *createEmail,
		})
	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		return cli.updateUser(ctx, role, *updateID, userUpdateArgs{
			fullName: *updateName, email: *updateEmail, phone: *updatePhone,
			departmentID: *updateDept, active: *updateActive,
		})
	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		ok, err := cli.confirm(fmt.Sprintf("%s %d", role, *deleteID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled.")
			return nil
		}
		if err := cli.deleteUser(ctx, role, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted %s %d.\n", role, *deleteID)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listUsers(ctx context.Context, role string, opts client.ListOptions) error {
	cli.loading(role + "s")
	var (
		users []user.User
		err   error
	)
	if role == user.RoleStudent {
		users, err = cli.client.Students(ctx, opts)
	} else {
		users, err = cli.client.Lecturers(ctx, opts)
	}
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		row := []string{itoa(u.ID), u.Username, u.FullName, u.Email, yesNo(u.IsActive)}
		if role == user.RoleStudent {
			row = append(row, dash(u.StudentCode))
		}
		rows = append(rows, row)
	}
	header := []string{"ID", "USERNAME", "NAME", "EMAIL", "ACTIVE"}
	if role == user.RoleStudent {
		header = append(header, "CODE")
	}
	cli.table(header, rows, "No "+role+"s yet.")
	return nil
}

type userCreateArgs struct {
	fullName, studentCode, phone string
	departmentID                 int
	username, email              string
}

// createUser fills the account form: the username and email derive from the
// full name (plus student code suffix for students); explicit flags override
// the derivation before submit.
func (cli *commandLine) createUser(ctx context.Context, role string, a userCreateArgs) error {
	domain := core.Conf.Auth.StaffEmailDomain
	if role == user.RoleStudent {
		domain = core.Conf.Auth.StudentEmailDomain
	}

	f := form.NewUserForm(role, domain)
	f = f.Apply(form.SetFullName{Value: a.fullName})
	if role == user.RoleStudent {
		f = f.Apply(form.SetStudentCode{Value: a.studentCode})
	}
	if a.phone != "" {
		f = f.Apply(form.SetPhoneNumber{Value: a.phone})
	}

	username, email := f.Username, f.Email
	if a.username != "" {
		username = a.username
	}
	if a.email != "" {
		email = a.email
	}

	password, err := promptPassword("Initial password: ")
	if err != nil {
		return err
	}

	nu := user.NewUser{
		Username: username, Email: email, Password: password,
		FullName: f.FullName, PhoneNumber: f.PhoneNumber, Role: role,
		StudentCode: f.StudentCode, DepartmentID: a.departmentID,
	}
	var created user.User
	if role == user.RoleStudent {
		created, err = cli.client.CreateStudent(ctx, nu)
	} else {
		created, err = cli.client.CreateLecturer(ctx, nu)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Created %s %s <%s> (id %d).\n", role, created.Username, created.Email, created.ID)
	return nil
}

type userUpdateArgs struct {
	fullName, email, phone string
	departmentID           int
	active                 string
}

// updateUser never touches the username; it is frozen once the account exists.
func (cli *commandLine) updateUser(ctx context.Context, role string, id int, a userUpdateArgs) error {
	uu := user.UpdateUser{
		FullName: a.fullName, Email: a.email, PhoneNumber: a.phone,
		DepartmentID: a.departmentID,
	}
	switch a.active {
	case "":
	case "true":
		v := true
		uu.IsActive = &v
	case "false":
		v := false
		uu.IsActive = &v
	default:
		return fmt.Errorf("-active must be true or false, got %q", a.active)
	}

	var (
		updated user.User
		err     error
	)
	if role == user.RoleStudent {
		updated, err = cli.client.UpdateStudent(ctx, id, uu)
	} else {
		updated, err = cli.client.UpdateLecturer(ctx, id, uu)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Updated %s %s (id %d).\n", role, updated.Username, updated.ID)
	return nil
}

func (cli *commandLine) deleteUser(ctx context.Context, role string, id int) error {
	if role == user.RoleStudent {
		return cli.client.DeleteStudent(ctx, id)
	}
	return cli.client.DeleteLecturer(ctx, id)
}

// academicResults prints the transcript screen: per-semester GPA rows plus the
// cumulative line.
func (cli *commandLine) academicResults(ctx context.Context, studentID int) error {
	cli.loading("academic results")
	record, err := cli.client.AcademicResults(ctx, studentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (%s)\n", record.FullName, record.StudentCode)

	rows := make([][]string, 0, len(record.Semesters))
	for _, sem := range record.Semesters {
		rows = append(rows, []string{
			sem.SemesterCode, sem.SemesterName,
			fmt.Sprintf("%.2f", sem.GPA),
			itoa(sem.TotalCredits), itoa(sem.CompletedCredits), itoa(sem.FailedCredits),
		})
	}
	cli.table([]string{"SEMESTER", "NAME", "GPA", "CREDITS", "COMPLETED", "FAILED"}, rows,
		"No results recorded yet.")
	fmt.Fprintf(cli.out, "Cumulative CPA %.2f over %d credits (%d completed, %d failed).\n",
		record.CumulativeCPA, record.TotalRegisteredCredits,
		record.TotalCompletedCredits, record.TotalFailedCredits)
	return nil
}
