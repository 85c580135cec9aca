package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tvqdev/deanboard/core/academic"
)

func (cli *commandLine) departments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("departments create", flag.ContinueOnError)
	createName := createCmd.String("name", "", "department name")
	createDesc := createCmd.String("description", "", "department description")

	updateCmd := flag.NewFlagSet("departments update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "department id")
	updateName := updateCmd.String("name", "", "department name")
	updateDesc := updateCmd.String("description", "", "department description")

	deleteCmd := flag.NewFlagSet("departments delete", flag.ContinueOnError)
	deleteID := deleteCmd.Int("id", 0, "department id")

	switch args[0] {
	case "list":
		cli.loading("departments")
		depts, err := cli.client.Departments(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(depts))
		for _, d := range depts {
			rows = append(rows, []string{itoa(d.ID), d.Name, dash(d.Description)})
		}
		cli.table([]string{"ID", "NAME", "DESCRIPTION"}, rows, "No departments yet.")
		return nil

	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		dept, err := cli.client.CreateDepartment(ctx, academic.NewDepartment{
			Name: *createName, Description: *createDesc,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created department %q (id %d).\n", dept.Name, dept.ID)
		return nil

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		dept, err := cli.client.UpdateDepartment(ctx, *updateID, academic.NewDepartment{
			Name: *updateName, Description: *updateDesc,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated department %q (id %d).\n", dept.Name, dept.ID)
		return nil

	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		ok, err := cli.confirm(fmt.Sprintf("department %d", *deleteID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled.")
			return nil
		}
		if err := cli.client.DeleteDepartment(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted department %d.\n", *deleteID)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) courses(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("courses create", flag.ContinueOnError)
	createCode := createCmd.String("code", "", "course code, e.g. IT3040")
	createName := createCmd.String("name", "", "course name")
	createCredits := createCmd.Int("credits", 0, "credit count")
	createDept := createCmd.Int("department-id", 0, "owning department id")

	updateCmd := flag.NewFlagSet("courses update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "course id")
	updateCode := updateCmd.String("code", "", "course code")
	updateName := updateCmd.String("name", "", "course name")
	updateCredits := updateCmd.Int("credits", 0, "credit count")
	updateDept := updateCmd.Int("department-id", 0, "owning department id")

	deleteCmd := flag.NewFlagSet("courses delete", flag.ContinueOnError)
	deleteID := deleteCmd.Int("id", 0, "course id")

	switch args[0] {
	case "list":
		cli.loading("courses")
		courses, err := cli.client.Courses(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(courses))
		for _, c := range courses {
			rows = append(rows, []string{itoa(c.ID), c.Code, c.Name, itoa(c.Credits)})
		}
		cli.table([]string{"ID", "CODE", "NAME", "CREDITS"}, rows, "No courses yet.")
		return nil

	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		course, err := cli.client.CreateCourse(ctx, academic.NewCourse{
			Code: *createCode, Name: *createName, Credits: *createCredits, DepartmentID: *createDept,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created course %s %q (id %d).\n", course.Code, course.Name, course.ID)
		return nil

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		course, err := cli.client.UpdateCourse(ctx, *updateID, academic.NewCourse{
			Code: *updateCode, Name: *updateName, Credits: *updateCredits, DepartmentID: *updateDept,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated course %s (id %d).\n", course.Code, course.ID)
		return nil

	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		ok, err := cli.confirm(fmt.Sprintf("course %d", *deleteID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled.")
			return nil
		}
		if err := cli.client.DeleteCourse(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted course %d.\n", *deleteID)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
