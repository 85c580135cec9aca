package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tvqdev/deanboard/core/academic"
)

func (cli *commandLine) years(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("years create", flag.ContinueOnError)
	createYear := createCmd.String("year", "", "label, e.g. 2024-2025")
	createStart := createCmd.String("start", "", "start date YYYY-MM-DD")
	createEnd := createCmd.String("end", "", "end date YYYY-MM-DD")

	updateCmd := flag.NewFlagSet("years update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "academic year id")
	updateYear := updateCmd.String("year", "", "label")
	updateStart := updateCmd.String("start", "", "start date YYYY-MM-DD")
	updateEnd := updateCmd.String("end", "", "end date YYYY-MM-DD")

	deleteCmd := flag.NewFlagSet("years delete", flag.ContinueOnError)
	deleteID := deleteCmd.Int("id", 0, "academic year id")

	switch args[0] {
	case "list":
		cli.loading("academic years")
		years, err := cli.client.AcademicYears(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(years))
		for _, y := range years {
			rows = append(rows, []string{itoa(y.ID), y.Year, y.StartDate, y.EndDate, yesNo(y.IsActive)})
		}
		cli.table([]string{"ID", "YEAR", "START", "END", "ACTIVE"}, rows, "No academic years yet.")
		return nil

	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		year, err := cli.client.CreateAcademicYear(ctx, academic.NewAcademicYear{
			Year: *createYear, StartDate: *createStart, EndDate: *createEnd,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created academic year %s (id %d).\n", year.Year, year.ID)
		return nil

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		year, err := cli.client.UpdateAcademicYear(ctx, *updateID, academic.NewAcademicYear{
			Year: *updateYear, StartDate: *updateStart, EndDate: *updateEnd,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated academic year %s (id %d).\n", year.Year, year.ID)
		return nil

	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		ok, err := cli.confirm(fmt.Sprintf("academic year %d", *deleteID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled.")
			return nil
		}
		if err := cli.client.DeleteAcademicYear(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted academic year %d.\n", *deleteID)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) semesters(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("semesters create", flag.ContinueOnError)
	createCode := createCmd.String("code", "", "semester code, e.g. 2024.2")
	createName := createCmd.String("name", "", "display name")
	createYearID := createCmd.Int("year-id", 0, "academic year id")
	createNumber := createCmd.Int("number", 0, "semester number within the year, 1-3")
	createStart := createCmd.String("start", "", "start date YYYY-MM-DD")
	createEnd := createCmd.String("end", "", "end date YYYY-MM-DD")

	updateCmd := flag.NewFlagSet("semesters update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "semester id")
	updateCode := updateCmd.String("code", "", "semester code")
	updateName := updateCmd.String("name", "", "display name")
	updateYearID := updateCmd.Int("year-id", 0, "academic year id")
	updateNumber := updateCmd.Int("number", 0, "semester number, 1-3")
	updateStart := updateCmd.String("start", "", "start date YYYY-MM-DD")
	updateEnd := updateCmd.String("end", "", "end date YYYY-MM-DD")

	idCmd := func(name string) (*flag.FlagSet, *int) {
		cmd := flag.NewFlagSet("semesters "+name, flag.ContinueOnError)
		return cmd, cmd.Int("id", 0, "semester id")
	}
	deleteCmd, deleteID := idCmd("delete")
	activateCmd, activateID := idCmd("activate")

	switch args[0] {
	case "list":
		cli.loading("semesters")
		semesters, err := cli.client.Semesters(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(semesters))
		for _, sem := range semesters {
			rows = append(rows, []string{
				itoa(sem.ID), sem.Code, sem.Name, sem.StartDate, sem.EndDate, yesNo(sem.IsActive),
			})
		}
		cli.table([]string{"ID", "CODE", "NAME", "START", "END", "ACTIVE"}, rows, "No semesters yet.")
		return nil

	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		sem, err := cli.client.CreateSemester(ctx, academic.NewSemester{
			Code: *createCode, Name: *createName,
			AcademicYearID: *createYearID, SemesterNumber: *createNumber,
			StartDate: *createStart, EndDate: *createEnd,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created semester %s (id %d). Use `semesters activate` to make it current.\n", sem.Code, sem.ID)
		return nil

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		sem, err := cli.client.UpdateSemester(ctx, *updateID, academic.NewSemester{
			Code: *updateCode, Name: *updateName,
			AcademicYearID: *updateYearID, SemesterNumber: *updateNumber,
			StartDate: *updateStart, EndDate: *updateEnd,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated semester %s (id %d).\n", sem.Code, sem.ID)
		return nil

	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		ok, err := cli.confirm(fmt.Sprintf("semester %d", *deleteID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled.")
			return nil
		}
		if err := cli.client.DeleteSemester(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted semester %d.\n", *deleteID)
		return nil

	case "activate":
		if err := activateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *activateID == 0 {
			activateCmd.Usage()
			return errHelp
		}
		sem, err := cli.client.ActivateSemester(ctx, *activateID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Semester %s is now active; all others were deactivated.\n", sem.Code)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
