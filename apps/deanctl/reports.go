package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tvqdev/deanboard/client"
	"github.com/tvqdev/deanboard/core/report"
)

func (cli *commandLine) reports(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("reports list", flag.ContinueOnError)
	listStatus := listCmd.String("status", "", "filter by status (pending|processing|resolved|rejected)")
	listSkip := listCmd.Int("skip", 0, "rows to skip")
	listLimit := listCmd.Int("limit", 0, "max rows (0 = all)")

	showCmd := flag.NewFlagSet("reports show", flag.ContinueOnError)
	showID := showCmd.Int("id", 0, "report id")

	updateCmd := flag.NewFlagSet("reports update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "report id")
	updateStatus := updateCmd.String("status", "", "new status (pending|processing|resolved|rejected)")
	updateResponse := updateCmd.String("response", "", "dean response text")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		cli.loading("reports")
		reports, err := cli.client.Reports(ctx, client.ReportListOptions{
			Status: *listStatus,
			Skip:   *listSkip,
			Limit:  *listLimit,
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(reports))
		for _, r := range reports {
			rows = append(rows, []string{
				itoa(r.ID), r.StudentCode, r.Title, r.ReportType, r.Status, r.CreatedAt,
			})
		}
		cli.table([]string{"ID", "STUDENT", "TITLE", "TYPE", "STATUS", "CREATED"}, rows, "No reports found.")
		return nil

	case "show":
		if err := showCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *showID == 0 {
			showCmd.Usage()
			return errHelp
		}
		r, err := cli.client.Report(ctx, *showID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Report #%d (%s)\n", r.ID, r.Status)
		fmt.Fprintf(cli.out, "Student:  %s (%s)\n", r.StudentName, r.StudentCode)
		fmt.Fprintf(cli.out, "Type:     %s\n", r.ReportType)
		fmt.Fprintf(cli.out, "Title:    %s\n", r.Title)
		fmt.Fprintf(cli.out, "Created:  %s\n", r.CreatedAt)
		fmt.Fprintf(cli.out, "\n%s\n", r.Description)
		if r.DeanResponse != "" {
			fmt.Fprintf(cli.out, "\nResponse: %s\n", r.DeanResponse)
		}
		if r.ResolvedAt != "" {
			fmt.Fprintf(cli.out, "Resolved: %s by %s\n", r.ResolvedAt, dash(r.ResolvedByName))
		}
		return nil

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 || *updateStatus == "" {
			updateCmd.Usage()
			return errHelp
		}
		r, err := cli.client.UpdateReport(ctx, *updateID, report.UpdateReport{
			Status:       *updateStatus,
			DeanResponse: *updateResponse,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Report %d is now %s.\n", r.ID, r.Status)
		return nil

	case "stats":
		stats, err := cli.client.ReportStats(ctx)
		if err != nil {
			return err
		}
		cli.table(
			[]string{"TOTAL", "PENDING", "PROCESSING", "RESOLVED", "REJECTED"},
			[][]string{{itoa(stats.Total), itoa(stats.Pending), itoa(stats.Processing), itoa(stats.Resolved), itoa(stats.Rejected)}},
			"",
		)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
