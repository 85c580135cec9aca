package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/tvqdev/deanboard/client"
)

func (cli *commandLine) stats(ctx context.Context, args []string) error {
	statsCmd := flag.NewFlagSet("stats", flag.ContinueOnError)
	charts := statsCmd.Bool("charts", false, "include the per-department and per-class breakdowns")
	if err := statsCmd.Parse(args); err != nil {
		return err
	}

	cli.loading("statistics")
	stats, err := cli.client.Statistics(ctx)
	if err != nil {
		return err
	}
	cli.table(
		[]string{"STUDENTS", "LECTURERS", "COURSES", "CLASSES", "DEPARTMENTS"},
		[][]string{{
			itoa(stats.TotalStudents), itoa(stats.TotalLecturers),
			itoa(stats.TotalCourses), itoa(stats.TotalClasses), itoa(stats.TotalDepartments),
		}},
		"",
	)

	if !*charts {
		return nil
	}

	data, err := cli.client.StatisticsCharts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "\nStudents per department:")
	cli.chart(data.StudentsPerDepartment)
	fmt.Fprintln(cli.out, "\nEnrollment per class:")
	cli.chart(data.EnrollmentPerClass)
	return nil
}

// chart renders a series as a crude horizontal bar list.
func (cli *commandLine) chart(points []client.ChartPoint) {
	if len(points) == 0 {
		fmt.Fprintln(cli.out, "  (no data)")
		return
	}
	width := 0
	for _, p := range points {
		if len(p.Label) > width {
			width = len(p.Label)
		}
	}
	for _, p := range points {
		fmt.Fprintf(cli.out, "  %-*s  %s %d\n", width, p.Label, strings.Repeat("#", p.Count), p.Count)
	}
}

func (cli *commandLine) audit(ctx context.Context, args []string) error {
	auditCmd := flag.NewFlagSet("audit", flag.ContinueOnError)
	skip := auditCmd.Int("skip", 0, "rows to skip")
	limit := auditCmd.Int("limit", 50, "max rows (0 = all)")
	if err := auditCmd.Parse(args); err != nil {
		return err
	}

	cli.loading("audit logs")
	logs, err := cli.client.AuditLogs(ctx, client.ListOptions{Skip: *skip, Limit: *limit})
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			itoa(l.ID), l.Timestamp.Format(time.RFC3339), l.User, l.Action, l.Details,
		})
	}
	cli.table([]string{"ID", "TIME", "USER", "ACTION", "DETAILS"}, rows, "No audit entries yet.")
	return nil
}
