package client

import (
	"context"
	"time"
)

// Statistics holds the dashboard totals.
type Statistics struct {
	TotalStudents    int `json:"total_students"`
	TotalLecturers   int `json:"total_lecturers"`
	TotalCourses     int `json:"total_courses"`
	TotalClasses     int `json:"total_classes"`
	TotalDepartments int `json:"total_departments"`
}

// ChartPoint is one labelled count in a chart series.
type ChartPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Charts groups the count series behind the dashboard graphs.
type Charts struct {
	StudentsPerDepartment []ChartPoint `json:"students_per_department"`
	EnrollmentPerClass    []ChartPoint `json:"enrollment_per_class"`
}

// AuditLog is a recorded dean action, newest first.
type AuditLog struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

func (c *Client) Statistics(ctx context.Context) (Statistics, error) {
	var out Statistics
	err := c.get(ctx, "/deans/statistics", nil, &out)
	return out, err
}

func (c *Client) StatisticsCharts(ctx context.Context) (Charts, error) {
	var out Charts
	err := c.get(ctx, "/deans/statistics/charts", nil, &out)
	return out, err
}

func (c *Client) AuditLogs(ctx context.Context, opts ListOptions) ([]AuditLog, error) {
	var out []AuditLog
	if err := c.get(ctx, "/deans/audit-logs", opts.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
