package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tvqdev/deanboard/core/report"
)

// ReportListOptions filters the report list; an empty Status means all.
type ReportListOptions struct {
	Status string
	Skip   int
	Limit  int
}

func (o ReportListOptions) query() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

func (c *Client) Reports(ctx context.Context, opts ReportListOptions) ([]report.Report, error) {
	var out []report.Report
	if err := c.get(ctx, "/reports/all", opts.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Report(ctx context.Context, id int) (report.Report, error) {
	var out report.Report
	err := c.get(ctx, fmt.Sprintf("/reports/%d", id), nil, &out)
	return out, err
}

func (c *Client) UpdateReport(ctx context.Context, id int, ur report.UpdateReport) (report.Report, error) {
	var out report.Report
	if err := ur.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/reports/%d", id), ur, &out)
	return out, err
}

func (c *Client) ReportStats(ctx context.Context) (report.Stats, error) {
	var out report.Stats
	err := c.get(ctx, "/reports/stats", nil, &out)
	return out, err
}
