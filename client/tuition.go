package client

import (
	"context"
	"fmt"

	"github.com/tvqdev/deanboard/core/tuition"
)

func (c *Client) TuitionSettings(ctx context.Context) (tuition.Settings, error) {
	var out tuition.Settings
	err := c.get(ctx, "/deans/tuition-settings", nil, &out)
	return out, err
}

func (c *Client) UpdateTuitionSettings(ctx context.Context, s tuition.Settings) (tuition.Settings, error) {
	var out tuition.Settings
	if err := s.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/tuition-settings", s, &out)
	return out, err
}

func (c *Client) Tuitions(ctx context.Context, opts ListOptions) ([]tuition.Tuition, error) {
	var out []tuition.Tuition
	if err := c.get(ctx, "/deans/tuitions", opts.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTuition records a payment; the server recomputes the status from the
// new paid amount.
func (c *Client) UpdateTuition(ctx context.Context, id int, up tuition.UpdatePayment) (tuition.Tuition, error) {
	var out tuition.Tuition
	if err := up.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/tuitions/%d", id), up, &out)
	return out, err
}
