package client

import (
	"context"
	"fmt"

	"github.com/tvqdev/deanboard/core/academic"
)

func (c *Client) Departments(ctx context.Context) ([]academic.Department, error) {
	var out []academic.Department
	if err := c.get(ctx, "/deans/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDepartment(ctx context.Context, nd academic.NewDepartment) (academic.Department, error) {
	var out academic.Department
	if err := nd.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/departments", nd, &out)
	return out, err
}

func (c *Client) UpdateDepartment(ctx context.Context, id int, nd academic.NewDepartment) (academic.Department, error) {
	var out academic.Department
	if err := nd.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/departments/%d", id), nd, &out)
	return out, err
}

func (c *Client) DeleteDepartment(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/departments/%d", id))
}
