package client

import (
	"context"
	"fmt"

	"github.com/tvqdev/deanboard/core/academic"
)

func (c *Client) Courses(ctx context.Context) ([]academic.Course, error) {
	var out []academic.Course
	if err := c.get(ctx, "/deans/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCourse(ctx context.Context, nc academic.NewCourse) (academic.Course, error) {
	var out academic.Course
	if err := nc.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/courses", nc, &out)
	return out, err
}

func (c *Client) UpdateCourse(ctx context.Context, id int, nc academic.NewCourse) (academic.Course, error) {
	var out academic.Course
	if err := nc.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/courses/%d", id), nc, &out)
	return out, err
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/courses/%d", id))
}
