package client

import (
	"context"
	"fmt"

	"github.com/tvqdev/deanboard/core/user"
)

func (c *Client) Lecturers(ctx context.Context, opts ListOptions) ([]user.User, error) {
	var out []user.User
	if err := c.get(ctx, "/deans/lecturers", opts.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLecturer submits a new lecturer account; the role is forced, whatever
// the payload came in with.
func (c *Client) CreateLecturer(ctx context.Context, nu user.NewUser) (user.User, error) {
	var out user.User
	nu.Role = user.RoleLecturer
	if err := nu.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/lecturers", nu, &out)
	return out, err
}

func (c *Client) UpdateLecturer(ctx context.Context, id int, uu user.UpdateUser) (user.User, error) {
	var out user.User
	if err := uu.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/lecturers/%d", id), uu, &out)
	return out, err
}

func (c *Client) DeleteLecturer(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/lecturers/%d", id))
}

func (c *Client) Students(ctx context.Context, opts ListOptions) ([]user.User, error) {
	var out []user.User
	if err := c.get(ctx, "/deans/students", opts.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStudent(ctx context.Context, nu user.NewUser) (user.User, error) {
	var out user.User
	nu.Role = user.RoleStudent
	if err := nu.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/students", nu, &out)
	return out, err
}

func (c *Client) UpdateStudent(ctx context.Context, id int, uu user.UpdateUser) (user.User, error) {
	var out user.User
	if err := uu.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/students/%d", id), uu, &out)
	return out, err
}

func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/students/%d", id))
}
