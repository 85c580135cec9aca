package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tvqdev/deanboard/core/academic"
	"github.com/tvqdev/deanboard/core/grade"
	"github.com/tvqdev/deanboard/core/user"
)

func (c *Client) Classes(ctx context.Context) ([]academic.Class, error) {
	var out []academic.Class
	if err := c.get(ctx, "/deans/classes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Class(ctx context.Context, id int) (academic.Class, error) {
	var out academic.Class
	err := c.get(ctx, fmt.Sprintf("/deans/classes/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateClass(ctx context.Context, nc academic.NewClass) (academic.Class, error) {
	var out academic.Class
	if err := nc.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/classes", nc, &out)
	return out, err
}

func (c *Client) UpdateClass(ctx context.Context, id int, nc academic.NewClass) (academic.Class, error) {
	var out academic.Class
	if err := nc.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/classes/%d", id), nc, &out)
	return out, err
}

func (c *Client) DeleteClass(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/classes/%d", id))
}

// ClassStudents lists the students currently enrolled in a class.
func (c *Client) ClassStudents(ctx context.Context, id int) ([]user.User, error) {
	var out []user.User
	if err := c.get(ctx, fmt.Sprintf("/deans/classes/%d/students", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassGrades fetches the grade sheet for a class: one row per enrollment.
func (c *Client) ClassGrades(ctx context.Context, id int) ([]grade.StudentGrades, error) {
	var out []grade.StudentGrades
	if err := c.get(ctx, fmt.Sprintf("/deans/classes/%d/grades", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BulkEnrollResult reports how many of the submitted students were enrolled.
type BulkEnrollResult struct {
	Added int `json:"added"`
}

// BulkEnroll enrolls the selected students into a class in one request.
func (c *Client) BulkEnroll(ctx context.Context, classID int, studentIDs []int) (BulkEnrollResult, error) {
	var out BulkEnrollResult
	payload := map[string][]int{"student_ids": studentIDs}
	err := c.post(ctx, fmt.Sprintf("/deans/classes/%d/enrollments/bulk", classID), payload, &out)
	return out, err
}

// ClassScreenData is everything the class screen needs before it can render its
// create form: the class list plus the course and lecturer catalogs.
type ClassScreenData struct {
	Classes   []academic.Class
	Courses   []academic.Course
	Lecturers []user.User
}

// FetchClassScreen issues the three independent list requests in parallel and
// joins them; they populate disjoint fields, so there is no ordering hazard.
func (c *Client) FetchClassScreen(ctx context.Context) (*ClassScreenData, error) {
	data := &ClassScreenData{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Classes, err = c.Classes(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.Courses, err = c.Courses(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.Lecturers, err = c.Lecturers(ctx, ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
