package client

import (
	"context"
	"fmt"

	"github.com/tvqdev/deanboard/core/academic"
)

func (c *Client) AcademicYears(ctx context.Context) ([]academic.AcademicYear, error) {
	var out []academic.AcademicYear
	if err := c.get(ctx, "/deans/academic-years", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAcademicYear(ctx context.Context, ny academic.NewAcademicYear) (academic.AcademicYear, error) {
	var out academic.AcademicYear
	if err := ny.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/academic-years", ny, &out)
	return out, err
}

func (c *Client) UpdateAcademicYear(ctx context.Context, id int, ny academic.NewAcademicYear) (academic.AcademicYear, error) {
	var out academic.AcademicYear
	if err := ny.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/academic-years/%d", id), ny, &out)
	return out, err
}

func (c *Client) DeleteAcademicYear(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/academic-years/%d", id))
}

func (c *Client) Semesters(ctx context.Context) ([]academic.Semester, error) {
	var out []academic.Semester
	if err := c.get(ctx, "/deans/semesters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSemester(ctx context.Context, ns academic.NewSemester) (academic.Semester, error) {
	var out academic.Semester
	if err := ns.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/semesters", ns, &out)
	return out, err
}

func (c *Client) UpdateSemester(ctx context.Context, id int, ns academic.NewSemester) (academic.Semester, error) {
	var out academic.Semester
	if err := ns.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/semesters/%d", id), ns, &out)
	return out, err
}

func (c *Client) DeleteSemester(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/deans/semesters/%d", id))
}

// ActivateSemester makes one semester the active one; the server deactivates
// every other semester as part of the same call.
func (c *Client) ActivateSemester(ctx context.Context, id int) (academic.Semester, error) {
	var out academic.Semester
	err := c.post(ctx, fmt.Sprintf("/deans/semesters/%d/activate", id), nil, &out)
	return out, err
}
