package client

import (
	"context"
	"fmt"

	"github.com/tvqdev/deanboard/core/grade"
)

func (c *Client) CreateGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	var out grade.Grade
	if err := ng.Validate(); err != nil {
		return out, err
	}
	err := c.post(ctx, "/deans/grades", ng, &out)
	return out, err
}

func (c *Client) UpdateGrade(ctx context.Context, id int, ug grade.UpdateGrade) (grade.Grade, error) {
	var out grade.Grade
	if err := ug.Validate(); err != nil {
		return out, err
	}
	err := c.put(ctx, fmt.Sprintf("/deans/grades/%d", id), ug, &out)
	return out, err
}

// AcademicResults fetches a student's per-semester GPA rows plus the cumulative
// CPA summary; entirely server-computed.
func (c *Client) AcademicResults(ctx context.Context, studentID int) (grade.AcademicRecord, error) {
	var out grade.AcademicRecord
	err := c.get(ctx, fmt.Sprintf("/deans/students/%d/academic-results", studentID), nil, &out)
	return out, err
}
