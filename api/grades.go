package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/grade"
)

func (s *server) createGrade(ctx echo.Context) error {
	var ng grade.NewGrade
	if err := ctx.Bind(&ng); err != nil {
		return badRequest("invalid payload")
	}
	if err := ng.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, ok := s.state.enrollments[ng.EnrollmentID]; !ok {
		return notFound("Enrollment")
	}
	// one grade per type per enrollment; re-entering a score is an update
	for _, g := range s.state.grades {
		if g.EnrollmentID == ng.EnrollmentID && g.GradeType == ng.GradeType {
			return badRequest("Grade already exists for this enrollment")
		}
	}
	g := &grade.Grade{
		ID:           s.state.next("grade"),
		EnrollmentID: ng.EnrollmentID,
		GradeType:    ng.GradeType,
		Score:        ng.Score,
		Weight:       ng.Weight,
	}
	s.state.grades[g.ID] = g
	s.state.audit(actor(ctx), "create_grade", auditDetail("%s %.1f for enrollment %d", g.GradeType, g.Score, g.EnrollmentID))
	return ctx.JSON(http.StatusCreated, g)
}

func (s *server) updateGrade(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var ug grade.UpdateGrade
	if err := ctx.Bind(&ug); err != nil {
		return badRequest("invalid payload")
	}
	if err := ug.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	g, ok := s.state.grades[id]
	if !ok {
		return notFound("Grade")
	}
	g.GradeType = ug.GradeType
	g.Score = ug.Score
	g.Weight = ug.Weight
	s.state.audit(actor(ctx), "update_grade", auditDetail("%s %.1f for enrollment %d", g.GradeType, g.Score, g.EnrollmentID))
	return ctx.JSON(http.StatusOK, g)
}
