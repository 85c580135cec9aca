package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/academic"
)

func (s *server) listDepartments(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	out := make([]academic.Department, 0, len(s.state.departments))
	for _, d := range s.state.departments {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) createDepartment(ctx echo.Context) error {
	var nd academic.NewDepartment
	if err := ctx.Bind(&nd); err != nil {
		return badRequest("invalid payload")
	}
	if err := nd.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	dept := &academic.Department{ID: s.state.next("department"), Name: nd.Name, Description: nd.Description}
	s.state.departments[dept.ID] = dept
	s.state.audit(actor(ctx), "create_department", auditDetail("department %q (id %d)", dept.Name, dept.ID))
	return ctx.JSON(http.StatusCreated, dept)
}

func (s *server) updateDepartment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var nd academic.NewDepartment
	if err := ctx.Bind(&nd); err != nil {
		return badRequest("invalid payload")
	}
	if err := nd.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	dept, ok := s.state.departments[id]
	if !ok {
		return notFound("Department")
	}
	dept.Name = nd.Name
	dept.Description = nd.Description
	s.state.audit(actor(ctx), "update_department", auditDetail("department %q (id %d)", dept.Name, dept.ID))
	return ctx.JSON(http.StatusOK, dept)
}

func (s *server) deleteDepartment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	dept, ok := s.state.departments[id]
	if !ok {
		return notFound("Department")
	}
	for _, c := range s.state.courses {
		if c.DepartmentID == id {
			return badRequest("Cannot delete department with existing courses")
		}
	}
	for _, acct := range s.state.accounts {
		if acct.DepartmentID == id {
			return badRequest("Cannot delete department with assigned users")
		}
	}
	delete(s.state.departments, id)
	s.state.audit(actor(ctx), "delete_department", auditDetail("department %q (id %d)", dept.Name, id))
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) listCourses(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	out := make([]academic.Course, 0, len(s.state.courses))
	for _, c := range s.state.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

// courseCodeTaken reports whether another course already uses code. Callers
// must hold at least the read lock.
func (s *server) courseCodeTaken(code string, excludeID int) bool {
	for _, c := range s.state.courses {
		if c.ID != excludeID && strings.EqualFold(c.Code, code) {
			return true
		}
	}
	return false
}

func (s *server) createCourse(ctx echo.Context) error {
	var nc academic.NewCourse
	if err := ctx.Bind(&nc); err != nil {
		return badRequest("invalid payload")
	}
	if err := nc.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.courseCodeTaken(nc.Code, 0) {
		return badRequest("Course code already exists")
	}
	if nc.DepartmentID != 0 {
		if _, ok := s.state.departments[nc.DepartmentID]; !ok {
			return notFound("Department")
		}
	}
	course := &academic.Course{
		ID:   s.state.next("course"),
		Code: nc.Code, Name: nc.Name, Credits: nc.Credits, DepartmentID: nc.DepartmentID,
	}
	s.state.courses[course.ID] = course
	s.state.audit(actor(ctx), "create_course", auditDetail("course %s %q (id %d)", course.Code, course.Name, course.ID))
	return ctx.JSON(http.StatusCreated, course)
}

func (s *server) updateCourse(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var nc academic.NewCourse
	if err := ctx.Bind(&nc); err != nil {
		return badRequest("invalid payload")
	}
	if err := nc.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	course, ok := s.state.courses[id]
	if !ok {
		return notFound("Course")
	}
	if s.courseCodeTaken(nc.Code, id) {
		return badRequest("Course code already exists")
	}
	course.Code = nc.Code
	course.Name = nc.Name
	course.Credits = nc.Credits
	course.DepartmentID = nc.DepartmentID
	s.state.audit(actor(ctx), "update_course", auditDetail("course %s (id %d)", course.Code, id))
	return ctx.JSON(http.StatusOK, course)
}

func (s *server) deleteCourse(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	course, ok := s.state.courses[id]
	if !ok {
		return notFound("Course")
	}
	for _, cls := range s.state.classes {
		if cls.CourseID == id {
			return badRequest("Cannot delete course with existing classes")
		}
	}
	delete(s.state.courses, id)
	s.state.audit(actor(ctx), "delete_course", auditDetail("course %s (id %d)", course.Code, id))
	return ctx.NoContent(http.StatusNoContent)
}
