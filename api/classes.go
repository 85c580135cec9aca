package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/academic"
	"github.com/tvqdev/deanboard/core/grade"
	"github.com/tvqdev/deanboard/core/user"
)

func (s *server) listClasses(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	out := make([]academic.Class, 0, len(s.state.classes))
	for _, c := range s.state.classes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) getClass(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	cls, ok := s.state.classes[id]
	if !ok {
		return notFound("Class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

// validateClassRefs checks course and lecturer links. Callers must hold at
// least the read lock.
func (s *server) validateClassRefs(nc academic.NewClass) error {
	if _, ok := s.state.courses[nc.CourseID]; !ok {
		return notFound("Course")
	}
	if nc.LecturerID != 0 {
		acct, ok := s.state.accounts[nc.LecturerID]
		if !ok || !acct.IsLecturer() {
			return notFound("Lecturer")
		}
	}
	return nil
}

func (s *server) createClass(ctx echo.Context) error {
	var nc academic.NewClass
	if err := ctx.Bind(&nc); err != nil {
		return badRequest("invalid payload")
	}
	if err := nc.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if err := s.validateClassRefs(nc); err != nil {
		return err
	}
	cls := &academic.Class{
		ID:   s.state.next("class"),
		Code: nc.Code, CourseID: nc.CourseID, LecturerID: nc.LecturerID,
		Semester: nc.Semester, MaxStudents: nc.MaxStudents,
		StartWeek: nc.StartWeek, EndWeek: nc.EndWeek, DayOfWeek: nc.DayOfWeek,
		StartPeriod: nc.StartPeriod, EndPeriod: nc.EndPeriod, Room: nc.Room,
	}
	s.state.classes[cls.ID] = cls
	s.state.audit(actor(ctx), "create_class", auditDetail("class %s (id %d)", cls.Code, cls.ID))
	return ctx.JSON(http.StatusCreated, cls)
}

func (s *server) updateClass(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var nc academic.NewClass
	if err := ctx.Bind(&nc); err != nil {
		return badRequest("invalid payload")
	}
	if err := nc.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cls, ok := s.state.classes[id]
	if !ok {
		return notFound("Class")
	}
	if err := s.validateClassRefs(nc); err != nil {
		return err
	}
	if nc.MaxStudents < cls.EnrolledCount {
		return badRequest("max_students cannot be below the current enrollment")
	}
	cls.Code = nc.Code
	cls.CourseID = nc.CourseID
	cls.LecturerID = nc.LecturerID
	cls.Semester = nc.Semester
	cls.MaxStudents = nc.MaxStudents
	cls.StartWeek = nc.StartWeek
	cls.EndWeek = nc.EndWeek
	cls.DayOfWeek = nc.DayOfWeek
	cls.StartPeriod = nc.StartPeriod
	cls.EndPeriod = nc.EndPeriod
	cls.Room = nc.Room
	s.state.audit(actor(ctx), "update_class", auditDetail("class %s (id %d)", cls.Code, id))
	return ctx.JSON(http.StatusOK, cls)
}

func (s *server) deleteClass(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cls, ok := s.state.classes[id]
	if !ok {
		return notFound("Class")
	}
	for _, enr := range s.state.enrollments {
		if enr.ClassID == id {
			return badRequest("Cannot delete class with enrolled students")
		}
	}
	delete(s.state.classes, id)
	s.state.audit(actor(ctx), "delete_class", auditDetail("class %s (id %d)", cls.Code, id))
	return ctx.NoContent(http.StatusNoContent)
}

// classEnrollments lists a class' enrollments sorted by id. Callers must hold
// at least the read lock.
func (s *state) classEnrollments(classID int) []*enrollment {
	var out []*enrollment
	for _, enr := range s.enrollments {
		if enr.ClassID == classID {
			out = append(out, enr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *server) listClassStudents(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	if _, ok := s.state.classes[id]; !ok {
		return notFound("Class")
	}
	out := make([]user.User, 0)
	for _, enr := range s.state.classEnrollments(id) {
		if acct, ok := s.state.accounts[enr.StudentID]; ok {
			out = append(out, acct.User)
		}
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) listClassGrades(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	if _, ok := s.state.classes[id]; !ok {
		return notFound("Class")
	}
	out := make([]grade.StudentGrades, 0)
	for _, enr := range s.state.classEnrollments(id) {
		acct, ok := s.state.accounts[enr.StudentID]
		if !ok {
			continue
		}
		out = append(out, grade.StudentGrades{
			EnrollmentID: enr.ID,
			StudentID:    acct.ID,
			StudentCode:  acct.StudentCode,
			FullName:     acct.FullName,
			Grades:       s.state.enrollmentGrades(enr.ID),
		})
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) bulkEnroll(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var payload struct {
		StudentIDs []int `json:"student_ids"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return badRequest("invalid payload")
	}
	if len(payload.StudentIDs) == 0 {
		return badRequest("student_ids must not be empty")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cls, ok := s.state.classes[id]
	if !ok {
		return notFound("Class")
	}

	enrolled := make(map[int]bool)
	for _, enr := range s.state.enrollments {
		if enr.ClassID == id {
			enrolled[enr.StudentID] = true
		}
	}

	var toAdd []int
	for _, sid := range payload.StudentIDs {
		acct, ok := s.state.accounts[sid]
		if !ok || !acct.IsStudent() {
			return notFound("Student")
		}
		if enrolled[sid] {
			continue // already in the class; idempotent
		}
		toAdd = append(toAdd, sid)
	}
	if cls.EnrolledCount+len(toAdd) > cls.MaxStudents {
		return badRequest("Class is full")
	}

	for _, sid := range toAdd {
		enr := &enrollment{ID: s.state.next("enrollment"), ClassID: id, StudentID: sid}
		s.state.enrollments[enr.ID] = enr
		cls.EnrolledCount++
	}
	s.state.audit(actor(ctx), "bulk_enroll", auditDetail("%d students into class %s (id %d)", len(toAdd), cls.Code, id))
	return ctx.JSON(http.StatusOK, echo.Map{"added": len(toAdd)})
}
