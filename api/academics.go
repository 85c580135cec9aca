package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/academic"
)

func (s *server) listAcademicYears(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	out := make([]academic.AcademicYear, 0, len(s.state.years))
	for _, y := range s.state.years {
		out = append(out, *y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) createAcademicYear(ctx echo.Context) error {
	var ny academic.NewAcademicYear
	if err := ctx.Bind(&ny); err != nil {
		return badRequest("invalid payload")
	}
	if err := ny.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	year := &academic.AcademicYear{
		ID:   s.state.next("year"),
		Year: ny.Year, StartDate: ny.StartDate, EndDate: ny.EndDate, IsActive: ny.IsActive,
	}
	s.state.years[year.ID] = year
	s.state.audit(actor(ctx), "create_academic_year", auditDetail("academic year %s (id %d)", year.Year, year.ID))
	return ctx.JSON(http.StatusCreated, year)
}

func (s *server) updateAcademicYear(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var ny academic.NewAcademicYear
	if err := ctx.Bind(&ny); err != nil {
		return badRequest("invalid payload")
	}
	if err := ny.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	year, ok := s.state.years[id]
	if !ok {
		return notFound("Academic year")
	}
	year.Year = ny.Year
	year.StartDate = ny.StartDate
	year.EndDate = ny.EndDate
	year.IsActive = ny.IsActive
	s.state.audit(actor(ctx), "update_academic_year", auditDetail("academic year %s (id %d)", year.Year, id))
	return ctx.JSON(http.StatusOK, year)
}

func (s *server) deleteAcademicYear(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	year, ok := s.state.years[id]
	if !ok {
		return notFound("Academic year")
	}
	for _, sem := range s.state.semesters {
		if sem.AcademicYearID == id {
			return badRequest("Cannot delete academic year with existing semesters")
		}
	}
	delete(s.state.years, id)
	s.state.audit(actor(ctx), "delete_academic_year", auditDetail("academic year %s (id %d)", year.Year, id))
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) listSemesters(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	out := make([]academic.Semester, 0, len(s.state.semesters))
	for _, sem := range s.state.semesters {
		out = append(out, *sem)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) createSemester(ctx echo.Context) error {
	var ns academic.NewSemester
	if err := ctx.Bind(&ns); err != nil {
		return badRequest("invalid payload")
	}
	if err := ns.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, ok := s.state.years[ns.AcademicYearID]; !ok {
		return notFound("Academic year")
	}
	for _, sem := range s.state.semesters {
		if sem.Code == ns.Code {
			return badRequest("Semester code already exists")
		}
	}
	sem := &academic.Semester{
		ID:   s.state.next("semester"),
		Code: ns.Code, Name: ns.Name,
		AcademicYearID: ns.AcademicYearID, SemesterNumber: ns.SemesterNumber,
		StartDate: ns.StartDate, EndDate: ns.EndDate,
		// activation only through the activate endpoint
		IsActive: false,
	}
	s.state.semesters[sem.ID] = sem
	s.state.audit(actor(ctx), "create_semester", auditDetail("semester %s (id %d)", sem.Code, sem.ID))
	return ctx.JSON(http.StatusCreated, sem)
}

func (s *server) updateSemester(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var ns academic.NewSemester
	if err := ctx.Bind(&ns); err != nil {
		return badRequest("invalid payload")
	}
	if err := ns.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sem, ok := s.state.semesters[id]
	if !ok {
		return notFound("Semester")
	}
	if _, ok := s.state.years[ns.AcademicYearID]; !ok {
		return notFound("Academic year")
	}
	for _, other := range s.state.semesters {
		if other.ID != id && other.Code == ns.Code {
			return badRequest("Semester code already exists")
		}
	}
	sem.Code = ns.Code
	sem.Name = ns.Name
	sem.AcademicYearID = ns.AcademicYearID
	sem.SemesterNumber = ns.SemesterNumber
	sem.StartDate = ns.StartDate
	sem.EndDate = ns.EndDate
	s.state.audit(actor(ctx), "update_semester", auditDetail("semester %s (id %d)", sem.Code, id))
	return ctx.JSON(http.StatusOK, sem)
}

func (s *server) deleteSemester(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sem, ok := s.state.semesters[id]
	if !ok {
		return notFound("Semester")
	}
	for _, cls := range s.state.classes {
		if cls.Semester == sem.Code {
			return badRequest("Cannot delete semester with existing classes")
		}
	}
	delete(s.state.semesters, id)
	s.state.audit(actor(ctx), "delete_semester", auditDetail("semester %s (id %d)", sem.Code, id))
	return ctx.NoContent(http.StatusNoContent)
}

// activateSemester flips the single active semester: the target becomes active
// and every other semester is deactivated in the same mutation.
func (s *server) activateSemester(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	sem, ok := s.state.semesters[id]
	if !ok {
		return notFound("Semester")
	}
	for _, other := range s.state.semesters {
		other.IsActive = other.ID == id
	}
	s.state.audit(actor(ctx), "activate_semester", auditDetail("semester %s (id %d)", sem.Code, id))
	return ctx.JSON(http.StatusOK, sem)
}
