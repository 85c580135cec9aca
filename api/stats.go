package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/user"
)

func (s *server) statistics(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	var students, lecturers int
	for _, acct := range s.state.accounts {
		switch acct.Role {
		case user.RoleStudent:
			students++
		case user.RoleLecturer:
			lecturers++
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"total_students":    students,
		"total_lecturers":   lecturers,
		"total_courses":     len(s.state.courses),
		"total_classes":     len(s.state.classes),
		"total_departments": len(s.state.departments),
	})
}

type chartPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (s *server) statisticsCharts(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	byDept := make(map[int]int)
	for _, acct := range s.state.accounts {
		if acct.IsStudent() && acct.DepartmentID != 0 {
			byDept[acct.DepartmentID]++
		}
	}
	students := make([]chartPoint, 0, len(s.state.departments))
	for _, dept := range s.state.departments {
		students = append(students, chartPoint{Label: dept.Name, Count: byDept[dept.ID]})
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Label < students[j].Label })

	enrollment := make([]chartPoint, 0, len(s.state.classes))
	for _, cls := range s.state.classes {
		enrollment = append(enrollment, chartPoint{Label: cls.Code, Count: cls.EnrolledCount})
	}
	sort.Slice(enrollment, func(i, j int) bool { return enrollment[i].Label < enrollment[j].Label })

	return ctx.JSON(http.StatusOK, echo.Map{
		"students_per_department": students,
		"enrollment_per_class":    enrollment,
	})
}

// listAuditLogs returns the dean action trail, newest first.
func (s *server) listAuditLogs(ctx echo.Context) error {
	s.state.mu.RLock()
	out := make([]auditEntry, len(s.state.audits))
	copy(out, s.state.audits)
	s.state.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	lo, hi := paginate(ctx, len(out))
	return ctx.JSON(http.StatusOK, out[lo:hi])
}
