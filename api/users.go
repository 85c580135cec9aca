package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/user"
)

func roleLabel(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

// usernameTaken reports whether any account already uses username. Callers
// must hold at least the read lock.
func (s *state) usernameTaken(username string, excludeID int) bool {
	for _, acct := range s.accounts {
		if acct.ID != excludeID && strings.EqualFold(acct.Username, username) {
			return true
		}
	}
	return false
}

func (s *state) usersByRole(role string) []user.User {
	out := make([]user.User, 0)
	for _, acct := range s.accounts {
		if acct.Role == role {
			out = append(out, acct.User)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *server) listUsersByRole(ctx echo.Context, role string) error {
	s.state.mu.RLock()
	users := s.state.usersByRole(role)
	s.state.mu.RUnlock()
	lo, hi := paginate(ctx, len(users))
	return ctx.JSON(http.StatusOK, users[lo:hi])
}

func (s *server) createUserWithRole(ctx echo.Context, role string) error {
	var nu user.NewUser
	if err := ctx.Bind(&nu); err != nil {
		return badRequest("invalid payload")
	}
	if nu.Role != role {
		return badRequest("Role must be " + role)
	}
	if err := nu.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.state.usernameTaken(nu.Username, 0) {
		return badRequest("Username already registered")
	}
	if nu.DepartmentID != 0 {
		if _, ok := s.state.departments[nu.DepartmentID]; !ok {
			return notFound("Department")
		}
	}
	acct := s.state.addAccount(&account{User: user.User{
		Username:     nu.Username,
		Email:        nu.Email,
		FullName:     nu.FullName,
		PhoneNumber:  nu.PhoneNumber,
		Role:         role,
		IsActive:     true,
		StudentCode:  nu.StudentCode,
		DepartmentID: nu.DepartmentID,
	}}, nu.Password)
	s.state.audit(actor(ctx), "create_"+role, auditDetail("%s %s (id %d)", role, acct.Username, acct.ID))
	return ctx.JSON(http.StatusCreated, acct.User)
}

func (s *server) updateUserWithRole(ctx echo.Context, role string) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var uu user.UpdateUser
	if err := ctx.Bind(&uu); err != nil {
		return badRequest("invalid payload")
	}
	if err := uu.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acct, ok := s.state.accounts[id]
	if !ok || acct.Role != role {
		return notFound(roleLabel(role))
	}
	if uu.Email != "" {
		acct.Email = uu.Email
	}
	if uu.FullName != "" {
		acct.FullName = uu.FullName
	}
	if uu.PhoneNumber != "" {
		acct.PhoneNumber = uu.PhoneNumber
	}
	if uu.IsActive != nil {
		acct.IsActive = *uu.IsActive
	}
	if uu.StudentCode != "" && acct.IsStudent() {
		acct.StudentCode = uu.StudentCode
	}
	if uu.DepartmentID != 0 {
		if _, ok := s.state.departments[uu.DepartmentID]; !ok {
			return notFound("Department")
		}
		acct.DepartmentID = uu.DepartmentID
	}
	if uu.Password != "" {
		hash, herr := hashPassword(uu.Password)
		if herr != nil {
			return herr
		}
		acct.PasswordHash = hash
	}
	s.state.audit(actor(ctx), "update_"+role, auditDetail("%s %s (id %d)", role, acct.Username, id))
	return ctx.JSON(http.StatusOK, acct.User)
}

func (s *server) deleteUserWithRole(ctx echo.Context, role string) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	acct, ok := s.state.accounts[id]
	if !ok || acct.Role != role {
		return notFound(roleLabel(role))
	}
	if role == user.RoleStudent {
		for _, enr := range s.state.enrollments {
			if enr.StudentID == id {
				return badRequest("Cannot delete student with enrollments")
			}
		}
	} else {
		for _, cls := range s.state.classes {
			if cls.LecturerID == id {
				return badRequest("Cannot delete lecturer assigned to classes")
			}
		}
	}
	delete(s.state.accounts, id)
	s.state.audit(actor(ctx), "delete_"+role, auditDetail("%s %s (id %d)", role, acct.Username, id))
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) listLecturers(ctx echo.Context) error {
	return s.listUsersByRole(ctx, user.RoleLecturer)
}

func (s *server) createLecturer(ctx echo.Context) error {
	return s.createUserWithRole(ctx, user.RoleLecturer)
}

func (s *server) updateLecturer(ctx echo.Context) error {
	return s.updateUserWithRole(ctx, user.RoleLecturer)
}

func (s *server) deleteLecturer(ctx echo.Context) error {
	return s.deleteUserWithRole(ctx, user.RoleLecturer)
}

func (s *server) listStudents(ctx echo.Context) error {
	return s.listUsersByRole(ctx, user.RoleStudent)
}

func (s *server) createStudent(ctx echo.Context) error {
	return s.createUserWithRole(ctx, user.RoleStudent)
}

func (s *server) updateStudent(ctx echo.Context) error {
	return s.updateUserWithRole(ctx, user.RoleStudent)
}

func (s *server) deleteStudent(ctx echo.Context) error {
	return s.deleteUserWithRole(ctx, user.RoleStudent)
}

func (s *server) academicResults(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	acct, ok := s.state.accounts[id]
	if !ok || !acct.IsStudent() {
		return notFound("Student")
	}
	return ctx.JSON(http.StatusOK, s.state.academicRecord(acct))
}
