package user

import (
	"github.com/tvqdev/deanboard/core"
)

// Roles
const (
	RoleDean     = "dean"
	RoleLecturer = "lecturer"
	RoleStudent  = "student"
)

// User is an account managed by the dean: a lecturer or a student (deans themselves
// only appear as the authenticated operator). StudentCode and DepartmentID are only
// set for students.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number"`
	Role         string `json:"role,omitempty"`
	IsActive     bool   `json:"is_active"`
	StudentCode  string `json:"student_code,omitempty"`
	DepartmentID int    `json:"department_id,omitempty"`
}

func (u User) IsStudent() bool  { return u.Role == RoleStudent }
func (u User) IsLecturer() bool { return u.Role == RoleLecturer }

// NewUser contains information needed to create a new lecturer or student.
// Username and Email are normally derived from FullName (see Derive* helpers and
// core/form); they remain settable so an operator can override them before submit.
type NewUser struct {
	Username     string `json:"username" validate:"required,min=3,alphanum_"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	FullName     string `json:"full_name" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,min=9,max=11"`
	Role         string `json:"role" validate:"required,oneof=lecturer student"`
	StudentCode  string `json:"student_code" validate:"required_if=Role student"`
	DepartmentID int    `json:"department_id" validate:"omitempty,gt=0"`
}

func (nu *NewUser) Validate() error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
	nu.StudentCode = core.CleanString(nu.StudentCode)

	if err := core.Validate.Struct(nu); err != nil {
		return core.TranslateErrors(err)
	}
	return checkPasswordSimilarity(nu.Password, nu.FullName, nu.Username, nu.Email)
}

// UpdateUser defines what may be modified on an existing account. Username is
// deliberately absent: once an account exists its username is frozen.
type UpdateUser struct {
	Email        string `json:"email" validate:"omitempty,email"`
	Password     string `json:"password" validate:"omitempty,min=6"`
	FullName     string `json:"full_name" validate:"omitempty"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,min=9,max=11"`
	IsActive     *bool  `json:"is_active,omitempty"`
	StudentCode  string `json:"student_code,omitempty"`
	DepartmentID int    `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

func (uu *UpdateUser) Validate() error {
	uu.Email = core.CleanString(uu.Email, true /* lower */)
	uu.FullName = core.CleanString(uu.FullName)

	if err := core.Validate.Struct(uu); err != nil {
		return core.TranslateErrors(err)
	}
	if uu.Password != "" {
		return checkPasswordSimilarity(uu.Password, uu.FullName, "", uu.Email)
	}
	return nil
}
