package form

import (
	"github.com/tvqdev/deanboard/core/user"
)

// UserForm is the account create/edit form. EmailDomain is fixed when the form
// is built (staff vs student domain, from config) so the reducer stays a pure
// function of its state.
type UserForm struct {
	Mode        Mode
	Role        string
	EmailDomain string

	FullName    string
	StudentCode string
	PhoneNumber string

	// Derived while Mode == ModeCreate; frozen afterwards.
	Username string
	Email    string
}

// NewUserForm returns an empty create-mode form for the given role.
func NewUserForm(role, emailDomain string) UserForm {
	return UserForm{Mode: ModeCreate, Role: role, EmailDomain: emailDomain}
}

// EditUserForm returns an edit-mode form pre-filled from an existing account;
// username and email will no longer be derived.
func EditUserForm(u user.User, emailDomain string) UserForm {
	return UserForm{
		Mode:        ModeEdit,
		Role:        u.Role,
		EmailDomain: emailDomain,
		FullName:    u.FullName,
		StudentCode: u.StudentCode,
		PhoneNumber: u.PhoneNumber,
		Username:    u.Username,
		Email:       u.Email,
	}
}

type UserEvent interface{ isUserEvent() }

type SetFullName struct{ Value string }
type SetStudentCode struct{ Value string }
type SetPhoneNumber struct{ Value string }

func (SetFullName) isUserEvent()    {}
func (SetStudentCode) isUserEvent() {}
func (SetPhoneNumber) isUserEvent() {}

// Apply returns the next form state. In create mode any event that can change
// the derivation re-derives username and email; in edit mode they are left
// exactly as loaded.
func (f UserForm) Apply(ev UserEvent) UserForm {
	switch e := ev.(type) {
	case SetFullName:
		f.FullName = e.Value
	case SetStudentCode:
		f.StudentCode = e.Value
	case SetPhoneNumber:
		f.PhoneNumber = e.Value
	}

	if f.Mode == ModeCreate {
		var suffix string
		if f.Role == user.RoleStudent {
			suffix = user.StudentCodeSuffix(f.StudentCode)
		}
		f.Username = user.DeriveUsername(f.FullName, suffix)
		f.Email = user.DeriveEmail(f.Username, f.EmailDomain)
	}
	return f
}
