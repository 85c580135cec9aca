package form

import (
	"github.com/tvqdev/deanboard/core/academic"
)

// ClassForm is the class create/edit form. The code derives from the selected
// course's code plus the semester, only while creating and only once both are set.
type ClassForm struct {
	Mode Mode

	CourseID   int
	CourseCode string
	LecturerID int
	Semester   string

	// Derived while Mode == ModeCreate; frozen afterwards. A SetCode event is a
	// manual override and always wins until the next derivation trigger.
	Code string
}

func NewClassForm() ClassForm {
	return ClassForm{Mode: ModeCreate}
}

func EditClassForm(c academic.Class, courseCode string) ClassForm {
	return ClassForm{
		Mode:       ModeEdit,
		CourseID:   c.CourseID,
		CourseCode: courseCode,
		LecturerID: c.LecturerID,
		Semester:   c.Semester,
		Code:       c.Code,
	}
}

type ClassEvent interface{ isClassEvent() }

// SetCourse carries the selected course's id and code; the screen resolves the
// code from its course list before dispatching.
type SetCourse struct {
	ID   int
	Code string
}
type SetSemester struct{ Value string }
type SetLecturer struct{ ID int }
type SetCode struct{ Value string }

func (SetCourse) isClassEvent()   {}
func (SetSemester) isClassEvent() {}
func (SetLecturer) isClassEvent() {}
func (SetCode) isClassEvent()     {}

func (f ClassForm) Apply(ev ClassEvent) ClassForm {
	derive := false
	switch e := ev.(type) {
	case SetCourse:
		f.CourseID, f.CourseCode = e.ID, e.Code
		derive = true
	case SetSemester:
		f.Semester = e.Value
		derive = true
	case SetLecturer:
		f.LecturerID = e.ID
	case SetCode:
		f.Code = e.Value
	}

	if derive && f.Mode == ModeCreate && f.CourseCode != "" && f.Semester != "" {
		f.Code = academic.ClassCode(f.CourseCode, f.Semester)
	}
	return f
}
