package academic

import (
	"github.com/tvqdev/deanboard/core"
)

type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type NewDepartment struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (nd *NewDepartment) Validate() error {
	nd.Name = core.CleanString(nd.Name)
	if err := core.Validate.Struct(nd); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}

type Course struct {
	ID           int    `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Credits      int    `json:"credits"`
	DepartmentID int    `json:"department_id,omitempty"`
}

// NewCourse creates a course; code uniqueness is enforced server-side.
type NewCourse struct {
	Code         string `json:"code" validate:"required,alphanum"`
	Name         string `json:"name" validate:"required"`
	Credits      int    `json:"credits" validate:"required,gte=1,lte=20"`
	DepartmentID int    `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

func (nc *NewCourse) Validate() error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	if err := core.Validate.Struct(nc); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}

// Class is one taught instance of a course in a semester. DayOfWeek follows the
// Vietnamese convention: 2 = Monday … 8 = Sunday.
type Class struct {
	ID            int    `json:"id"`
	Code          string `json:"code"`
	CourseID      int    `json:"course_id"`
	LecturerID    int    `json:"lecturer_id"`
	Semester      string `json:"semester"`
	MaxStudents   int    `json:"max_students"`
	EnrolledCount int    `json:"enrolled_count,omitempty"`
	StartWeek     int    `json:"start_week,omitempty"`
	EndWeek       int    `json:"end_week,omitempty"`
	DayOfWeek     int    `json:"day_of_week,omitempty"`
	StartPeriod   int    `json:"start_period,omitempty"`
	EndPeriod     int    `json:"end_period,omitempty"`
	Room          string `json:"room,omitempty"`
}

type NewClass struct {
	Code        string `json:"code" validate:"required"`
	CourseID    int    `json:"course_id" validate:"required,gt=0"`
	LecturerID  int    `json:"lecturer_id" validate:"omitempty,gt=0"`
	Semester    string `json:"semester" validate:"required,semester"`
	MaxStudents int    `json:"max_students" validate:"required,gte=1"`
	StartWeek   int    `json:"start_week,omitempty" validate:"omitempty,gte=1,lte=53"`
	EndWeek     int    `json:"end_week,omitempty" validate:"omitempty,gte=1,lte=53,gtefield=StartWeek"`
	DayOfWeek   int    `json:"day_of_week,omitempty" validate:"omitempty,gte=2,lte=8"`
	StartPeriod int    `json:"start_period,omitempty" validate:"omitempty,gte=1,lte=12"`
	EndPeriod   int    `json:"end_period,omitempty" validate:"omitempty,gte=1,lte=12,gtefield=StartPeriod"`
	Room        string `json:"room,omitempty"`
}

func (nc *NewClass) Validate() error {
	nc.Code = core.CleanString(nc.Code)
	nc.Semester = core.CleanString(nc.Semester)
	if err := core.Validate.Struct(nc); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}

// AcademicYear dates are exchanged as YYYY-MM-DD strings, matching the wire format.
type AcademicYear struct {
	ID        int    `json:"id"`
	Year      string `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
}

type NewAcademicYear struct {
	Year      string `json:"year" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive  bool   `json:"is_active"`
}

func (ny *NewAcademicYear) Validate() error {
	ny.Year = core.CleanString(ny.Year)
	if err := core.Validate.Struct(ny); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}

type Semester struct {
	ID             int    `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	AcademicYearID int    `json:"academic_year_id"`
	SemesterNumber int    `json:"semester_number"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	IsActive       bool   `json:"is_active"`
}

// NewSemester creates a semester inside an academic year. Activation happens through
// the dedicated activate endpoint, never on create; the server guarantees at most one
// active semester.
type NewSemester struct {
	Code           string `json:"code" validate:"required,semester"`
	Name           string `json:"name" validate:"required"`
	AcademicYearID int    `json:"academic_year_id" validate:"required,gt=0"`
	SemesterNumber int    `json:"semester_number" validate:"required,gte=1,lte=3"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive       bool   `json:"is_active"`
}

func (ns *NewSemester) Validate() error {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
	if err := core.Validate.Struct(ns); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}
