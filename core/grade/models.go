package grade

import (
	"github.com/tvqdev/deanboard/core"
)

// Grade types and their fixed weights. The server owns the authoritative totals;
// the fixed split is mirrored here so forms can preview them.
const (
	TypeMidterm = "midterm"
	TypeFinal   = "final"

	MidtermWeight = 0.3
	FinalWeight   = 0.7
)

func WeightForType(gradeType string) float64 {
	if gradeType == TypeMidterm {
		return MidtermWeight
	}
	return FinalWeight
}

type Grade struct {
	ID           int     `json:"id"`
	EnrollmentID int     `json:"enrollment_id"`
	GradeType    string  `json:"grade_type"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
}

// NewGrade records a score for one enrollment. Weight is always set from the
// grade type on validation, never trusted from the caller.
type NewGrade struct {
	EnrollmentID int     `json:"enrollment_id" validate:"required,gt=0"`
	GradeType    string  `json:"grade_type" validate:"required,oneof=midterm final"`
	Score        float64 `json:"score" validate:"gte=0,lte=10"`
	Weight       float64 `json:"weight"`
}

func (ng *NewGrade) Validate() error {
	if err := core.Validate.Struct(ng); err != nil {
		return core.TranslateErrors(err)
	}
	ng.Weight = WeightForType(ng.GradeType)
	return nil
}

type UpdateGrade struct {
	GradeType string  `json:"grade_type" validate:"required,oneof=midterm final"`
	Score     float64 `json:"score" validate:"gte=0,lte=10"`
	Weight    float64 `json:"weight"`
}

func (ug *UpdateGrade) Validate() error {
	if err := core.Validate.Struct(ug); err != nil {
		return core.TranslateErrors(err)
	}
	ug.Weight = WeightForType(ug.GradeType)
	return nil
}

// StudentGrades is one row of a class grade sheet: the enrolled student plus
// whatever grades have been recorded so far.
type StudentGrades struct {
	EnrollmentID int     `json:"enrollment_id"`
	StudentID    int     `json:"student_id"`
	StudentCode  string  `json:"student_code"`
	FullName     string  `json:"full_name"`
	Grades       []Grade `json:"grades"`
}

// Scores picks the midterm and final scores out of the recorded grades; a nil
// pointer means that grade has not been entered yet.
func (sg StudentGrades) Scores() (midterm, final *float64) {
	for i := range sg.Grades {
		switch sg.Grades[i].GradeType {
		case TypeMidterm:
			midterm = &sg.Grades[i].Score
		case TypeFinal:
			final = &sg.Grades[i].Score
		}
	}
	return midterm, final
}

// SemesterResult is the server-computed GPA summary for one semester.
type SemesterResult struct {
	SemesterID       int     `json:"semester_id"`
	SemesterCode     string  `json:"semester_code"`
	SemesterName     string  `json:"semester_name"`
	GPA              float64 `json:"gpa"`
	TotalCredits     int     `json:"total_credits"`
	CompletedCredits int     `json:"completed_credits"`
	FailedCredits    int     `json:"failed_credits"`
}

// AcademicRecord is one student's full academic standing: per-semester GPA rows
// plus the cumulative CPA across the whole programme.
type AcademicRecord struct {
	StudentID              int              `json:"student_id"`
	StudentCode            string           `json:"student_code"`
	FullName               string           `json:"full_name"`
	Semesters              []SemesterResult `json:"semesters"`
	CumulativeCPA          float64          `json:"cumulative_cpa"`
	TotalRegisteredCredits int              `json:"total_registered_credits"`
	TotalCompletedCredits  int              `json:"total_completed_credits"`
	TotalFailedCredits     int              `json:"total_failed_credits"`
}
