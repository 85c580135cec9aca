package api

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tvqdev/deanboard/core/academic"
	"github.com/tvqdev/deanboard/core/grade"
	"github.com/tvqdev/deanboard/core/report"
	"github.com/tvqdev/deanboard/core/tuition"
	"github.com/tvqdev/deanboard/core/user"
)

// account is a stored user plus its password hash; the hash never leaves the
// server.
type account struct {
	user.User
	PasswordHash []byte
}

type enrollment struct {
	ID        int
	ClassID   int
	StudentID int
}

type auditEntry struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

// state is the whole backend dataset behind one mutex. It is a fixture store
// for development and tests, not a database; handlers take the write lock for
// mutations and the read lock for queries.
type state struct {
	mu sync.RWMutex

	seq map[string]int

	accounts    map[int]*account
	departments map[int]*academic.Department
	courses     map[int]*academic.Course
	classes     map[int]*academic.Class
	years       map[int]*academic.AcademicYear
	semesters   map[int]*academic.Semester
	enrollments map[int]*enrollment
	grades      map[int]*grade.Grade
	tuitions    map[int]*tuition.Tuition
	reports     map[int]*report.Report
	settings    tuition.Settings
	audits      []auditEntry
	otps        map[string]*otpChallenge
}

func newState() *state {
	s := &state{
		seq:         make(map[string]int),
		accounts:    make(map[int]*account),
		departments: make(map[int]*academic.Department),
		courses:     make(map[int]*academic.Course),
		classes:     make(map[int]*academic.Class),
		years:       make(map[int]*academic.AcademicYear),
		semesters:   make(map[int]*academic.Semester),
		enrollments: make(map[int]*enrollment),
		grades:      make(map[int]*grade.Grade),
		tuitions:    make(map[int]*tuition.Tuition),
		reports:     make(map[int]*report.Report),
		settings:    tuition.Settings{PricePerCredit: 600_000},
		otps:        make(map[string]*otpChallenge),
	}
	s.seed()
	return s
}

// next hands out the id for a new row of the given kind. Callers must hold the
// write lock.
func (s *state) next(kind string) int {
	s.seq[kind]++
	return s.seq[kind]
}

// audit appends one entry to the log. Callers must hold the write lock.
func (s *state) audit(username, action, details string) {
	s.audits = append(s.audits, auditEntry{
		ID:        s.next("audit"),
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
		User:      username,
	})
}

func (s *state) accountByUsername(username string) *account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.accounts {
		if acct.Username == username {
			return acct
		}
	}
	return nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func (s *state) addAccount(acct *account, password string) *account {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err) // only fails on an invalid cost
	}
	acct.ID = s.next("user")
	acct.PasswordHash = hash
	s.accounts[acct.ID] = acct
	return acct
}

// seed installs a small but coherent dataset: one dean, lecturers, students,
// a running semester with classes, grades, bills and a few open reports.
func (s *state) seed() {
	s.addAccount(&account{User: user.User{
		Username: "dean01", Email: "dean01@hust.edu.vn",
		FullName: "Trần Thị Mai", Role: user.RoleDean, IsActive: true,
	}}, "deanpass")

	seit := &academic.Department{ID: s.next("department"), Name: "Information Technology", Description: "School of Information and Communication Technology"}
	sem1 := &academic.Department{ID: s.next("department"), Name: "Applied Mathematics", Description: "School of Applied Mathematics and Informatics"}
	s.departments[seit.ID] = seit
	s.departments[sem1.ID] = sem1

	lect := s.addAccount(&account{User: user.User{
		Username: "lenamhai", Email: "lenamhai@hust.edu.vn",
		FullName: "Lê Nam Hải", Role: user.RoleLecturer, IsActive: true,
		DepartmentID: seit.ID,
	}}, "lectpass")

	students := []struct {
		fullName, code string
	}{
		{"Nguyễn Văn Đức", "20210001"},
		{"Phạm Thị Hồng", "20210002"},
		{"Vũ Minh Quân", "20210003"},
	}
	var studentIDs []int
	for _, st := range students {
		username := user.DeriveUsername(st.fullName, user.StudentCodeSuffix(st.code))
		acct := s.addAccount(&account{User: user.User{
			Username: username,
			Email:    user.DeriveEmail(username, "student.university.edu.vn"),
			FullName: st.fullName, Role: user.RoleStudent, IsActive: true,
			StudentCode: st.code, DepartmentID: seit.ID,
		}}, "studentpass")
		studentIDs = append(studentIDs, acct.ID)
	}

	calc := &academic.Course{ID: s.next("course"), Code: "MI1111", Name: "Calculus I", Credits: 4, DepartmentID: sem1.ID}
	prog := &academic.Course{ID: s.next("course"), Code: "IT3040", Name: "Programming Techniques", Credits: 3, DepartmentID: seit.ID}
	s.courses[calc.ID] = calc
	s.courses[prog.ID] = prog

	year := &academic.AcademicYear{ID: s.next("year"), Year: "2023-2024", StartDate: "2023-09-05", EndDate: "2024-06-30", IsActive: true}
	s.years[year.ID] = year
	sem := &academic.Semester{
		ID: s.next("semester"), Code: "2023.1", Name: "Học kỳ 1 2023-2024",
		AcademicYearID: year.ID, SemesterNumber: 1,
		StartDate: "2023-09-05", EndDate: "2024-01-20", IsActive: true,
	}
	s.semesters[sem.ID] = sem

	cls := &academic.Class{
		ID:   s.next("class"),
		Code: academic.ClassCode(prog.Code, sem.Code), CourseID: prog.ID,
		LecturerID: lect.ID, Semester: sem.Code, MaxStudents: 60,
		StartWeek: 1, EndWeek: 16, DayOfWeek: 3, StartPeriod: 1, EndPeriod: 3,
		Room: "D9-301",
	}
	s.classes[cls.ID] = cls

	for i, sid := range studentIDs[:2] {
		enr := &enrollment{ID: s.next("enrollment"), ClassID: cls.ID, StudentID: sid}
		s.enrollments[enr.ID] = enr
		cls.EnrolledCount++

		mid := &grade.Grade{
			ID: s.next("grade"), EnrollmentID: enr.ID,
			GradeType: grade.TypeMidterm, Score: 8.0 - float64(i), Weight: grade.MidtermWeight,
		}
		s.grades[mid.ID] = mid
		if i == 0 {
			fin := &grade.Grade{
				ID: s.next("grade"), EnrollmentID: enr.ID,
				GradeType: grade.TypeFinal, Score: 7.5, Weight: grade.FinalWeight,
			}
			s.grades[fin.ID] = fin
		}
	}

	for i, sid := range studentIDs {
		total := prog.Credits * s.settings.PricePerCredit
		paid := 0
		if i == 0 {
			paid = total
		} else if i == 1 {
			paid = total / 2
		}
		t := &tuition.Tuition{
			ID: s.next("tuition"), StudentID: sid, Semester: sem.Code,
			TotalAmount: total, PaidAmount: paid, Status: tuition.StatusFor(paid, total),
		}
		s.tuitions[t.ID] = t
	}

	now := time.Now().UTC().Format(time.RFC3339)
	rep := &report.Report{
		ID: s.next("report"), StudentCode: students[1].code, StudentName: students[1].fullName,
		Title: "Sai điểm giữa kỳ", Description: "Điểm giữa kỳ trên hệ thống không khớp với bài thi.",
		ReportType: report.TypeAcademic, Status: report.StatusPending,
		CreatedAt: now, UpdatedAt: now,
	}
	s.reports[rep.ID] = rep
}

// enrollmentGrades collects the grades recorded for one enrollment. Callers
// must hold at least the read lock.
func (s *state) enrollmentGrades(enrollmentID int) []grade.Grade {
	var out []grade.Grade
	for _, g := range s.grades {
		if g.EnrollmentID == enrollmentID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// finalScore selects the score the transcript uses for an enrollment: the
// final exam when recorded, otherwise the first recorded grade, otherwise nil.
func finalScore(grades []grade.Grade) *float64 {
	if len(grades) == 0 {
		return nil
	}
	for i := range grades {
		if grades[i].GradeType == grade.TypeFinal {
			return &grades[i].Score
		}
	}
	return &grades[0].Score
}

// creditSummary accumulates 4-scale results over a set of enrollments.
type creditSummary struct {
	weighted   float64
	registered int
	completed  int
	failed     int
}

func (cs *creditSummary) add(score10 float64, credits int) {
	grade4, _ := grade.Convert(score10)
	cs.registered += credits
	cs.weighted += grade4 * float64(credits)
	if grade.Passing(grade4) {
		cs.completed += credits
	} else {
		cs.failed += credits
	}
}

func (cs *creditSummary) gpa() float64 {
	if cs.registered == 0 {
		return 0
	}
	return round2(cs.weighted / float64(cs.registered))
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// semesterSummary computes one student's credit summary for classes in the
// given semester code; empty code means the whole programme. Callers must hold
// at least the read lock.
func (s *state) semesterSummary(studentID int, semesterCode string) creditSummary {
	var cs creditSummary
	for _, enr := range s.enrollments {
		if enr.StudentID != studentID {
			continue
		}
		cls, ok := s.classes[enr.ClassID]
		if !ok {
			continue
		}
		if semesterCode != "" && cls.Semester != semesterCode {
			continue
		}
		score := finalScore(s.enrollmentGrades(enr.ID))
		if score == nil {
			continue
		}
		course, ok := s.courses[cls.CourseID]
		if !ok {
			continue
		}
		cs.add(*score, course.Credits)
	}
	return cs
}

func (s *state) academicRecord(acct *account) grade.AcademicRecord {
	rec := grade.AcademicRecord{
		StudentID:   acct.ID,
		StudentCode: acct.StudentCode,
		FullName:    acct.FullName,
	}

	semIDs := make([]int, 0, len(s.semesters))
	for id := range s.semesters {
		semIDs = append(semIDs, id)
	}
	sort.Ints(semIDs)

	for _, id := range semIDs {
		sem := s.semesters[id]
		cs := s.semesterSummary(acct.ID, sem.Code)
		if cs.registered == 0 {
			continue
		}
		rec.Semesters = append(rec.Semesters, grade.SemesterResult{
			SemesterID:       sem.ID,
			SemesterCode:     sem.Code,
			SemesterName:     sem.Name,
			GPA:              cs.gpa(),
			TotalCredits:     cs.registered,
			CompletedCredits: cs.completed,
			FailedCredits:    cs.failed,
		})
	}

	all := s.semesterSummary(acct.ID, "")
	rec.CumulativeCPA = all.gpa()
	rec.TotalRegisteredCredits = all.registered
	rec.TotalCompletedCredits = all.completed
	rec.TotalFailedCredits = all.failed
	return rec
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func auditDetail(format string, args ...interface{}) string {
	return clip(fmt.Sprintf(format, args...), 200)
}
