package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tvqdev/deanboard/core"
	"github.com/tvqdev/deanboard/core/academic"
	"github.com/tvqdev/deanboard/core/grade"
	"github.com/tvqdev/deanboard/core/tuition"
)

type testApp struct {
	srv     Server
	lastOTP string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{}
	app.srv = NewServer(&Options{
		DisableReqLogs: true,
		Logger:         core.NopLogger{},
		OTPSink:        func(_, code string) { app.lastOTP = code },
	})
	return app
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	contentType := echoJSON
	switch b := body.(type) {
	case nil:
		reader = &bytes.Buffer{}
	case url.Values:
		reader = bytes.NewBufferString(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.srv.ServeHTTP(rec, req)
	return rec
}

const echoJSON = "application/json"

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	decode(t, rec, &envelope)
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err != nil {
		return string(envelope.Detail)
	}
	return s
}

// deanToken runs the full login + OTP exchange and returns a dean bearer token.
func (app *testApp) deanToken(t *testing.T) string {
	t.Helper()
	form := url.Values{"username": {"dean01"}, "password": {"deanpass"}}
	rec := app.request(t, http.MethodPost, "/auth/login", "", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		RequiresOTP bool   `json:"requires_otp"`
		EmailHint   string `json:"email_hint"`
	}
	decode(t, rec, &loginResp)
	if !loginResp.RequiresOTP {
		t.Fatal("dean login did not require OTP")
	}
	if app.lastOTP == "" {
		t.Fatal("no OTP captured")
	}

	rec = app.request(t, http.MethodPost, "/auth/verify-otp", "",
		map[string]string{"username": "dean01", "otp": app.lastOTP})
	if rec.Code != http.StatusOK {
		t.Fatalf("verify-otp status = %d, body %s", rec.Code, rec.Body.String())
	}
	var tokenResp struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decode(t, rec, &tokenResp)
	if tokenResp.Role != "dean" {
		t.Fatalf("role = %q, want dean", tokenResp.Role)
	}
	return tokenResp.AccessToken
}

func TestLoginOTPExchange(t *testing.T) {
	app := newTestApp(t)

	// bad password
	rec := app.request(t, http.MethodPost, "/auth/login", "",
		url.Values{"username": {"dean01"}, "password": {"nope"}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", rec.Code)
	}
	if got := detailOf(t, rec); got != "Incorrect username or password" {
		t.Errorf("detail = %q", got)
	}

	// wrong OTP keeps the attempt counter, right OTP mints a token
	rec = app.request(t, http.MethodPost, "/auth/login", "",
		url.Values{"username": {"dean01"}, "password": {"deanpass"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	wrong := "000000"
	if app.lastOTP == wrong {
		wrong = "000001"
	}
	rec = app.request(t, http.MethodPost, "/auth/verify-otp", "",
		map[string]string{"username": "dean01", "otp": wrong})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong OTP status = %d, want 401", rec.Code)
	}
	rec = app.request(t, http.MethodPost, "/auth/verify-otp", "",
		map[string]string{"username": "dean01", "otp": app.lastOTP})
	if rec.Code != http.StatusOK {
		t.Errorf("right OTP status = %d, body %s", rec.Code, rec.Body.String())
	}

	// lecturer login needs no OTP
	rec = app.request(t, http.MethodPost, "/auth/login", "",
		url.Values{"username": {"lenamhai"}, "password": {"lectpass"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("lecturer login status = %d", rec.Code)
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decode(t, rec, &resp)
	if resp.AccessToken == "" || resp.Role != "lecturer" {
		t.Errorf("lecturer login = %+v", resp)
	}
}

func TestResendOTP(t *testing.T) {
	app := newTestApp(t)
	app.request(t, http.MethodPost, "/auth/login", "",
		url.Values{"username": {"dean01"}, "password": {"deanpass"}})
	first := app.lastOTP

	rec := app.request(t, http.MethodPost, "/auth/resend-otp", "",
		url.Values{"username": {"dean01"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("resend status = %d", rec.Code)
	}
	if app.lastOTP == "" || app.lastOTP == first {
		// a fresh code may collide by chance but must at least be issued
		t.Logf("resent code %q (first %q)", app.lastOTP, first)
	}

	// non-dean accounts are refused
	rec = app.request(t, http.MethodPost, "/auth/resend-otp", "",
		url.Values{"username": {"lenamhai"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("lecturer resend status = %d, want 400", rec.Code)
	}
}

func TestDeanGuard(t *testing.T) {
	app := newTestApp(t)

	// no token
	rec := app.request(t, http.MethodGet, "/deans/departments", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	// garbage token
	rec = app.request(t, http.MethodGet, "/deans/departments", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", rec.Code)
	}

	// lecturer token is authenticated but not authorized
	lrec := app.request(t, http.MethodPost, "/auth/login", "",
		url.Values{"username": {"lenamhai"}, "password": {"lectpass"}})
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, lrec, &resp)
	rec = app.request(t, http.MethodGet, "/deans/departments", resp.AccessToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("lecturer status = %d, want 403", rec.Code)
	}
}

func TestDepartmentDeleteConstraint(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	rec := app.request(t, http.MethodDelete, "/deans/departments/1", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Cannot delete department with existing courses" {
		t.Errorf("detail = %q", got)
	}

	// the row survives
	rec = app.request(t, http.MethodGet, "/deans/departments", token, nil)
	var depts []academic.Department
	decode(t, rec, &depts)
	if len(depts) != 2 {
		t.Errorf("len(departments) = %d, want 2", len(depts))
	}
}

func TestCourseCodeUnique(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	rec := app.request(t, http.MethodPost, "/deans/courses", token, academic.NewCourse{
		Code: "IT3040", Name: "Duplicate", Credits: 3,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Course code already exists" {
		t.Errorf("detail = %q", got)
	}

	rec = app.request(t, http.MethodPost, "/deans/courses", token, academic.NewCourse{
		Code: "IT4060", Name: "Machine Learning", Credits: 3, DepartmentID: 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var course academic.Course
	decode(t, rec, &course)
	if course.ID == 0 || course.Code != "IT4060" {
		t.Errorf("course = %+v", course)
	}
}

func TestClassCapacity(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	rec := app.request(t, http.MethodPost, "/deans/classes", token, academic.NewClass{
		Code: "MI111120231", CourseID: 1, LecturerID: 2, Semester: "2023.1", MaxStudents: 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create class status = %d, body %s", rec.Code, rec.Body.String())
	}
	var cls academic.Class
	decode(t, rec, &cls)

	// the seed has three students with ids 3..5; capacity is 2
	rec = app.request(t, http.MethodPost, fmt.Sprintf("/deans/classes/%d/enrollments/bulk", cls.ID), token,
		map[string][]int{"student_ids": {3, 4, 5}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("over-capacity status = %d, want 400", rec.Code)
	}
	if got := detailOf(t, rec); got != "Class is full" {
		t.Errorf("detail = %q", got)
	}

	rec = app.request(t, http.MethodPost, fmt.Sprintf("/deans/classes/%d/enrollments/bulk", cls.ID), token,
		map[string][]int{"student_ids": {3, 4}})
	if rec.Code != http.StatusOK {
		t.Fatalf("enroll status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Added int `json:"added"`
	}
	decode(t, rec, &result)
	if result.Added != 2 {
		t.Errorf("added = %d, want 2", result.Added)
	}

	// re-enrolling the same students is idempotent
	rec = app.request(t, http.MethodPost, fmt.Sprintf("/deans/classes/%d/enrollments/bulk", cls.ID), token,
		map[string][]int{"student_ids": {3, 4}})
	decode(t, rec, &result)
	if result.Added != 0 {
		t.Errorf("repeat added = %d, want 0", result.Added)
	}
}

func TestSingleActiveSemester(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	rec := app.request(t, http.MethodPost, "/deans/semesters", token, academic.NewSemester{
		Code: "2023.2", Name: "Học kỳ 2 2023-2024", AcademicYearID: 1, SemesterNumber: 2,
		StartDate: "2024-02-01", EndDate: "2024-06-30",
		IsActive: true, // must be ignored on create
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sem academic.Semester
	decode(t, rec, &sem)
	if sem.IsActive {
		t.Error("semester active on create; activation must go through the activate endpoint")
	}

	rec = app.request(t, http.MethodPost, fmt.Sprintf("/deans/semesters/%d/activate", sem.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate status = %d", rec.Code)
	}

	rec = app.request(t, http.MethodGet, "/deans/semesters", token, nil)
	var semesters []academic.Semester
	decode(t, rec, &semesters)
	active := 0
	for _, s := range semesters {
		if s.IsActive {
			active++
			if s.ID != sem.ID {
				t.Errorf("active semester = %d, want %d", s.ID, sem.ID)
			}
		}
	}
	if active != 1 {
		t.Errorf("active semesters = %d, want 1", active)
	}
}

func TestTuitionStatusRecompute(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	rec := app.request(t, http.MethodGet, "/deans/tuitions", token, nil)
	var bills []tuition.Tuition
	decode(t, rec, &bills)
	if len(bills) != 3 {
		t.Fatalf("len(bills) = %d, want 3", len(bills))
	}
	pending := bills[2]
	if pending.Status != tuition.StatusPending {
		t.Fatalf("seed bill status = %s, want PENDING", pending.Status)
	}

	rec = app.request(t, http.MethodPut, fmt.Sprintf("/deans/tuitions/%d", pending.ID), token,
		tuition.UpdatePayment{PaidAmount: pending.TotalAmount / 2})
	var updated tuition.Tuition
	decode(t, rec, &updated)
	if updated.Status != tuition.StatusPartial {
		t.Errorf("status = %s, want PARTIAL", updated.Status)
	}

	rec = app.request(t, http.MethodPut, fmt.Sprintf("/deans/tuitions/%d", pending.ID), token,
		tuition.UpdatePayment{PaidAmount: pending.TotalAmount})
	decode(t, rec, &updated)
	if updated.Status != tuition.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", updated.Status)
	}
}

func TestAcademicResults(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	// seed: student 3 has midterm 8.0 and final 7.5 in a 3-credit class.
	// transcript score is the final: 7.5 → 3.0 (B), GPA 3.0 over 3 credits.
	rec := app.request(t, http.MethodGet, "/deans/students/3/academic-results", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var record grade.AcademicRecord
	decode(t, rec, &record)
	if len(record.Semesters) != 1 {
		t.Fatalf("len(semesters) = %d, want 1", len(record.Semesters))
	}
	sem := record.Semesters[0]
	if sem.GPA != 3.0 {
		t.Errorf("GPA = %.2f, want 3.00", sem.GPA)
	}
	if sem.TotalCredits != 3 || sem.CompletedCredits != 3 || sem.FailedCredits != 0 {
		t.Errorf("credits = %d/%d/%d, want 3/3/0", sem.TotalCredits, sem.CompletedCredits, sem.FailedCredits)
	}
	if record.CumulativeCPA != 3.0 {
		t.Errorf("CPA = %.2f, want 3.00", record.CumulativeCPA)
	}

	// not a student
	rec = app.request(t, http.MethodGet, "/deans/students/2/academic-results", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("lecturer lookup status = %d, want 404", rec.Code)
	}
}

func TestGradeEntry(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	// enrollment 2 (student 4) has a midterm but no final yet
	rec := app.request(t, http.MethodPost, "/deans/grades", token, grade.NewGrade{
		EnrollmentID: 2, GradeType: grade.TypeFinal, Score: 6.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create grade status = %d, body %s", rec.Code, rec.Body.String())
	}
	var g grade.Grade
	decode(t, rec, &g)
	if g.Weight != grade.FinalWeight {
		t.Errorf("weight = %.1f, want %.1f", g.Weight, grade.FinalWeight)
	}

	// duplicate type for the same enrollment is refused
	rec = app.request(t, http.MethodPost, "/deans/grades", token, grade.NewGrade{
		EnrollmentID: 2, GradeType: grade.TypeFinal, Score: 9.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate grade status = %d, want 400", rec.Code)
	}

	// score out of range is a validation failure
	rec = app.request(t, http.MethodPost, "/deans/grades", token, map[string]interface{}{
		"enrollment_id": 1, "grade_type": "final", "score": 11.0,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("out-of-range status = %d, want 422", rec.Code)
	}

	rec = app.request(t, http.MethodPut, fmt.Sprintf("/deans/grades/%d", g.ID), token, grade.UpdateGrade{
		GradeType: grade.TypeFinal, Score: 6.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update grade status = %d", rec.Code)
	}
	decode(t, rec, &g)
	if g.Score != 6.5 {
		t.Errorf("score = %.1f, want 6.5", g.Score)
	}
}

func TestAuditTrail(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	app.request(t, http.MethodPost, "/deans/departments", token, academic.NewDepartment{Name: "Physics"})

	rec := app.request(t, http.MethodGet, "/deans/audit-logs", token, nil)
	var logs []auditEntry
	decode(t, rec, &logs)
	if len(logs) == 0 {
		t.Fatal("no audit entries")
	}
	// newest first
	last := logs[0]
	if last.Action != "create_department" || last.User != "dean01" {
		t.Errorf("latest entry = %+v", last)
	}
	if !strings.Contains(last.Details, "Physics") {
		t.Errorf("details = %q", last.Details)
	}
}

func TestStatistics(t *testing.T) {
	app := newTestApp(t)
	token := app.deanToken(t)

	rec := app.request(t, http.MethodGet, "/deans/statistics", token, nil)
	var stats struct {
		TotalStudents    int `json:"total_students"`
		TotalLecturers   int `json:"total_lecturers"`
		TotalCourses     int `json:"total_courses"`
		TotalClasses     int `json:"total_classes"`
		TotalDepartments int `json:"total_departments"`
	}
	decode(t, rec, &stats)
	if stats.TotalStudents != 3 || stats.TotalLecturers != 1 ||
		stats.TotalCourses != 2 || stats.TotalClasses != 1 || stats.TotalDepartments != 2 {
		t.Errorf("stats = %+v", stats)
	}

	rec = app.request(t, http.MethodGet, "/deans/statistics/charts", token, nil)
	var charts struct {
		StudentsPerDepartment []chartPoint `json:"students_per_department"`
		EnrollmentPerClass    []chartPoint `json:"enrollment_per_class"`
	}
	decode(t, rec, &charts)
	if len(charts.StudentsPerDepartment) != 2 || len(charts.EnrollmentPerClass) != 1 {
		t.Errorf("charts = %+v", charts)
	}
}
