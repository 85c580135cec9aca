// Package api is an in-memory reference implementation of the university LMS
// backend: the same routes, envelopes and business rules the real deployment
// exposes, runnable as a stub for local development and as the fixture server
// behind the integration tests.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/tvqdev/deanboard/core"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		Logger         core.Logger
		// OTPSink receives every OTP code the server issues, along with the
		// target username. The stub prints codes to the console; tests capture
		// them. Nil discards.
		OTPSink func(username, code string)
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts  *Options
		app   *echo.Echo
		state *state
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	s := &server{
		opts:  opts,
		app:   echo.New(),
		state: newState(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger)
	s.app.HideBanner = true
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	auth := s.app.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/verify-otp", s.verifyOTP)
	auth.POST("/resend-otp", s.resendOTP)

	deans := s.app.Group("/deans", bearerMiddleware(), deanMiddleware())

	deans.GET("/departments", s.listDepartments)
	deans.POST("/departments", s.createDepartment)
	deans.PUT("/departments/:id", s.updateDepartment)
	deans.DELETE("/departments/:id", s.deleteDepartment)

	deans.GET("/courses", s.listCourses)
	deans.POST("/courses", s.createCourse)
	deans.PUT("/courses/:id", s.updateCourse)
	deans.DELETE("/courses/:id", s.deleteCourse)

	deans.GET("/classes", s.listClasses)
	deans.GET("/classes/:id", s.getClass)
	deans.POST("/classes", s.createClass)
	deans.PUT("/classes/:id", s.updateClass)
	deans.DELETE("/classes/:id", s.deleteClass)
	deans.GET("/classes/:id/students", s.listClassStudents)
	deans.GET("/classes/:id/grades", s.listClassGrades)
	deans.POST("/classes/:id/enrollments/bulk", s.bulkEnroll)

	deans.GET("/lecturers", s.listLecturers)
	deans.POST("/lecturers", s.createLecturer)
	deans.PUT("/lecturers/:id", s.updateLecturer)
	deans.DELETE("/lecturers/:id", s.deleteLecturer)

	deans.GET("/students", s.listStudents)
	deans.POST("/students", s.createStudent)
	deans.PUT("/students/:id", s.updateStudent)
	deans.DELETE("/students/:id", s.deleteStudent)
	deans.GET("/students/:id/academic-results", s.academicResults)

	deans.POST("/grades", s.createGrade)
	deans.PUT("/grades/:id", s.updateGrade)

	deans.GET("/academic-years", s.listAcademicYears)
	deans.POST("/academic-years", s.createAcademicYear)
	deans.PUT("/academic-years/:id", s.updateAcademicYear)
	deans.DELETE("/academic-years/:id", s.deleteAcademicYear)

	deans.GET("/semesters", s.listSemesters)
	deans.POST("/semesters", s.createSemester)
	deans.PUT("/semesters/:id", s.updateSemester)
	deans.DELETE("/semesters/:id", s.deleteSemester)
	deans.POST("/semesters/:id/activate", s.activateSemester)

	deans.GET("/tuition-settings", s.getTuitionSettings)
	deans.POST("/tuition-settings", s.updateTuitionSettings)
	deans.GET("/tuitions", s.listTuitions)
	deans.PUT("/tuitions/:id", s.updateTuition)

	// reports live outside the /deans prefix but carry the same guard
	reports := s.app.Group("/reports", bearerMiddleware(), deanMiddleware())
	reports.GET("/all", s.listReports)
	reports.GET("/stats", s.reportStats)
	reports.GET("/:id", s.getReport)
	reports.PUT("/:id", s.updateReport)

	deans.GET("/statistics", s.statistics)
	deans.GET("/statistics/charts", s.statisticsCharts)
	deans.GET("/audit-logs", s.listAuditLogs)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"message": "University LMS API"})
}
