package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/tvqdev/deanboard/client"
	"github.com/tvqdev/deanboard/core/academic"
	"github.com/tvqdev/deanboard/core/form"
	"github.com/tvqdev/deanboard/core/grade"
)

func (cli *commandLine) classes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("classes create", flag.ContinueOnError)
	createCourseID := createCmd.Int("course-id", 0, "course id")
	createLecturerID := createCmd.Int("lecturer-id", 0, "lecturer id")
	createSemester := createCmd.String("semester", "", "semester code, e.g. 2024.2")
	createCode := createCmd.String("code", "", "class code override (derived from course and semester when empty)")
	createMax := createCmd.Int("max-students", 0, "enrollment capacity")
	createStartWeek := createCmd.Int("start-week", 0, "first teaching week")
	createEndWeek := createCmd.Int("end-week", 0, "last teaching week")
	createDay := createCmd.Int("day", 0, "day of week, 2=Monday .. 8=Sunday")
	createStartPeriod := createCmd.Int("start-period", 0, "first period, 1-12")
	createEndPeriod := createCmd.Int("end-period", 0, "last period, 1-12")
	createRoom := createCmd.String("room", "", "room")

	updateCmd := flag.NewFlagSet("classes update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "class id")
	updateLecturerID := updateCmd.Int("lecturer-id", 0, "lecturer id")
	updateMax := updateCmd.Int("max-students", 0, "enrollment capacity")
	updateRoom := updateCmd.String("room", "", "room")

	idCmd := func(name string) (*flag.FlagSet, *int) {
		cmd := flag.NewFlagSet("classes "+name, flag.ContinueOnError)
		return cmd, cmd.Int("id", 0, "class id")
	}
	showCmd, showID := idCmd("show")
	deleteCmd, deleteID := idCmd("delete")
	studentsCmd, studentsID := idCmd("students")
	gradesCmd, gradesID := idCmd("grades")

	enrollCmd := flag.NewFlagSet("classes enroll", flag.ContinueOnError)
	enrollID := enrollCmd.Int("id", 0, "class id")
	enrollIDs := enrollCmd.String("student-ids", "", "comma-separated student ids; empty lists the students not yet enrolled")

	exportCmd := flag.NewFlagSet("classes export", flag.ContinueOnError)
	exportID := exportCmd.Int("id", 0, "class id")
	exportOut := exportCmd.String("o", "", "output .xlsx path (defaults to grades-CLASSCODE.xlsx)")

	switch args[0] {
	case "list":
		return cli.listClasses(ctx)
	case "show":
		if err := showCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *showID == 0 {
			showCmd.Usage()
			return errHelp
		}
		return cli.showClass(ctx, *showID)
	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *createCourseID == 0 || *createSemester == "" || *createMax == 0 {
			createCmd.Usage()
			return errHelp
		}
		return cli.createClass(ctx, classCreateArgs{
			courseID: *createCourseID, lecturerID: *createLecturerID,
			semester: *createSemester, code: *createCode, maxStudents: *createMax,
			startWeek: *createStartWeek, endWeek: *createEndWeek, day: *createDay,
			startPeriod: *createStartPeriod, endPeriod: *createEndPeriod, room: *createRoom,
		})
	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		return cli.updateClass(ctx, *updateID, *updateLecturerID, *updateMax, *updateRoom)
	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		ok, err := cli.confirm(fmt.Sprintf("class %d", *deleteID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled.")
			return nil
		}
		if err := cli.client.DeleteClass(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted class %d.\n", *deleteID)
		return nil
	case "students":
		if err := studentsCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *studentsID == 0 {
			studentsCmd.Usage()
			return errHelp
		}
		return cli.listClassStudents(ctx, *studentsID)
	case "enroll":
		if err := enrollCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *enrollID == 0 {
			enrollCmd.Usage()
			return errHelp
		}
		return cli.enroll(ctx, *enrollID, *enrollIDs)
	case "grades":
		if err := gradesCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *gradesID == 0 {
			gradesCmd.Usage()
			return errHelp
		}
		return cli.gradeGrid(ctx, *gradesID)
	case "export":
		if err := exportCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *exportID == 0 {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportGrades(ctx, *exportID, *exportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listClasses(ctx context.Context) error {
	cli.loading("classes")
	data, err := cli.client.FetchClassScreen(ctx)
	if err != nil {
		return err
	}

	courseNames := make(map[int]string, len(data.Courses))
	for _, c := range data.Courses {
		courseNames[c.ID] = c.Name
	}
	lecturerNames := make(map[int]string, len(data.Lecturers))
	for _, l := range data.Lecturers {
		lecturerNames[l.ID] = l.FullName
	}

	rows := make([][]string, 0, len(data.Classes))
	for _, c := range data.Classes {
		rows = append(rows, []string{
			itoa(c.ID), c.Code, dash(courseNames[c.CourseID]), dash(lecturerNames[c.LecturerID]),
			c.Semester, fmt.Sprintf("%d/%d", c.EnrolledCount, c.MaxStudents),
		})
	}
	cli.table([]string{"ID", "CODE", "COURSE", "LECTURER", "SEMESTER", "ENROLLED"}, rows, "No classes yet.")
	return nil
}

func (cli *commandLine) showClass(ctx context.Context, id int) error {
	cls, err := cli.client.Class(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Class %s (id %d)\n", cls.Code, cls.ID)
	fmt.Fprintf(cli.out, "  Semester:  %s\n", cls.Semester)
	fmt.Fprintf(cli.out, "  Enrolled:  %d/%d\n", cls.EnrolledCount, cls.MaxStudents)
	if cls.DayOfWeek != 0 {
		fmt.Fprintf(cli.out, "  Schedule:  %s, periods %d-%d, weeks %d-%d\n",
			dayName(cls.DayOfWeek), cls.StartPeriod, cls.EndPeriod, cls.StartWeek, cls.EndWeek)
	}
	if cls.Room != "" {
		fmt.Fprintf(cli.out, "  Room:      %s\n", cls.Room)
	}
	return nil
}

// dayName translates the 2=Monday .. 8=Sunday convention.
func dayName(day int) string {
	names := map[int]string{
		2: "Monday", 3: "Tuesday", 4: "Wednesday", 5: "Thursday",
		6: "Friday", 7: "Saturday", 8: "Sunday",
	}
	if n, ok := names[day]; ok {
		return n
	}
	return fmt.Sprintf("day %d", day)
}

type classCreateArgs struct {
	courseID, lecturerID    int
	semester, code          string
	maxStudents             int
	startWeek, endWeek, day int
	startPeriod, endPeriod  int
	room                    string
}

// createClass drives the class form: selecting the course and semester derives
// the class code, an explicit -code flag overrides it.
func (cli *commandLine) createClass(ctx context.Context, a classCreateArgs) error {
	courses, err := cli.client.Courses(ctx)
	if err != nil {
		return err
	}
	var courseCode string
	for _, c := range courses {
		if c.ID == a.courseID {
			courseCode = c.Code
			break
		}
	}
	if courseCode == "" {
		return fmt.Errorf("course %d not found", a.courseID)
	}

	f := form.NewClassForm()
	f = f.Apply(form.SetCourse{ID: a.courseID, Code: courseCode})
	f = f.Apply(form.SetSemester{Value: a.semester})
	if a.lecturerID != 0 {
		f = f.Apply(form.SetLecturer{ID: a.lecturerID})
	}
	if a.code != "" {
		f = f.Apply(form.SetCode{Value: a.code})
	}

	cls, err := cli.client.CreateClass(ctx, academic.NewClass{
		Code: f.Code, CourseID: f.CourseID, LecturerID: f.LecturerID,
		Semester: f.Semester, MaxStudents: a.maxStudents,
		StartWeek: a.startWeek, EndWeek: a.endWeek, DayOfWeek: a.day,
		StartPeriod: a.startPeriod, EndPeriod: a.endPeriod, Room: a.room,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Created class %s (id %d).\n", cls.Code, cls.ID)
	return nil
}

// updateClass edits in place: current values are loaded first and the code is
// never re-derived, matching the edit form's frozen-code rule.
func (cli *commandLine) updateClass(ctx context.Context, id, lecturerID, maxStudents int, room string) error {
	cls, err := cli.client.Class(ctx, id)
	if err != nil {
		return err
	}
	nc := academic.NewClass{
		Code: cls.Code, CourseID: cls.CourseID, LecturerID: cls.LecturerID,
		Semester: cls.Semester, MaxStudents: cls.MaxStudents,
		StartWeek: cls.StartWeek, EndWeek: cls.EndWeek, DayOfWeek: cls.DayOfWeek,
		StartPeriod: cls.StartPeriod, EndPeriod: cls.EndPeriod, Room: cls.Room,
	}
	if lecturerID != 0 {
		nc.LecturerID = lecturerID
	}
	if maxStudents != 0 {
		nc.MaxStudents = maxStudents
	}
	if room != "" {
		nc.Room = room
	}
	updated, err := cli.client.UpdateClass(ctx, id, nc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Updated class %s (id %d).\n", updated.Code, updated.ID)
	return nil
}

func (cli *commandLine) listClassStudents(ctx context.Context, id int) error {
	cli.loading("class roster")
	students, err := cli.client.ClassStudents(ctx, id)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{itoa(s.ID), s.StudentCode, s.FullName, s.Email})
	}
	cli.table([]string{"ID", "CODE", "NAME", "EMAIL"}, rows, "No students enrolled in this class.")
	return nil
}

// enroll adds students in bulk. Without -student-ids it shows the complement
// set: every student not yet in the class, which is what the pick list offers.
func (cli *commandLine) enroll(ctx context.Context, classID int, rawIDs string) error {
	if rawIDs == "" {
		enrolled, err := cli.client.ClassStudents(ctx, classID)
		if err != nil {
			return err
		}
		all, err := cli.client.Students(ctx, client.ListOptions{})
		if err != nil {
			return err
		}
		in := make(map[int]bool, len(enrolled))
		for _, s := range enrolled {
			in[s.ID] = true
		}
		rows := make([][]string, 0)
		for _, s := range all {
			if !in[s.ID] {
				rows = append(rows, []string{itoa(s.ID), s.StudentCode, s.FullName})
			}
		}
		cli.table([]string{"ID", "CODE", "NAME"}, rows, "Every student is already enrolled.")
		fmt.Fprintln(cli.out, "Re-run with -student-ids ID[,ID...] to enroll.")
		return nil
	}

	var ids []int
	for _, part := range strings.Split(rawIDs, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid student id %q", part)
		}
		ids = append(ids, id)
	}
	result, err := cli.client.BulkEnroll(ctx, classID, ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Enrolled %d students.\n", result.Added)
	return nil
}

// gradeGrid renders the class grade sheet with the weighted total per row; a
// missing midterm or final leaves the total absent rather than zero.
func (cli *commandLine) gradeGrid(ctx context.Context, classID int) error {
	cli.loading("grades")
	sheet, err := cli.client.ClassGrades(ctx, classID)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(sheet))
	for _, sg := range sheet {
		midterm, final := sg.Scores()
		rows = append(rows, []string{
			itoa(sg.EnrollmentID), sg.StudentCode, sg.FullName,
			score(midterm), score(final), total(midterm, final),
		})
	}
	cli.table([]string{"ENROLLMENT", "CODE", "NAME", "MIDTERM", "FINAL", "TOTAL"}, rows,
		"No students enrolled in this class.")
	return nil
}

func score(s *float64) string {
	if s == nil {
		return "—"
	}
	return strconv.FormatFloat(*s, 'f', 1, 64)
}

func total(midterm, final *float64) string {
	t, ok := grade.WeightedTotal(midterm, final)
	if !ok {
		return "—"
	}
	return strconv.FormatFloat(t, 'f', 1, 64)
}
