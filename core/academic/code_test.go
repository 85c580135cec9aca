package academic

import "testing"

func TestClassCode(t *testing.T) {
	tests := []struct {
		name       string
		courseCode string
		semester   string
		want       string
	}{
		{name: "dotted semester", courseCode: "IT3040", semester: "2023.1", want: "IT304020231"},
		{name: "second semester", courseCode: "IT3040", semester: "2024.2", want: "IT304020242"},
		{name: "already stripped", courseCode: "MI1010", semester: "20231", want: "MI101020231"},
		{name: "missing course", courseCode: "", semester: "2023.1", want: ""},
		{name: "missing semester", courseCode: "IT3040", semester: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassCode(tt.courseCode, tt.semester); got != tt.want {
				t.Errorf("ClassCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClassValidate(t *testing.T) {
	valid := func() NewClass {
		return NewClass{
			Code:        "IT304020231",
			CourseID:    5,
			LecturerID:  2,
			Semester:    "2023.1",
			MaxStudents: 50,
			StartWeek:   1,
			EndWeek:     16,
			DayOfWeek:   2,
			StartPeriod: 1,
			EndPeriod:   3,
		}
	}
	tests := []struct {
		name    string
		mut     func(*NewClass)
		wantErr bool
	}{
		{name: "valid", mut: func(nc *NewClass) {}},
		{name: "no schedule is fine", mut: func(nc *NewClass) {
			nc.StartWeek, nc.EndWeek, nc.DayOfWeek, nc.StartPeriod, nc.EndPeriod = 0, 0, 0, 0, 0
		}},
		{name: "bad semester format", mut: func(nc *NewClass) { nc.Semester = "20231" }, wantErr: true},
		{name: "zero capacity", mut: func(nc *NewClass) { nc.MaxStudents = 0 }, wantErr: true},
		{name: "day out of range", mut: func(nc *NewClass) { nc.DayOfWeek = 9 }, wantErr: true},
		{name: "end before start period", mut: func(nc *NewClass) { nc.StartPeriod = 5; nc.EndPeriod = 2 }, wantErr: true},
		{name: "missing course", mut: func(nc *NewClass) { nc.CourseID = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nc := valid()
			tt.mut(&nc)
			if err := nc.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
