package grade

import "testing"

func fPtr(f float64) *float64 { return &f }

func TestWeightedTotal(t *testing.T) {
	tests := []struct {
		name    string
		midterm *float64
		final   *float64
		want    float64
		wantOK  bool
	}{
		{name: "both present", midterm: fPtr(8.0), final: fPtr(6.0), want: 6.6, wantOK: true}, // 2.4+4.2
		{name: "rounding up", midterm: fPtr(7.5), final: fPtr(8.3), want: 8.1, wantOK: true}, // 2.25+5.81=8.06
		{name: "perfect", midterm: fPtr(10), final: fPtr(10), want: 10, wantOK: true},
		{name: "zeroes", midterm: fPtr(0), final: fPtr(0), want: 0, wantOK: true},
		{name: "missing midterm", midterm: nil, final: fPtr(7.0), wantOK: false},
		{name: "missing final", midterm: fPtr(7.0), final: nil, wantOK: false},
		{name: "both missing", midterm: nil, final: nil, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeightedTotal(tt.midterm, tt.final)
			if ok != tt.wantOK {
				t.Fatalf("WeightedTotal() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("WeightedTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScores(t *testing.T) {
	sg := StudentGrades{
		EnrollmentID: 1,
		Grades: []Grade{
			{ID: 1, EnrollmentID: 1, GradeType: TypeMidterm, Score: 8.0, Weight: MidtermWeight},
		},
	}
	mid, fin := sg.Scores()
	if mid == nil || *mid != 8.0 {
		t.Errorf("Scores() midterm = %v, want 8.0", mid)
	}
	if fin != nil {
		t.Errorf("Scores() final = %v, want nil", *fin)
	}
	if _, ok := WeightedTotal(mid, fin); ok {
		t.Error("WeightedTotal() with missing final must be absent")
	}
}

func TestWeightForType(t *testing.T) {
	if w := WeightForType(TypeMidterm); w != 0.3 {
		t.Errorf("WeightForType(midterm) = %v", w)
	}
	if w := WeightForType(TypeFinal); w != 0.7 {
		t.Errorf("WeightForType(final) = %v", w)
	}
}

func TestNewGradeValidate(t *testing.T) {
	tests := []struct {
		name       string
		ng         NewGrade
		wantErr    bool
		wantWeight float64
	}{
		{name: "midterm", ng: NewGrade{EnrollmentID: 1, GradeType: TypeMidterm, Score: 8}, wantWeight: 0.3},
		{name: "final", ng: NewGrade{EnrollmentID: 1, GradeType: TypeFinal, Score: 6.5}, wantWeight: 0.7},
		{name: "caller weight ignored", ng: NewGrade{EnrollmentID: 1, GradeType: TypeFinal, Score: 6.5, Weight: 0.5}, wantWeight: 0.7},
		{name: "score too high", ng: NewGrade{EnrollmentID: 1, GradeType: TypeFinal, Score: 10.5}, wantErr: true},
		{name: "score negative", ng: NewGrade{EnrollmentID: 1, GradeType: TypeFinal, Score: -1}, wantErr: true},
		{name: "bad type", ng: NewGrade{EnrollmentID: 1, GradeType: "assignment", Score: 5}, wantErr: true},
		{name: "no enrollment", ng: NewGrade{GradeType: TypeFinal, Score: 5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ng.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.ng.Weight != tt.wantWeight {
				t.Errorf("Validate() weight = %v, want %v", tt.ng.Weight, tt.wantWeight)
			}
		})
	}
}
