package grade

import "testing"

func TestConvert(t *testing.T) {
	tests := []struct {
		score      float64
		wantGrade4 float64
		wantLetter string
	}{
		{10.0, 4.0, "A"},
		{8.5, 4.0, "A"},
		{8.4, 3.5, "B+"},
		{8.0, 3.5, "B+"},
		{7.9, 3.0, "B"},
		{7.0, 3.0, "B"},
		{6.9, 2.5, "C+"},
		{6.5, 2.5, "C+"},
		{6.4, 2.0, "C"},
		{5.5, 2.0, "C"},
		{5.4, 1.5, "D+"},
		{5.0, 1.5, "D+"},
		{4.9, 1.0, "D"},
		{4.0, 1.0, "D"},
		{3.9, 0.0, "F"},
		{0.0, 0.0, "F"},
	}
	for _, tt := range tests {
		grade4, letter := Convert(tt.score)
		if grade4 != tt.wantGrade4 || letter != tt.wantLetter {
			t.Errorf("Convert(%.1f) = (%.1f, %s), want (%.1f, %s)",
				tt.score, grade4, letter, tt.wantGrade4, tt.wantLetter)
		}
	}
}

func TestPassing(t *testing.T) {
	if Passing(0.0) {
		t.Error("Passing(0.0) = true, want false")
	}
	if !Passing(1.0) {
		t.Error("Passing(1.0) = false, want true")
	}
}
