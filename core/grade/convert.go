package grade

// conversionBand maps a 10-scale score range onto the 4-scale and its letter.
type conversionBand struct {
	Min, Max float64
	Grade4   float64
	Letter   string
}

// The university's official conversion table.
var conversionTable = []conversionBand{
	{8.5, 10.0, 4.0, "A"},
	{8.0, 8.4, 3.5, "B+"},
	{7.0, 7.9, 3.0, "B"},
	{6.5, 6.9, 2.5, "C+"},
	{5.5, 6.4, 2.0, "C"},
	{5.0, 5.4, 1.5, "D+"},
	{4.0, 4.9, 1.0, "D"},
	{0.0, 3.9, 0.0, "F"},
}

// Convert maps a 10-scale score to its 4-scale value and letter grade. Scores
// outside every band (the table has hairline gaps between bands; recorded
// scores carry one decimal) convert to F.
func Convert(score10 float64) (grade4 float64, letter string) {
	for _, band := range conversionTable {
		if band.Min <= score10 && score10 <= band.Max {
			return band.Grade4, band.Letter
		}
	}
	return 0.0, "F"
}

// Passing reports whether a 4-scale grade earns the course's credits.
func Passing(grade4 float64) bool { return grade4 >= 1.0 }
