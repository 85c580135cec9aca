package grade

import "math"

// WeightedTotal previews the course total from the midterm and final scores
// (midterm×0.3 + final×0.7, rounded to 1 decimal). The second return is false
// when either score is missing: an absent total renders as a placeholder, never as 0.
// The server's computation stays authoritative; this only mirrors it.
func WeightedTotal(midterm, final *float64) (float64, bool) {
	if midterm == nil || final == nil {
		return 0, false
	}
	total := *midterm*MidtermWeight + *final*FinalWeight
	return math.Round(total*10) / 10, true
}
