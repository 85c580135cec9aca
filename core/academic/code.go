package academic

import "strings"

// ClassCode derives the class code from a course code and the dotted semester
// notation: "IT3040" + "2023.1" → "IT304020231". All dots are stripped. Returns
// "" unless both parts are present; the caller decides whether that is an error.
func ClassCode(courseCode, semester string) string {
	if courseCode == "" || semester == "" {
		return ""
	}
	return courseCode + strings.ReplaceAll(semester, ".", "")
}
