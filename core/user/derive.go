package user

import (
	"strings"

	"github.com/tvqdev/deanboard/core"
)

// DeriveUsername builds the login name for a new account from the person's full
// name: diacritics folded, lowercased, whitespace removed, then the optional
// suffix appended (for students: the tail of their student code). A blank name
// yields a blank username regardless of suffix; required-field validation is the
// form layer's job.
func DeriveUsername(fullName, suffix string) string {
	name := strings.Join(strings.Fields(strings.ToLower(core.Fold(fullName))), "")
	if name == "" {
		return ""
	}
	return name + suffix
}

// DeriveEmail joins a derived username with the role's mail domain. An empty
// username stays empty, never a bare "@domain".
func DeriveEmail(username, domain string) string {
	if username == "" {
		return ""
	}
	return username + "@" + domain
}

// StudentCodeSuffix returns the last 4 characters of a student code, or the whole
// code when shorter.
func StudentCodeSuffix(code string) string {
	r := []rune(code)
	if len(r) > 4 {
		r = r[len(r)-4:]
	}
	return string(r)
}
