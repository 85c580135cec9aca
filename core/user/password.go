package user

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/tvqdev/deanboard/core"
)

const pwdMaxSimilarity = 0.7

var errPasswordTooSimilar = errors.New("password too similar to account details")

// checkPasswordSimilarity rejects passwords that are mostly the account's own
// name, username or email. Length and charset rules live on the validate tags;
// this catches "nguyenvanduc1" style passwords they cannot.
func checkPasswordSimilarity(pwd, fullName, username, email string) error {
	ratio := func(attr string) float64 {
		if attr == "" {
			return 0
		}
		return difflib.NewMatcher(
			strings.Split(strings.ToLower(pwd), ""),
			strings.Split(strings.ToLower(attr), ""),
		).QuickRatio()
	}
	if ratio(fullName) >= pwdMaxSimilarity ||
		ratio(username) >= pwdMaxSimilarity ||
		ratio(email) >= pwdMaxSimilarity {
		return core.NewValidationError(errPasswordTooSimilar,
			core.FieldError{Field: "password", Error: errPasswordTooSimilar.Error()})
	}
	return nil
}
