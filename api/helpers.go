package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

// paginate applies the skip/limit query parameters; limit 0 or absent means
// everything.
func paginate(ctx echo.Context, length int) (lo, hi int) {
	skip, _ := strconv.Atoi(ctx.QueryParam("skip"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if skip < 0 {
		skip = 0
	}
	if skip > length {
		skip = length
	}
	hi = length
	if limit > 0 && skip+limit < length {
		hi = skip + limit
	}
	return skip, hi
}

// actor is the authenticated username, for the audit log.
func actor(ctx echo.Context) string {
	if claims, err := getContextClaims(ctx); err == nil {
		return claims.Subject
	}
	return ""
}
