package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/report"
)

func (s *server) listReports(ctx echo.Context) error {
	status := ctx.QueryParam("status")

	s.state.mu.RLock()
	out := make([]report.Report, 0, len(s.state.reports))
	for _, r := range s.state.reports {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	s.state.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	lo, hi := paginate(ctx, len(out))
	return ctx.JSON(http.StatusOK, out[lo:hi])
}

func (s *server) getReport(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	r, ok := s.state.reports[id]
	if !ok {
		return notFound("Report")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (s *server) updateReport(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var ur report.UpdateReport
	if err := ctx.Bind(&ur); err != nil {
		return badRequest("invalid payload")
	}
	if err := ur.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	r, ok := s.state.reports[id]
	if !ok {
		return notFound("Report")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	r.Status = ur.Status
	r.DeanResponse = ur.DeanResponse
	r.UpdatedAt = now
	if ur.Status == report.StatusResolved || ur.Status == report.StatusRejected {
		r.ResolvedAt = now
		if acct := s.resolverAccount(ctx); acct != "" {
			r.ResolvedByName = acct
		}
	} else {
		r.ResolvedAt = ""
		r.ResolvedByName = ""
	}
	s.state.audit(actor(ctx), "update_report", auditDetail("report %d status %s", id, r.Status))
	return ctx.JSON(http.StatusOK, r)
}

// resolverAccount is the dean's display name for the resolved_by field. Callers
// must hold at least the read lock.
func (s *server) resolverAccount(ctx echo.Context) string {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return ""
	}
	for _, acct := range s.state.accounts {
		if acct.Username == claims.Subject {
			if acct.FullName != "" {
				return acct.FullName
			}
			return acct.Username
		}
	}
	return claims.Subject
}

func (s *server) reportStats(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	var stats report.Stats
	for _, r := range s.state.reports {
		stats.Total++
		switch r.Status {
		case report.StatusPending:
			stats.Pending++
		case report.StatusProcessing:
			stats.Processing++
		case report.StatusResolved:
			stats.Resolved++
		case report.StatusRejected:
			stats.Rejected++
		}
	}
	return ctx.JSON(http.StatusOK, stats)
}
