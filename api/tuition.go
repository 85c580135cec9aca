package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/tvqdev/deanboard/core/tuition"
)

func (s *server) getTuitionSettings(ctx echo.Context) error {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return ctx.JSON(http.StatusOK, s.state.settings)
}

func (s *server) updateTuitionSettings(ctx echo.Context) error {
	var settings tuition.Settings
	if err := ctx.Bind(&settings); err != nil {
		return badRequest("invalid payload")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.settings = settings
	s.state.audit(actor(ctx), "update_tuition_settings", auditDetail("price per credit %d", settings.PricePerCredit))
	return ctx.JSON(http.StatusOK, s.state.settings)
}

func (s *server) listTuitions(ctx echo.Context) error {
	s.state.mu.RLock()
	out := make([]tuition.Tuition, 0, len(s.state.tuitions))
	for _, t := range s.state.tuitions {
		out = append(out, *t)
	}
	s.state.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	lo, hi := paginate(ctx, len(out))
	return ctx.JSON(http.StatusOK, out[lo:hi])
}

// updateTuition records a payment; the status is always recomputed from the new
// paid amount, never taken from the caller.
func (s *server) updateTuition(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var up tuition.UpdatePayment
	if err := ctx.Bind(&up); err != nil {
		return badRequest("invalid payload")
	}
	if err := up.Validate(); err != nil {
		return err
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	t, ok := s.state.tuitions[id]
	if !ok {
		return notFound("Tuition")
	}
	t.PaidAmount = up.PaidAmount
	t.Status = tuition.StatusFor(t.PaidAmount, t.TotalAmount)
	s.state.audit(actor(ctx), "update_tuition", auditDetail("tuition %d paid %d (%s)", id, t.PaidAmount, t.Status))
	return ctx.JSON(http.StatusOK, t)
}
