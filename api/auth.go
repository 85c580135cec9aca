package api

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/tvqdev/deanboard/core"
	"github.com/tvqdev/deanboard/core/user"
)

const (
	contextClaimsKey = "claims"
	otpLength        = 6
)

// Claims are the authorization claims carried by an access token.
type Claims struct {
	jwt.StandardClaims
	UserID int    `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

func makeToken(acct *account) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   acct.Username,
			ExpiresAt: now.Add(core.Conf.Server.TokenExpiration).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID: acct.ID,
		Role:   acct.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(core.Conf.Server.SecretKey))
}

func parseToken(raw string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(core.Conf.Server.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// bearerMiddleware authenticates the Authorization header. Anything short of a
// valid, unexpired token is a 401 in the standard envelope.
func bearerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return errUnauthorized
			}
			claims, err := parseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return errUnauthorized
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

func deanMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errUnauthorized
			}
			if claims.Role != user.RoleDean {
				return errDeanRequired
			}
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (*Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return claims, nil
	}
	return nil, errUnauthorized
}

// otpChallenge is one pending dean second factor, kept server-side per username.
type otpChallenge struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

func generateOTP() string {
	const digits = "0123456789"
	buf := make([]byte, otpLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf)
}

func maskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) > 3 {
		local = local[:3]
	}
	return local + "***@" + parts[1]
}

func (s *server) issueOTP(acct *account) string {
	code := generateOTP()
	s.state.mu.Lock()
	s.state.otps[acct.Username] = &otpChallenge{
		Code:      code,
		ExpiresAt: time.Now().Add(core.Conf.Server.OTPExpiration),
	}
	s.state.mu.Unlock()
	if s.opts.OTPSink != nil {
		s.opts.OTPSink(acct.Username, code)
	}
	return code
}

func (s *server) login(ctx echo.Context) error {
	username := ctx.FormValue("username")
	password := ctx.FormValue("password")

	acct := s.state.accountByUsername(username)
	if acct == nil || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)) != nil {
		return errAuthenticationFailed
	}
	if !acct.IsActive {
		return errAccountDeactivated
	}

	if acct.Role == user.RoleDean {
		s.issueOTP(acct)
		minutes := int(core.Conf.Server.OTPExpiration.Minutes())
		return ctx.JSON(http.StatusOK, echo.Map{
			"requires_otp": true,
			"message":      fmt.Sprintf("OTP đã được gửi đến email của bạn. Mã có hiệu lực trong %d phút.", minutes),
			"email_hint":   maskEmail(acct.Email),
		})
	}

	token, err := makeToken(acct)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"role":         acct.Role,
	})
}

func (s *server) verifyOTP(ctx echo.Context) error {
	var payload struct {
		Username string `json:"username"`
		OTP      string `json:"otp"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return badRequest("invalid payload")
	}

	s.state.mu.Lock()
	ch, ok := s.state.otps[payload.Username]
	if !ok {
		s.state.mu.Unlock()
		return badRequest("Phiên xác thực đã hết hạn. Vui lòng thử lại từ đầu.")
	}
	if time.Now().After(ch.ExpiresAt) {
		delete(s.state.otps, payload.Username)
		s.state.mu.Unlock()
		return badRequest("Phiên xác thực đã hết hạn. Vui lòng thử lại từ đầu.")
	}
	ch.Attempts++
	remaining := core.Conf.Server.OTPMaxAttempts - ch.Attempts
	if ch.Code != payload.OTP {
		if remaining <= 0 {
			delete(s.state.otps, payload.Username)
			s.state.mu.Unlock()
			return echo.NewHTTPError(http.StatusUnauthorized, "Đã hết số lần thử. Vui lòng đăng nhập lại.")
		}
		s.state.mu.Unlock()
		return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Mã OTP không đúng. Còn %d lần thử.", remaining))
	}
	delete(s.state.otps, payload.Username)
	s.state.mu.Unlock()

	acct := s.state.accountByUsername(payload.Username)
	if acct == nil {
		return notFound("User")
	}
	token, err := makeToken(acct)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"role":         acct.Role,
	})
}

func (s *server) resendOTP(ctx echo.Context) error {
	username := ctx.FormValue("username")

	acct := s.state.accountByUsername(username)
	if acct == nil {
		return notFound("User")
	}
	if acct.Role != user.RoleDean {
		return badRequest("OTP is only required for Dean users")
	}

	s.issueOTP(acct)
	minutes := int(core.Conf.Server.OTPExpiration.Minutes())
	return ctx.JSON(http.StatusOK, echo.Map{
		"message":    fmt.Sprintf("OTP mới đã được gửi. Mã có hiệu lực trong %d phút.", minutes),
		"email_hint": maskEmail(acct.Email),
	})
}
