package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Session states: Anonymous → Authenticating (OTP pending) → Authenticated,
// back to Anonymous on logout or any 401.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

var (
	ErrNoChallenge = errors.New("no OTP challenge in progress")

	nowFunc = time.Now // mockable
)

// CooldownError rejects an OTP resend attempted before the throttle elapsed.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("resend throttled for another %s", e.Remaining.Round(time.Second))
}

// LoginResult is either a completed login (Role set, token stored) or a pending
// second factor (Challenge set, nothing stored but the challenge).
type LoginResult struct {
	Role      string
	Message   string
	Challenge *Challenge
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	RequiresOTP bool   `json:"requires_otp"`
	Message     string `json:"message"`
	EmailHint   string `json:"email_hint"`
}

// State reports where the session currently stands.
func (c *Client) State() State {
	if c.creds.Token() != "" {
		return StateAuthenticated
	}
	if c.creds.Challenge() != nil {
		return StateAuthenticating
	}
	return StateAnonymous
}

// Login submits credentials (form-encoded, per the contract). Dean accounts get
// an OTP challenge instead of a token; the challenge is persisted so the verify
// step can resume even after a restart.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp tokenResponse
	if err := c.postForm(ctx, "/auth/login", form, &resp); err != nil {
		return nil, err
	}

	if resp.RequiresOTP {
		now := nowFunc()
		ch := &Challenge{
			ID:            uuid.NewString(),
			Username:      username,
			EmailHint:     resp.EmailHint,
			IssuedAt:      now,
			CooldownUntil: now.Add(c.resendCooldown),
		}
		if err := c.creds.SetChallenge(ch); err != nil {
			return nil, errors.Wrap(err, "persisting OTP challenge")
		}
		return &LoginResult{Message: resp.Message, Challenge: ch}, nil
	}

	if err := c.creds.SetToken(resp.AccessToken); err != nil {
		return nil, errors.Wrap(err, "persisting token")
	}
	c.creds.ClearChallenge() //nolint:errcheck
	return &LoginResult{Role: resp.Role}, nil
}

// VerifyOTP completes the pending challenge. On success the token is stored and
// the challenge cleared; on a wrong code the challenge stays so the operator
// can retry or resend.
func (c *Client) VerifyOTP(ctx context.Context, code string) (*LoginResult, error) {
	ch := c.creds.Challenge()
	if ch == nil {
		return nil, ErrNoChallenge
	}

	payload := map[string]string{"username": ch.Username, "otp": code}
	var resp tokenResponse
	if err := c.post(ctx, "/auth/verify-otp", payload, &resp); err != nil {
		return nil, err
	}

	if err := c.creds.SetToken(resp.AccessToken); err != nil {
		return nil, errors.Wrap(err, "persisting token")
	}
	if err := c.creds.ClearChallenge(); err != nil {
		return nil, errors.Wrap(err, "clearing OTP challenge")
	}
	return &LoginResult{Role: resp.Role}, nil
}

// ResendOTP asks the backend for a fresh code. Throttled client-side by the
// cooldown stamped on the challenge; the backend rate-limits independently.
func (c *Client) ResendOTP(ctx context.Context) (*Challenge, error) {
	ch := c.creds.Challenge()
	if ch == nil {
		return nil, ErrNoChallenge
	}
	if now := nowFunc(); now.Before(ch.CooldownUntil) {
		return nil, &CooldownError{Remaining: ch.CooldownUntil.Sub(now)}
	}

	form := url.Values{}
	form.Set("username", ch.Username)
	var resp tokenResponse
	if err := c.postForm(ctx, "/auth/resend-otp", form, &resp); err != nil {
		return nil, err
	}

	ch.CooldownUntil = nowFunc().Add(c.resendCooldown)
	if resp.EmailHint != "" {
		ch.EmailHint = resp.EmailHint
	}
	if err := c.creds.SetChallenge(ch); err != nil {
		return nil, errors.Wrap(err, "persisting OTP challenge")
	}
	return ch, nil
}

// AbandonOTP drops the pending challenge, returning the session to anonymous.
func (c *Client) AbandonOTP() error {
	return c.creds.ClearChallenge()
}

// Logout clears everything persisted.
func (c *Client) Logout() error {
	if err := c.creds.ClearToken(); err != nil {
		return err
	}
	return c.creds.ClearChallenge()
}

// TokenInfo is the decoded (unverified) view of the stored bearer token, enough
// for a whoami display. Verification is the server's job, not the client's.
type TokenInfo struct {
	Username  string
	Role      string
	ExpiresAt time.Time
}

func (c *Client) TokenInfo() (*TokenInfo, error) {
	raw := c.creds.Token()
	if raw == "" {
		return nil, errors.New("not authenticated")
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, "parsing stored token")
	}
	info := &TokenInfo{}
	if sub, ok := claims["sub"].(string); ok {
		info.Username = sub
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return info, nil
}
