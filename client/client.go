// Package client is the typed consumer of the university LMS REST API. A Client
// is constructed once with its configuration injected (base URL, credential
// store, auth-failure callback) and passed by reference to every screen that
// needs it; nothing here is ambient or global.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tvqdev/deanboard/core"
)

type Options struct {
	// BaseURL of the collaborator API, e.g. "https://lms.example.edu".
	BaseURL string
	// BypassHeaderName/Value is the fixed header disabling the tunnel
	// intermediary's warning page; attached to every request.
	BypassHeaderName  string
	BypassHeaderValue string
	// Creds persists the bearer token and any pending OTP challenge.
	Creds CredentialStore
	// OnAuthFailure runs (at most once per stored token) when the API answers
	// 401: the screen layer uses it to force the operator back to login.
	OnAuthFailure func()
	// OTPResendCooldown throttles resend requests; zero means the configured
	// default. This is a UI throttle only; the backend rate-limits for real.
	OTPResendCooldown time.Duration

	HTTPClient *http.Client
	Logger     core.Logger
}

type Client struct {
	base           string
	bypassName     string
	bypassValue    string
	http           *http.Client
	creds          CredentialStore
	onAuthFailure  func()
	resendCooldown time.Duration
	log            core.Logger
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("client: BaseURL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, errors.Wrap(err, "client: invalid BaseURL")
	}
	creds := opts.Creds
	if creds == nil {
		creds = NewMemoryStore()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: core.Conf.API.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	bypassName := opts.BypassHeaderName
	if bypassName == "" {
		bypassName = core.Conf.API.BypassHeaderName
	}
	bypassValue := opts.BypassHeaderValue
	if bypassValue == "" {
		bypassValue = core.Conf.API.BypassHeaderValue
	}
	cooldown := opts.OTPResendCooldown
	if cooldown == 0 {
		cooldown = core.Conf.Auth.OTPResendCooldown
	}
	return &Client{
		base:           strings.TrimRight(opts.BaseURL, "/"),
		bypassName:     bypassName,
		bypassValue:    bypassValue,
		http:           httpClient,
		creds:          creds,
		onAuthFailure:  opts.OnAuthFailure,
		resendCooldown: cooldown,
		log:            logger,
	}, nil
}

// Creds exposes the credential store, mainly so CLIs sharing the store can
// inspect session state.
func (c *Client) Creds() CredentialStore { return c.creds }

// ListOptions is the skip/limit pagination pair supported by the list endpoints.
type ListOptions struct {
	Skip  int
	Limit int
}

func (lo ListOptions) query() url.Values {
	v := make(url.Values)
	if lo.Skip > 0 {
		v.Set("skip", strconv.Itoa(lo.Skip))
	}
	if lo.Limit > 0 {
		v.Set("limit", strconv.Itoa(lo.Limit))
	}
	return v
}

// do issues one request and settles it: headers attached, body decoded, errors
// mapped. It never retries and never blocks beyond the HTTP client's timeout.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "client: building request")
	}

	req.Header.Set(c.bypassName, c.bypassValue)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(fmt.Sprintf("%s %s", method, path))

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "client: %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession()
		return parseAPIError(resp)
	}
	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "client: decoding %s %s response", method, path)
	}
	return nil
}

// expireSession implements the single centralized 401 policy: clear the stored
// token and notify the screen layer. The callback fires only when a token was
// actually cleared, so an expired session triggers exactly one forced login and
// repeated 401s (or a failed login attempt, which stores nothing) cannot loop.
func (c *Client) expireSession() {
	if c.creds.Token() == "" {
		return
	}
	if err := c.creds.ClearToken(); err != nil {
		c.log.Error("clearing expired token", err)
	}
	c.log.Info("session expired")
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, body, "application/json", out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, body, "application/json", out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", out)
}

func encodeJSON(in interface{}) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return nil, errors.Wrap(err, "client: encoding request body")
	}
	return &buf, nil
}
