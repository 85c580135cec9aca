package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestLoginOTPFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("login Content-Type = %q", ct)
		}
		if got := r.PostFormValue("username"); got != "dean01" {
			t.Errorf("username = %q, want dean01", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"requires_otp": true,
			"message":      "OTP sent to your email",
			"email_hint":   "d***1@hust.edu.vn",
		})
	})
	mux.HandleFunc("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload["username"] != "dean01" {
			t.Errorf("verify username = %q, want dean01", payload["username"])
		}
		if payload["otp"] != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid OTP"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"access_token": "tok-dean",
			"token_type":   "bearer",
			"role":         "dean",
		})
	})
	cl, _ := newTestClient(t, mux)

	if got := cl.State(); got != StateAnonymous {
		t.Fatalf("State() = %v, want anonymous", got)
	}

	res, err := cl.Login(context.Background(), "dean01", "pwd")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Challenge == nil {
		t.Fatal("Login() challenge = nil, want pending OTP")
	}
	if res.Challenge.EmailHint != "d***1@hust.edu.vn" {
		t.Errorf("EmailHint = %q", res.Challenge.EmailHint)
	}
	if got := cl.State(); got != StateAuthenticating {
		t.Fatalf("State() = %v, want authenticating", got)
	}
	if tok := cl.Creds().Token(); tok != "" {
		t.Errorf("token stored before OTP verification: %q", tok)
	}

	// wrong code keeps the challenge pending
	if _, err := cl.VerifyOTP(context.Background(), "000000"); err == nil {
		t.Fatal("VerifyOTP(wrong) error = nil")
	}
	if got := cl.State(); got != StateAuthenticating {
		t.Fatalf("State() after wrong code = %v, want authenticating", got)
	}

	res, err = cl.VerifyOTP(context.Background(), "123456")
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if res.Role != "dean" {
		t.Errorf("Role = %q, want dean", res.Role)
	}
	if got := cl.State(); got != StateAuthenticated {
		t.Fatalf("State() = %v, want authenticated", got)
	}
	if tok := cl.Creds().Token(); tok != "tok-dean" {
		t.Errorf("token = %q, want tok-dean", tok)
	}
	if ch := cl.Creds().Challenge(); ch != nil {
		t.Errorf("challenge still pending after verification: %+v", ch)
	}
}

func TestLoginDirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"access_token": "tok-lect",
			"token_type":   "bearer",
			"role":         "lecturer",
		})
	})
	cl, _ := newTestClient(t, mux)

	res, err := cl.Login(context.Background(), "lect01", "pwd")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Role != "lecturer" {
		t.Errorf("Role = %q, want lecturer", res.Role)
	}
	if res.Challenge != nil {
		t.Errorf("Challenge = %+v, want nil", res.Challenge)
	}
	if got := cl.State(); got != StateAuthenticated {
		t.Fatalf("State() = %v, want authenticated", got)
	}
}

func TestResendOTPCooldown(t *testing.T) {
	resends := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"requires_otp": true,
			"email_hint":   "d***1@hust.edu.vn",
		})
	})
	mux.HandleFunc("/auth/resend-otp", func(w http.ResponseWriter, r *http.Request) {
		resends++
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostFormValue("username"); got != "dean01" {
			t.Errorf("resend username = %q, want dean01", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"requires_otp": true,
			"message":      "OTP resent",
		})
	})
	cl, _ := newTestClient(t, mux)
	cl.resendCooldown = 60 * time.Second

	start := time.Now()
	nowFunc = func() time.Time { return start }
	defer func() { nowFunc = time.Now }()

	if _, err := cl.Login(context.Background(), "dean01", "pwd"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// inside the cooldown window the resend is rejected locally
	nowFunc = func() time.Time { return start.Add(30 * time.Second) }
	_, err := cl.ResendOTP(context.Background())
	cdErr, ok := err.(*CooldownError)
	if !ok {
		t.Fatalf("ResendOTP() error = %v, want *CooldownError", err)
	}
	if cdErr.Remaining != 30*time.Second {
		t.Errorf("Remaining = %s, want 30s", cdErr.Remaining)
	}
	if resends != 0 {
		t.Errorf("backend hit %d times during cooldown, want 0", resends)
	}

	// past the window it goes through and re-arms the cooldown
	nowFunc = func() time.Time { return start.Add(61 * time.Second) }
	ch, err := cl.ResendOTP(context.Background())
	if err != nil {
		t.Fatalf("ResendOTP() error = %v", err)
	}
	if resends != 1 {
		t.Errorf("backend hit %d times, want 1", resends)
	}
	if want := start.Add(61*time.Second + 60*time.Second); !ch.CooldownUntil.Equal(want) {
		t.Errorf("CooldownUntil = %s, want %s", ch.CooldownUntil, want)
	}
}

func TestResendOTPNoChallenge(t *testing.T) {
	cl, _ := newTestClient(t, http.NewServeMux())
	if _, err := cl.ResendOTP(context.Background()); err != ErrNoChallenge {
		t.Errorf("ResendOTP() error = %v, want ErrNoChallenge", err)
	}
	if _, err := cl.VerifyOTP(context.Background(), "123456"); err != ErrNoChallenge {
		t.Errorf("VerifyOTP() error = %v, want ErrNoChallenge", err)
	}
}

func TestAbandonAndLogout(t *testing.T) {
	cl, _ := newTestClient(t, http.NewServeMux())

	if err := cl.Creds().SetChallenge(&Challenge{ID: "x", Username: "dean01"}); err != nil {
		t.Fatal(err)
	}
	if err := cl.AbandonOTP(); err != nil {
		t.Fatalf("AbandonOTP() error = %v", err)
	}
	if got := cl.State(); got != StateAnonymous {
		t.Errorf("State() after abandon = %v, want anonymous", got)
	}

	if err := cl.Creds().SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := cl.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if got := cl.State(); got != StateAnonymous {
		t.Errorf("State() after logout = %v, want anonymous", got)
	}
}
