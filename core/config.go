package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

// Config holds all knobs for the toolkit: where the collaborator API lives, how the
// client authenticates and where it keeps its credentials, plus the reference server
// settings used by deanstub and the test suite.
type Config struct {
	Debug    bool
	TestMode bool
	AppName  string
	Env      string

	API struct {
		BaseURL           string
		Timeout           time.Duration
		BypassHeaderName  string
		BypassHeaderValue string
	}

	Auth struct {
		CredentialsFile    string
		StaffEmailDomain   string
		StudentEmailDomain string
		OTPResendCooldown  time.Duration
	}

	Server struct {
		Addr            string
		SecretKey       string
		TokenExpiration time.Duration
		OTPExpiration   time.Duration
		OTPMaxAttempts  int
	}
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Deanboard")
	v.SetDefault("apiBaseUrl", "http://localhost:8000")
	v.SetDefault("apiTimeout", 60*time.Second)
	v.SetDefault("bypassHeaderName", "ngrok-skip-browser-warning")
	v.SetDefault("bypassHeaderValue", "true")
	v.SetDefault("credentialsFile", defaultCredentialsFile())
	v.SetDefault("staffEmailDomain", "hust.edu.vn")
	v.SetDefault("studentEmailDomain", "student.university.edu.vn")
	v.SetDefault("otpResendCooldown", 60*time.Second)
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("secretKey", "q7u$2mz&wdaxh9(h!p)#*c5(#yg1h^$cegm8emy")
	v.SetDefault("tokenExpirationDelta", 4*time.Hour)
	v.SetDefault("otpExpirationDelta", 5*time.Minute)
	v.SetDefault("otpMaxAttempts", 10)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:    v.GetBool("debug"),
		TestMode: testMode,
		AppName:  v.GetString("appName"),
		Env:      env,
	}
	Conf.API.BaseURL = v.GetString("apiBaseUrl")
	Conf.API.Timeout = v.GetDuration("apiTimeout")
	Conf.API.BypassHeaderName = v.GetString("bypassHeaderName")
	Conf.API.BypassHeaderValue = v.GetString("bypassHeaderValue")
	Conf.Auth.CredentialsFile = v.GetString("credentialsFile")
	Conf.Auth.StaffEmailDomain = v.GetString("staffEmailDomain")
	Conf.Auth.StudentEmailDomain = v.GetString("studentEmailDomain")
	Conf.Auth.OTPResendCooldown = v.GetDuration("otpResendCooldown")
	Conf.Server.Addr = v.GetString("serverAddr")
	Conf.Server.SecretKey = v.GetString("secretKey")
	Conf.Server.TokenExpiration = v.GetDuration("tokenExpirationDelta")
	Conf.Server.OTPExpiration = v.GetDuration("otpExpirationDelta")
	Conf.Server.OTPMaxAttempts = v.GetInt("otpMaxAttempts")
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deanboard-credentials.json"
	}
	return filepath.Join(home, ".deanboard", "credentials.json")
}
