package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
# server
APP_KEY=super-secret
APP_DEBUG=true
APP_ENV=production
SITE_NAME=Cornerfield
BASE_URL=https://invest.example.com
LISTEN_ADDR=:8080

DB_DSN=root:pass@tcp(127.0.0.1:3306)/cornerfield?parseTime=true
DB_REPLICA_DSNS=replica1-dsn,replica2-dsn

SESSION_LIFETIME=900
SESSION_COOKIE_NAME=app_sid

CSRF_EXEMPT_PATHS=/webhook/coinbase,/webhook/paystack
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.MasterKey != "super-secret" {
		t.Fatalf("MasterKey = %q", config.MasterKey)
	}
	if !config.Debug || !config.Production {
		t.Fatalf("Debug/Production flags not parsed: %+v", config)
	}
	if config.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr = %q", config.ListenAddr)
	}
	if config.Session.SessionMaxAge != 900*time.Second {
		t.Fatalf("SessionMaxAge = %v", config.Session.SessionMaxAge)
	}
	if config.Session.CookieName != "app_sid" {
		t.Fatalf("CookieName = %q", config.Session.CookieName)
	}
	if !config.Session.CookieSecure {
		t.Fatalf("CookieSecure should be on in production")
	}
	if len(config.MySQL.Replicas) != 2 || config.MySQL.Replicas[1] != "replica2-dsn" {
		t.Fatalf("Replicas = %v", config.MySQL.Replicas)
	}
	if len(config.CSRFExempt) != 2 || config.CSRFExempt[0] != "/webhook/coinbase" {
		t.Fatalf("CSRFExempt = %v", config.CSRFExempt)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
APP_KEY=k
DB_DSN=dsn
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.ListenAddr != DefaultListenAddr {
		t.Fatalf("ListenAddr default = %q", config.ListenAddr)
	}
	if config.Session.SessionMaxAge != DefaultSessionMaxAge {
		t.Fatalf("SessionMaxAge default = %v", config.Session.SessionMaxAge)
	}
	if config.Session.CookieName != DefaultCookieName {
		t.Fatalf("CookieName default = %q", config.Session.CookieName)
	}
	if config.Session.CookieSecure {
		t.Fatalf("CookieSecure should be off outside production")
	}
}

func TestLoadConfigMissingRequiredKeys(t *testing.T) {
	path := writeConfigFile(t, "APP_KEY=k\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("LoadConfig without DB_DSN must fail")
	}

	path = writeConfigFile(t, "DB_DSN=dsn\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("LoadConfig without APP_KEY must fail")
	}
}

func TestLoaderGetBool(t *testing.T) {
	path := writeConfigFile(t, `
APP_KEY=k
DB_DSN=dsn
FLAG_TRUE=yes
FLAG_ON=on
FLAG_ONE=1
FLAG_OFF=no
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	env := config.Env()
	for _, key := range []string{"FLAG_TRUE", "FLAG_ON", "FLAG_ONE"} {
		if !env.GetBool(key) {
			t.Fatalf("GetBool(%s) = false, want true", key)
		}
	}
	if env.GetBool("FLAG_OFF") || env.GetBool("FLAG_MISSING") {
		t.Fatalf("falsy values must parse as false")
	}
}

func TestLoaderGetStringsJSONArray(t *testing.T) {
	path := writeConfigFile(t, `
APP_KEY=k
DB_DSN=dsn
ORIGINS=["https://a.example.com","https://b.example.com"]
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	origins := config.Env().GetStrings("ORIGINS")
	if len(origins) != 2 || origins[0] != "https://a.example.com" {
		t.Fatalf("GetStrings JSON array = %v", origins)
	}
}
