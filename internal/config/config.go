package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultListenAddr    = ":3000"
	DefaultStaticDir     = "./static"
	DefaultSessionMaxAge = 30 * time.Minute
	DefaultCookieName    = "sid"
)

type MySQLConfig struct {
	Dsn          string
	Replicas     []string
	TablePrefix  string
	MaxIdleConns int
	MaxOpenConns int
}

type SessionConfig struct {
	SessionMaxAge  time.Duration
	CookieName     string
	CookieHttpOnly bool
	CookieSecure   bool
}

type RedisConfig struct {
	URL         string
	PoolSize    int
	ClusterMode bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Debug        bool
	Production   bool
	SiteName     string
	BaseURL      string
	MasterKey    string
	ListenAddr   string
	StaticDir    string
	TemplateDir  string
	AllowOrigins []string
	CSRFExempt   []string // exempt path prefixes (payment webhooks, IPN callbacks)
	Session      SessionConfig
	Redis        RedisConfig
	MySQL        MySQLConfig
	SMTP         SMTPConfig

	loader *Loader
}

// Env returns the raw typed accessor layer backing this config.
func (c *Config) Env() *Loader {
	return c.loader
}

func (c *Config) Sanitize() error {
	if c.SiteName == "" {
		c.SiteName = "Cornerfield"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.Session.SessionMaxAge <= 0 {
		c.Session.SessionMaxAge = DefaultSessionMaxAge
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.MasterKey == "" {
		return fmt.Errorf("APP_KEY must be set")
	}
	if c.MySQL.Dsn == "" {
		return fmt.Errorf("DB_DSN must be set")
	}
	return nil
}

// LoadConfig reads an env-style config file (KEY=value lines, # comments,
// optional quotes) and merges process environment variables over it.
func LoadConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	loader := &Loader{v: v}
	config := Config{
		Debug:        loader.GetBool("APP_DEBUG"),
		Production:   loader.GetString("APP_ENV") == "production",
		SiteName:     loader.GetString("SITE_NAME"),
		BaseURL:      loader.GetString("BASE_URL"),
		MasterKey:    loader.GetString("APP_KEY"),
		ListenAddr:   loader.GetString("LISTEN_ADDR"),
		StaticDir:    loader.GetString("STATIC_DIR"),
		TemplateDir:  loader.GetString("TEMPLATE_DIR"),
		AllowOrigins: loader.GetStrings("ALLOW_ORIGINS"),
		CSRFExempt:   loader.GetStrings("CSRF_EXEMPT_PATHS"),
		Session: SessionConfig{
			SessionMaxAge:  time.Duration(loader.GetInt("SESSION_LIFETIME")) * time.Second,
			CookieName:     loader.GetString("SESSION_COOKIE_NAME"),
			CookieHttpOnly: true,
			CookieSecure:   loader.GetString("APP_ENV") == "production",
		},
		Redis: RedisConfig{
			URL:         loader.GetString("REDIS_URL"),
			PoolSize:    loader.GetInt("REDIS_POOL_SIZE"),
			ClusterMode: loader.GetBool("REDIS_CLUSTER_MODE"),
		},
		MySQL: MySQLConfig{
			Dsn:          loader.GetString("DB_DSN"),
			Replicas:     loader.GetStrings("DB_REPLICA_DSNS"),
			TablePrefix:  loader.GetString("DB_TABLE_PREFIX"),
			MaxIdleConns: loader.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: loader.GetInt("DB_MAX_OPEN_CONNS"),
		},
		SMTP: SMTPConfig{
			Host:     loader.GetString("SMTP_HOST"),
			Port:     loader.GetInt("SMTP_PORT"),
			Username: loader.GetString("SMTP_USERNAME"),
			Password: loader.GetString("SMTP_PASSWORD"),
			From:     loader.GetString("SMTP_FROM"),
		},
		loader: loader,
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
