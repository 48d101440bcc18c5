package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all settings for the portfolio site.
// Values come from an optional YAML file; environment variables override it.
// Secrets are only read from the environment.
type Config struct {
	Addr       string `yaml:"addr" env:"APP_ADDR" env-default:":3000"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"portfolio.db"`
	SiteURL    string `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:3000"`

	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
	Owner   OwnerConfig   `yaml:"owner"`

	// SessionSecret seals stored bearer tokens and signs flash cookies.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET"`
	CookieSecure  bool   `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`

	PageSize       int    `yaml:"page_size" env:"PAGE_SIZE" env-default:"6"`
	AdminPageSize  int    `yaml:"admin_page_size" env:"ADMIN_PAGE_SIZE" env-default:"10"`
	ResumeFileName string `yaml:"resume_file_name" env:"RESUME_FILE_NAME" env-default:"resume.pdf"`
}

type BackendConfig struct {
	URL     string        `yaml:"url" env:"BACKEND_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// OwnerConfig is the profile shown in the hero, footer and PDF export.
type OwnerConfig struct {
	Name     string   `yaml:"name" env:"OWNER_NAME" env-default:"Portfolio Owner"`
	Roles    []string `yaml:"roles" env:"OWNER_ROLES" env-separator:"," env-default:"Backend Developer,Problem Solver"`
	Tagline  string   `yaml:"tagline" env:"OWNER_TAGLINE" env-default:"I build reliable backend systems and APIs."`
	Email    string   `yaml:"email" env:"OWNER_EMAIL"`
	GitHub   string   `yaml:"github" env:"OWNER_GITHUB"`
	LinkedIn string   `yaml:"linkedin" env:"OWNER_LINKEDIN"`
	Location string   `yaml:"location" env:"OWNER_LOCATION"`
}

// Load reads .env (when present), then path (when present), then the
// environment, and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			return cfg, cfg.validate()
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("SESSION_SECRET is required")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL %q", c.Backend.URL)
	}
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.PageSize <= 0 {
		c.PageSize = 6
	}
	if c.AdminPageSize <= 0 {
		c.AdminPageSize = 10
	}
	roles := c.Owner.Roles[:0]
	for _, r := range c.Owner.Roles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	c.Owner.Roles = roles
	return nil
}
