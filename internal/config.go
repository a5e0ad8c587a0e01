package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Env      string         `mapstructure:"app_env"`
	Server   ServerConfig   `mapstructure:"http_server"`
	Security SecurityConfig `mapstructure:"security"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins string        `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type SecurityConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours"`
}

type SupabaseConfig struct {
	URL            string        `mapstructure:"url"`
	ServiceRoleKey string        `mapstructure:"service_role_key"`
	AnonKey        string        `mapstructure:"anon_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Key picks the API key the gateway authenticates with. The service role JWT
// wins over the anon key when both look like actual JWTs.
func (c *SupabaseConfig) Key() string {
	sr := strings.TrimSpace(c.ServiceRoleKey)
	anon := strings.TrimSpace(c.AnonKey)
	if looksLikeJWT(sr) {
		return sr
	}
	if looksLikeJWT(anon) {
		return anon
	}
	if sr != "" {
		return sr
	}
	return anon
}

func looksLikeJWT(s string) bool {
	return strings.HasPrefix(s, "eyJ") && strings.Count(s, ".") >= 2
}

// Origins splits the comma-separated allowed-origins list, dropping blanks.
func (c *ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}
	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}
	if err := c.Supabase.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("supabase config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	for _, origin := range c.Origins() {
		if origin == "*" {
			continue
		}
		if _, err := url.Parse(origin); err != nil {
			return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
		}
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if c.TokenLifetimeHours <= 0 {
		return errors.New("token lifetime must be positive")
	}
	return nil
}

func (c *SupabaseConfig) Validate() error {
	if c.URL == "" {
		return errors.New("url is required (SUPABASE_URL)")
	}
	if c.Key() == "" {
		return errors.New("api key is required (SUPABASE_SERVICE_ROLE_KEY or SUPABASE_ANON_KEY)")
	}
	return nil
}
