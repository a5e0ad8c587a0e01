package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

var rootCmd = &cobra.Command{
	Use:   "vsm-backend",
	Short: "Virtual Scrum Master API",
	Long:  `Backend for the AI-powered virtual scrum master: projects, sprints, tasks and the chat bot that moves them.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads configuration from the environment, with a .env file as a
// development convenience. Every knob has a default except the JWT secret and
// the datastore coordinates.
func loadConfig() (*internal.Config, error) {
	// best effort; production passes real env vars
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 5000)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:8080")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("SUPABASE_REQUEST_TIMEOUT", "10s")

	secret := v.GetString("JWT_SECRET_KEY")
	if secret == "" {
		secret = v.GetString("SECRET_KEY")
	}

	cfg := &internal.Config{
		Env: v.GetString("APP_ENV"),
		Server: internal.ServerConfig{
			Port:           v.GetInt("PORT"),
			AllowedOrigins: v.GetString("CORS_ORIGINS"),
			ReadTimeout:    mustDuration(v, "HTTP_READ_TIMEOUT"),
			WriteTimeout:   mustDuration(v, "HTTP_WRITE_TIMEOUT"),
			IdleTimeout:    mustDuration(v, "HTTP_IDLE_TIMEOUT"),
		},
		Security: internal.SecurityConfig{
			JWTSecret:          secret,
			TokenLifetimeHours: v.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Supabase: internal.SupabaseConfig{
			URL:            v.GetString("SUPABASE_URL"),
			ServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
			AnonKey:        v.GetString("SUPABASE_ANON_KEY"),
			RequestTimeout: mustDuration(v, "SUPABASE_REQUEST_TIMEOUT"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return cfg, nil
}

func mustDuration(v *viper.Viper, key string) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		d = 10 * time.Second
	}
	return d
}

func init() {
	rootCmd.AddCommand(httpServerCmd)
}
