// Package config carga la configuración desde variables de entorno con prefijo
// ANIMALS_ (y un .env opcional), aplica defaults y valida.
//
// La primera "_" después del prefijo separa sección y clave:
// ANIMALS_SERVER_PORT -> server.port, ANIMALS_AUTH_JWT_SECRET -> auth.jwt_secret.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// .env se carga en el entorno del proceso antes de leerlo
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const Prefix = "ANIMALS_"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth"`
	Uploads  UploadsConfig  `koanf:"uploads"`
	Log      LogConfig      `koanf:"log"`
}

// Los timeouts van en segundos.
type ServerConfig struct {
	Port            int    `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout     int    `koanf:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout int    `koanf:"shutdown_timeout" validate:"gte=0"`
	CORSOrigins     string `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	// DSN vacío => repositorio in-memory.
	DSN         string `koanf:"dsn"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

type RedisConfig struct {
	// Addr vacío => sesiones in-memory.
	Addr     string `koanf:"addr" validate:"omitempty,hostname_port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

type AuthConfig struct {
	JWTSecret  string `koanf:"jwt_secret" validate:"omitempty,min=32"`
	TokenTTL   int    `koanf:"token_ttl" validate:"gte=0"`
	SessionTTL int    `koanf:"session_ttl" validate:"gte=0"`

	// Users: "alice:$2a$10$...,bob:$2a$10$..."
	Users        string `koanf:"users"`
	DevMode      bool   `koanf:"dev_mode"`
	CookieSecure bool   `koanf:"cookie_secure"`

	IdentityURL    string `koanf:"identity_url" validate:"omitempty,url"`
	IdentityAPIKey string `koanf:"identity_api_key" validate:"required_with=IdentityURL"`
}

type UploadsConfig struct {
	Dir      string `koanf:"dir" validate:"required"`
	MaxBytes int64  `koanf:"max_bytes" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
	App    string `koanf:"app"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			CORSOrigins:     "http://localhost:8080",
		},
		Database: DatabaseConfig{AutoMigrate: true},
		Auth: AuthConfig{
			TokenTTL:   3600,
			SessionTTL: 86400,
		},
		Uploads: UploadsConfig{
			Dir:      "uploads",
			MaxBytes: 5 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "animals-api",
		},
	}
}

// Load lee el entorno sobre los defaults. Solo se pisan las claves presentes.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(Prefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, Prefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

func (s ServerConfig) Origins() []string {
	return splitList(s.CORSOrigins)
}

func (a AuthConfig) UserEntries() []string {
	return splitList(a.Users)
}

func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
