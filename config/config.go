package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	DBUrl     string
	JWTSecret string
	TokenTTL  time.Duration
	Debug     bool
}

// Load reads an optional .env file, then parses flags whose defaults come
// from the environment. Flags win over env vars.
func Load() (cfg Config, err error) {
	godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("HOST", "0.0.0.0"), "listen host name")
	var port uint
	flag.UintVar(&port, "port", uint(envOrInt("PORT", 5000)), "listen port number")
	flag.StringVar(&cfg.DBUrl, "db-url", envOr("DB_URL", "novascript.sqlite"), "path to SQLite3 DB file")
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "secret key for signing session tokens")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", uint(envOrInt("TOKEN_TTL", 3600)), "session token TTL in seconds")
	flag.BoolVar(&cfg.Debug, "debug", os.Getenv("DEBUG") == "true", "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.JWTSecret == "" {
		err = errors.New("missing parameter -jwt-secret (env JWT_SECRET)")
	}

	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
