package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and never mutated afterwards.
type Config struct {
	Env        string
	Port       string
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	CORSOrigin string
	BcryptCost int
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment. JWT_SECRET has no
// default: issuing tokens with a guessable key would defeat the whole
// auth scheme, so a missing secret is a startup error.
func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}

	cost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.New("BCRYPT_COST must be an integer")
		}
		cost = n
	}

	return Config{
		Env:        env("APP_ENV", "dev"),
		Port:       env("API_PORT", "8080"),
		MongoURI:   env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    env("MONGO_DATABASE", "clinic"),
		JWTSecret:  secret,
		CORSOrigin: env("CORS_ORIGIN", "http://localhost:3000"),
		BcryptCost: cost,
	}, nil
}
