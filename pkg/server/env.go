package server

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

// Defaults for [Env].
const (
	DefaultAddr        = ":8080"
	DefaultMaxVertices = 20000
	DefaultTimeout     = 60 * time.Second
)

// Env holds the service settings.
type Env struct {
	Addr          string
	RedisURL      string
	MongoURI      string
	MongoDatabase string
	MaxVertices   int
	Timeout       time.Duration
}

// LoadEnv loads the given .env files (default ".env"), skipping missing
// ones, and reads the CHROMATIC_* variables. Variables already set in the
// process environment win over file values.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, cerrors.Wrap(cerrors.ErrCodeConfiguration, err, "load %s", f)
		}
	}

	env := Env{
		Addr:          getenv("CHROMATIC_ADDR", DefaultAddr),
		RedisURL:      os.Getenv("CHROMATIC_REDIS_URL"),
		MongoURI:      os.Getenv("CHROMATIC_MONGO_URI"),
		MongoDatabase: os.Getenv("CHROMATIC_MONGO_DB"),
		MaxVertices:   DefaultMaxVertices,
		Timeout:       DefaultTimeout,
	}
	if v := os.Getenv("CHROMATIC_MAX_VERTICES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Env{}, cerrors.New(cerrors.ErrCodeConfiguration, "CHROMATIC_MAX_VERTICES must be a positive integer, got %q", v)
		}
		env.MaxVertices = n
	}
	if v := os.Getenv("CHROMATIC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Env{}, cerrors.New(cerrors.ErrCodeConfiguration, "CHROMATIC_TIMEOUT must be a positive duration, got %q", v)
		}
		env.Timeout = d
	}
	return env, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
