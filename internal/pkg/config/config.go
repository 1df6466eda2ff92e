package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,        default=8080"`
	Env       string        `env:"ENV,         default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,   default=info"`

	// PostingTTL is how long a job accepts applications after creation.
	PostingTTL time.Duration `env:"POSTING_TTL, default=168h"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
	Upload   UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GeocoderConfig struct {
	BaseURL   string        `env:"GEOCODER_URL,        default=https://nominatim.openstreetmap.org"`
	UserAgent string        `env:"GEOCODER_USER_AGENT, default=jobboard-api"`
	Timeout   time.Duration `env:"GEOCODER_TIMEOUT,    default=10s"`
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=./uploads"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES, default=2097152"`
	// Extensions is the allow-list of resume file extensions.
	Extensions []string `env:"UPLOAD_EXTENSIONS, default=.pdf,.doc,.docx"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
