package infra

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultAllowedOrigins are the browser origins allowed to call the API.
var DefaultAllowedOrigins = []string{
	"https://janajagrutiyuvaparisad-ganeshpuja.vercel.app",
	"http://localhost:5173",
}

// Config represents application configuration loaded from the environment
// and an optional YAML file.
type Config struct {
	AppEnv           string        `koanf:"app_env"`
	Port             string        `koanf:"port"`
	DatabaseURL      string        `koanf:"database_url"`
	MongoURI         string        `koanf:"mongo_uri"`
	MongoDatabase    string        `koanf:"mongo_database"`
	AllowedOrigins   []string      `koanf:"cors_allowed_origins"`
	GeoIPDBPath      string        `koanf:"geoip_db_path"`
	AMQPURL          string        `koanf:"amqp_url"`
	AMQPQueue        string        `koanf:"amqp_queue"`
	ReadTimeoutSecs  int           `koanf:"http_read_timeout_seconds"`
	WriteTimeoutSecs int           `koanf:"http_write_timeout_seconds"`
	IdleTimeoutSecs  int           `koanf:"http_idle_timeout_seconds"`
	HTTPReadTimeout  time.Duration `koanf:"-"`
	HTTPWriteTimeout time.Duration `koanf:"-"`
	HTTPIdleTimeout  time.Duration `koanf:"-"`
}

func defaultConfig() Config {
	return Config{
		AppEnv:           "development",
		Port:             "5000",
		DatabaseURL:      "mongodb://localhost:27017/donations",
		AllowedOrigins:   append([]string(nil), DefaultAllowedOrigins...),
		AMQPQueue:        "submissions",
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 30,
		IdleTimeoutSecs:  60,
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE (if any) and
// environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Empty variables count as unset.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// MONGO_URI is the historical name of the connection string.
	if !k.Exists("database_url") && cfg.MongoURI != "" {
		cfg.DatabaseURL = cfg.MongoURI
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.HTTPReadTimeout = time.Second * time.Duration(cfg.ReadTimeoutSecs)
	cfg.HTTPWriteTimeout = time.Second * time.Duration(cfg.WriteTimeoutSecs)
	cfg.HTTPIdleTimeout = time.Second * time.Duration(cfg.IdleTimeoutSecs)

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}

	return &cfg, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			origin := strings.TrimRight(strings.TrimSpace(part), "/")
			if origin == "" {
				continue
			}
			if _, ok := seen[origin]; ok {
				continue
			}
			seen[origin] = struct{}{}
			out = append(out, origin)
		}
	}
	return out
}
