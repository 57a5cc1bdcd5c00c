package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"waitlist/internal/constant"
)

type AppEnv string

const (
	ProductionEnv AppEnv = "production"
	DevelopEnv    AppEnv = "develop"
	LocalEnv      AppEnv = "local"
	TestEnv       AppEnv = "test"
)

type StoreBackend string

const (
	PostgresBackend StoreBackend = "postgres"
	RedisBackend    StoreBackend = "redis"
	MemoryBackend   StoreBackend = "memory"
)

type (
	Config struct {
		AppEnv   AppEnv
		LogLevel logrus.Level
		HTTP     HTTP
		Store    Store
		Queue    Queue
		Push     Push
		Tasks    Tasks
	}

	HTTP struct {
		Port int
	}

	Store struct {
		Backend  StoreBackend
		Postgres Postgres
		Redis    Redis
	}

	Postgres struct {
		Host     string
		Port     int
		Username string
		Password string
		Database string
	}

	Redis struct {
		Addr     string
		Password string
		Database int
	}

	Queue struct {
		CASAttempts int
	}

	Push struct {
		Endpoint string
	}

	Tasks struct {
		DelayCheckSpec string // cron spec with seconds field
	}
)

func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.Username, p.Password, p.Database)
}

// LoadEnvFile loads .env unless ENV_CHEK says the environment is already set up.
func LoadEnvFile(paths ...string) error {
	if os.Getenv("ENV_CHEK") != "" {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Wrap(err, "config: load .env")
	}
	return nil
}

func Load() (*Config, error) {
	level, err := logrus.ParseLevel(getString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.Wrap(err, "config: LOG_LEVEL")
	}

	cfg := &Config{
		AppEnv:   AppEnv(getString("APP_ENV", string(LocalEnv))),
		LogLevel: level,
		Store: Store{
			Backend: StoreBackend(getString("STORE_BACKEND", string(PostgresBackend))),
			Postgres: Postgres{
				Host:     getString("DB_HOST", "localhost"),
				Username: getString("DB_USER", "postgres"),
				Password: os.Getenv("DB_PASSWORD"),
				Database: getString("DB_NAME", "waitlist"),
			},
			Redis: Redis{
				Addr:     getString("REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
			},
		},
		Push: Push{
			Endpoint: getString("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send"),
		},
		Tasks: Tasks{
			DelayCheckSpec: getString("DELAY_CHECK_SPEC", "0 * * * * *"),
		},
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"HTTP_PORT", 8080, &cfg.HTTP.Port},
		{"DB_PORT", 5432, &cfg.Store.Postgres.Port},
		{"REDIS_DB", 0, &cfg.Store.Redis.Database},
		{"QUEUE_CAS_ATTEMPTS", constant.DefaultCASAttempts, &cfg.Queue.CASAttempts},
	}
	for _, v := range ints {
		if *v.dest, err = getInt(v.key, v.def); err != nil {
			return nil, err
		}
	}

	switch cfg.Store.Backend {
	case PostgresBackend, RedisBackend, MemoryBackend:
	default:
		return nil, errors.Errorf("config: unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	if cfg.Queue.CASAttempts < 1 {
		return nil, errors.Errorf("config: QUEUE_CAS_ATTEMPTS must be positive, got %d", cfg.Queue.CASAttempts)
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}
	return n, nil
}
