package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	Slot   SlotConfig
	NATS   NATSConfig
	Redis  RedisConfig
	Outbox OutboxConfig
	Jobs   JobsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" required:"true"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	DBName      string `envconfig:"DB_NAME" required:"true"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone    string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"Asia/Seoul"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// SlotConfig controls how slots are materialized and expired.
// TimeZone is the zone every slot date and time is interpreted in.
type SlotConfig struct {
	TimeZone                 string `envconfig:"SLOT_TIMEZONE" default:"Asia/Seoul"`
	WindowDays               int    `envconfig:"SLOT_WINDOW_DAYS" default:"30"`
	PendingExpirationMinutes int    `envconfig:"SLOT_PENDING_EXPIRATION_MINUTES" default:"10"`
}

type NATSConfig struct {
	URL           string        `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	Stream        string        `envconfig:"NATS_STREAM" default:"ROOM_SLOTS"`
	SubjectPrefix string        `envconfig:"NATS_SUBJECT_PREFIX" default:"roomslot"`
	ConsumerQueue string        `envconfig:"NATS_CONSUMER_QUEUE" default:"room-slot-service"`
	PaymentPrefix string        `envconfig:"NATS_PAYMENT_PREFIX" default:"payment"`
	Timeout       time.Duration `envconfig:"NATS_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	Addr          string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password      string `envconfig:"REDIS_PASSWORD" default:""`
	DB            int    `envconfig:"REDIS_DB" default:"0"`
	LockKeyPrefix string `envconfig:"LOCK_KEY_PREFIX" default:"room-slot:lock:"`
}

type OutboxConfig struct {
	Workers        int           `envconfig:"OUTBOX_WORKERS" default:"4"`
	QueueSize      int           `envconfig:"OUTBOX_QUEUE_SIZE" default:"256"`
	MaxRetries     int           `envconfig:"OUTBOX_MAX_RETRIES" default:"5"`
	SweepInterval  time.Duration `envconfig:"OUTBOX_SWEEP_INTERVAL" default:"30s"`
	SweepGrace     time.Duration `envconfig:"OUTBOX_SWEEP_GRACE" default:"1m"`
	BatchSize      int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PublishTimeout time.Duration `envconfig:"OUTBOX_PUBLISH_TIMEOUT" default:"5s"`
	// ArchiveRetention is how long PUBLISHED rows are kept before the archive job may delete them.
	ArchiveRetention time.Duration `envconfig:"OUTBOX_ARCHIVE_RETENTION" default:"168h"`
}

type JobsConfig struct {
	Enabled            bool          `envconfig:"JOBS_ENABLED" default:"true"`
	GenerationInterval time.Duration `envconfig:"JOB_GENERATION_INTERVAL" default:"1h"`
	RetirementInterval time.Duration `envconfig:"JOB_RETIREMENT_INTERVAL" default:"1h"`
	ExpiryInterval     time.Duration `envconfig:"JOB_EXPIRY_INTERVAL" default:"1m"`
	CleanupInterval    time.Duration `envconfig:"JOB_CLEANUP_INTERVAL" default:"1h"`
	ResumeInterval     time.Duration `envconfig:"JOB_RESUME_INTERVAL" default:"1m"`
	// ArchiveInterval of zero leaves the outbox archive job unscheduled.
	ArchiveInterval  time.Duration `envconfig:"JOB_OUTBOX_ARCHIVE_INTERVAL" default:"0"`
	LockAtMost       time.Duration `envconfig:"JOB_LOCK_AT_MOST" default:"10m"`
	LockAtLeast      time.Duration `envconfig:"JOB_LOCK_AT_LEAST" default:"30s"`
	RequestRetention time.Duration `envconfig:"JOB_REQUEST_RETENTION" default:"24h"`
	// RequestStaleAfter must exceed Timeout so a live run is never resumed.
	RequestStaleAfter time.Duration `envconfig:"JOB_REQUEST_STALE_AFTER" default:"15m"`
	ResumeBatch       int           `envconfig:"JOB_RESUME_BATCH" default:"10"`
	Timeout           time.Duration `envconfig:"JOB_TIMEOUT" default:"5m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves SLOT_TIMEZONE.
func (c SlotConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c SlotConfig) PendingExpiration() time.Duration {
	return time.Duration(c.PendingExpirationMinutes) * time.Minute
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Slot.WindowDays < 1 {
		return Config{}, fmt.Errorf("SLOT_WINDOW_DAYS must be positive, got %d", cfg.Slot.WindowDays)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "Asia/Seoul",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Slot: SlotConfig{
			TimeZone:                 "Asia/Seoul",
			WindowDays:               14,
			PendingExpirationMinutes: 10,
		},
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			Stream:        "ROOM_SLOTS_TEST",
			SubjectPrefix: "roomslot",
			ConsumerQueue: "room-slot-service-test",
			PaymentPrefix: "payment",
			Timeout:       time.Second,
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			LockKeyPrefix: "room-slot-test:lock:",
		},
		Outbox: OutboxConfig{
			Workers:          2,
			QueueSize:        8,
			MaxRetries:       3,
			SweepInterval:    time.Second,
			SweepGrace:       0,
			BatchSize:        10,
			PublishTimeout:   time.Second,
			ArchiveRetention: time.Hour,
		},
		Jobs: JobsConfig{
			Enabled:           false,
			LockAtMost:        time.Minute,
			LockAtLeast:       0,
			RequestRetention:  time.Hour,
			RequestStaleAfter: 10 * time.Minute,
			ResumeBatch:       10,
			Timeout:           time.Minute,
		},
	}
}
