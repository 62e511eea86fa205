package config

import (
	"errors"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBDriver      string // postgres or sqlite
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration
	SQLiteDSN     string

	// Migrations
	MigrationsDir string
	SeedOnStart   bool

	// Redis (optional; rate limiting is skipped when empty)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecretKey         string
	JWTIssuer            string
	JWTAudience          string
	JWTExpirationMinutes int

	// Password hashing pepper used to derive per-password salts
	PasswordPepper string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// RabbitMQ (optional; employee events are not published when empty)
	RabbitMQURL           string
	RabbitMQEmployeeQueue string

	// Elasticsearch (optional; search returns no hits when empty)
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESEmployeesIndex   string

	// Mailgun (notifier worker)
	MailgunDomain   string
	MailgunAPIKey   string
	MailgunSender   string
	MailSendEnabled bool
	CompanyName     string

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

// ErrJWTSecretMissing is returned by Validate when no signing secret is configured.
var ErrJWTSecretMissing = errors.New("JWT_SECRET_KEY is not configured")

const (
	DefaultJWTIssuer            = "EmployeeChallenge"
	DefaultJWTAudience          = "EmployeeChallenge"
	DefaultJWTExpirationMinutes = 60
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "employee-hierarchy-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "employees"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		SQLiteDSN:     getenv("SQLITE_DSN", "file:employees?mode=memory&cache=shared&_foreign_keys=on"),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),
		SeedOnStart:   getbool("SEED_ON_START", false),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecretKey:         getenv("JWT_SECRET_KEY", ""),
		JWTIssuer:            getenv("JWT_ISSUER", DefaultJWTIssuer),
		JWTAudience:          getenv("JWT_AUDIENCE", DefaultJWTAudience),
		JWTExpirationMinutes: positive(getint("JWT_EXPIRATION_MINUTES", DefaultJWTExpirationMinutes), DefaultJWTExpirationMinutes),

		PasswordPepper: getenv("PASSWORD_PEPPER", "employee-challenge-pepper"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		RabbitMQURL:           getenv("RABBITMQ_URL", ""),
		RabbitMQEmployeeQueue: getenv("RABBITMQ_EMPLOYEE_QUEUE", "employee-events"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESEmployeesIndex:   getenv("ES_EMPLOYEES_INDEX", "employees"),

		MailgunDomain:   getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:   getenv("MAILGUN_API_KEY", ""),
		MailgunSender:   getenv("MAILGUN_SENDER", ""),
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),
		CompanyName:     getenv("COMPANY_NAME", "Employee Challenge"),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Validate reports configuration that the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return ErrJWTSecretMissing
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite, got " + c.DBDriver)
	}
	return nil
}

// JWTTTL returns the access token lifetime.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(positive(c.JWTExpirationMinutes, DefaultJWTExpirationMinutes)) * time.Minute
}

// PostgresDSN returns a URL DSN usable by pgx and golang-migrate. Credentials are escaped.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
