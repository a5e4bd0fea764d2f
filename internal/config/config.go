package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Upload    UploadConfig
	Storage   StorageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Order     OrderConfig
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	// TrustedProxies lists the peers whose forwarding headers are believed.
	// Empty means client addresses come from the socket only.
	TrustedProxies []netip.Prefix
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrateOnStart  bool
}

type LogConfig struct {
	Level string
	// Format is "json" or "console".
	Format string
}

type UploadConfig struct {
	MaxFileSize int64
	MaxFiles    int
}

// Storage backends.
const (
	StorageLocal      = "local"
	StorageS3         = "s3"
	StorageCloudinary = "cloudinary"
)

type StorageConfig struct {
	Backend    string
	LocalDir   string
	PublicURL  string
	S3         S3Config
	Cloudinary CloudinaryConfig
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	PathStyle       bool
}

type CloudinaryConfig struct {
	URL    string
	Folder string
}

type RedisConfig struct {
	URL string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

// Enabled reports whether admin routes require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

type OrderConfig struct {
	TxTimeout        time.Duration
	MaxRetryAttempts int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "shopadmin")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "shopadmin")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_MIGRATE_ON_START", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 5<<20)
	v.SetDefault("UPLOAD_MAX_FILES", 10)
	v.SetDefault("STORAGE_BACKEND", StorageLocal)
	v.SetDefault("STORAGE_LOCAL_DIR", "uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "/uploads")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PATH_STYLE", false)
	v.SetDefault("CLOUDINARY_FOLDER", "shopadmin")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_TOKEN_TTL", "12h")
	v.SetDefault("AUTH_ADMIN_USERNAME", "admin")
	v.SetDefault("AUTH_ADMIN_PASSWORD_HASH", "")
	v.SetDefault("ORDER_TX_TIMEOUT", "5s")
	v.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
}

// Load reads the optional YAML file named by CONFIG_FILE (config.yaml by
// default) and overlays environment variables on top of it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	v.SetDefault("CONFIG_FILE", "config.yaml")
	v.SetConfigFile(v.GetString("CONFIG_FILE"))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	durations := map[string]time.Duration{}
	for _, key := range []string{
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "DB_CONN_MAX_LIFETIME",
		"RATE_LIMIT_WINDOW", "AUTH_TOKEN_TTL", "ORDER_TX_TIMEOUT",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	proxies, err := parsePrefixes(v.GetString("TRUSTED_PROXIES"))
	if err != nil {
		return nil, fmt.Errorf("parsing TRUSTED_PROXIES: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetInt("SERVER_PORT"),
			ReadTimeout:        durations["SERVER_READ_TIMEOUT"],
			WriteTimeout:       durations["SERVER_WRITE_TIMEOUT"],
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			TrustedProxies:     proxies,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
			MigrateOnStart:  v.GetBool("DB_MIGRATE_ON_START"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Upload: UploadConfig{
			MaxFileSize: v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
			MaxFiles:    v.GetInt("UPLOAD_MAX_FILES"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(v.GetString("STORAGE_BACKEND")),
			LocalDir:  v.GetString("STORAGE_LOCAL_DIR"),
			PublicURL: strings.TrimRight(v.GetString("STORAGE_PUBLIC_URL"), "/"),
			S3: S3Config{
				Bucket:          v.GetString("S3_BUCKET"),
				Region:          v.GetString("S3_REGION"),
				Endpoint:        v.GetString("S3_ENDPOINT"),
				AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
				PublicURL:       strings.TrimRight(v.GetString("S3_PUBLIC_URL"), "/"),
				PathStyle:       v.GetBool("S3_PATH_STYLE"),
			},
			Cloudinary: CloudinaryConfig{
				URL:    v.GetString("CLOUDINARY_URL"),
				Folder: v.GetString("CLOUDINARY_FOLDER"),
			},
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   durations["RATE_LIMIT_WINDOW"],
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("AUTH_JWT_SECRET"),
			TokenTTL:          durations["AUTH_TOKEN_TTL"],
			AdminUsername:     v.GetString("AUTH_ADMIN_USERNAME"),
			AdminPasswordHash: v.GetString("AUTH_ADMIN_PASSWORD_HASH"),
		},
		Order: OrderConfig{
			TxTimeout:        durations["ORDER_TX_TIMEOUT"],
			MaxRetryAttempts: v.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
		}
	case StorageCloudinary:
		if c.Storage.Cloudinary.URL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required for the cloudinary storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILES must be positive")
	}
	if c.Order.MaxRetryAttempts < 1 {
		c.Order.MaxRetryAttempts = 1
	}
	if c.Auth.Enabled() && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("AUTH_ADMIN_PASSWORD_HASH is required when AUTH_JWT_SECRET is set")
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parsePrefixes reads a comma separated list of CIDRs or single addresses.
func parsePrefixes(raw string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range splitList(raw) {
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
