package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mwork/photobackup/internal/pkg/validator"
)

// Supported destinations.
const (
	DestinationYaDisk = "yadisk"
	DestinationS3     = "s3"
	DestinationLocal  = "local"
)

type Config struct {
	Env string `env:"ENV" validate:"required"`

	// Logging
	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`

	// Source (VK)
	VKToken      string `env:"VK_TOKEN" validate:"required"`
	VKAPIVersion string `env:"VK_API_VERSION" validate:"required"`
	VKBaseURL    string `env:"VK_BASE_URL" validate:"required,url"`
	VKRateLimit  int    `env:"VK_RATE_LIMIT" validate:"gte=1"`

	// Backup
	AlbumID      string `env:"ALBUM_ID" validate:"required"`
	PhotoCount   int    `env:"PHOTO_COUNT" validate:"gte=1,lte=1000"`
	Folder       string `env:"BACKUP_FOLDER" validate:"required"`
	MetadataFile string `env:"METADATA_FILE" validate:"required"`
	Destination  string `env:"DESTINATION" validate:"destination"`

	// Transport
	TransferDelay time.Duration `env:"TRANSFER_DELAY" validate:"gte=0"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" validate:"gt=0"`
	UserAgent     string        `env:"USER_AGENT"`

	// Yandex Disk
	YaDiskToken   string `env:"YADISK_TOKEN" validate:"required_if=Destination yadisk"`
	YaDiskBaseURL string `env:"YADISK_BASE_URL" validate:"required,url"`

	// S3 compatible storage (AWS, MinIO, R2)
	S3Endpoint  string `env:"S3_ENDPOINT" validate:"omitempty,url"`
	S3Region    string `env:"S3_REGION" validate:"required_if=Destination s3"`
	S3Bucket    string `env:"S3_BUCKET" validate:"required_if=Destination s3"`
	S3AccessKey string `env:"S3_ACCESS_KEY" validate:"required_if=Destination s3"`
	S3SecretKey string `env:"S3_SECRET_KEY" validate:"required_if=Destination s3"`

	// Local mirror
	LocalDir string `env:"LOCAL_DIR" validate:"required_if=Destination local"`
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Env: getEnv("ENV", "development"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Source
		VKToken:      getEnv("VK_TOKEN", ""),
		VKAPIVersion: getEnv("VK_API_VERSION", "5.131"),
		VKBaseURL:    getEnv("VK_BASE_URL", "https://api.vk.com"),
		VKRateLimit:  parseInt(getEnv("VK_RATE_LIMIT", "3"), 3),

		// Backup
		AlbumID:      getEnv("ALBUM_ID", "profile"),
		PhotoCount:   parseInt(getEnv("PHOTO_COUNT", "5"), 5),
		Folder:       getEnv("BACKUP_FOLDER", "Backup photos VK"),
		MetadataFile: getEnv("METADATA_FILE", "photo information.json"),
		Destination:  getEnv("DESTINATION", DestinationYaDisk),

		// Transport
		TransferDelay: parseDuration(getEnv("TRANSFER_DELAY", "330ms"), 330*time.Millisecond),
		HTTPTimeout:   parseDuration(getEnv("HTTP_TIMEOUT", "30s"), 30*time.Second),
		UserAgent:     getEnv("USER_AGENT", "photobackup/1.0"),

		// Yandex Disk
		YaDiskToken:   getEnv("YADISK_TOKEN", ""),
		YaDiskBaseURL: getEnv("YADISK_BASE_URL", "https://cloud-api.yandex.net"),

		// S3
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		// Local
		LocalDir: getEnv("LOCAL_DIR", "backup"),
	}
}

// LoadTokens fills tokens that are not set in the environment from a
// two-line token file: line 1 is the VK token, line 2 the Yandex Disk token.
// A missing file is not an error when both tokens are already present.
func (c *Config) LoadTokens(path string) error {
	if c.VKToken != "" && c.YaDiskToken != "" {
		return nil
	}
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() && len(lines) < 2 {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	if c.VKToken == "" && len(lines) > 0 {
		c.VKToken = lines[0]
	}
	if c.YaDiskToken == "" && len(lines) > 1 {
		c.YaDiskToken = lines[1]
	}
	return nil
}

// Validate checks the whole configuration once at startup.
func (c *Config) Validate() error {
	fields := validator.Validate(c)
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return fmt.Errorf("invalid config: %s", strings.Join(parts, "; "))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
