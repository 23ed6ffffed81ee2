package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for a load run.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Data source configuration
	Data DataConfig `mapstructure:"data"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DatabaseConfig holds the graph database connection settings
type DatabaseConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"` // empty selects the server default
}

// DataConfig names the directory and file names of the four sources
type DataConfig struct {
	Dir            string `mapstructure:"dir"`
	TravellersFile string `mapstructure:"travellers_file"`
	HotelsFile     string `mapstructure:"hotels_file"`
	ReviewsFile    string `mapstructure:"reviews_file"`
	VisaFile       string `mapstructure:"visa_file"`
}

// TravellersPath returns the full path of the travellers file.
func (d DataConfig) TravellersPath() string { return filepath.Join(d.Dir, d.TravellersFile) }

// HotelsPath returns the full path of the hotels file.
func (d DataConfig) HotelsPath() string { return filepath.Join(d.Dir, d.HotelsFile) }

// ReviewsPath returns the full path of the reviews file.
func (d DataConfig) ReviewsPath() string { return filepath.Join(d.Dir, d.ReviewsFile) }

// VisaPath returns the full path of the visa file.
func (d DataConfig) VisaPath() string { return filepath.Join(d.Dir, d.VisaFile) }

// Load reads the credentials file at path and layers defaults, file
// values and environment variables into a Config. Precedence, lowest
// first: built-in defaults, credentials file, environment. Flags are
// applied by the caller on top.
func Load(path string) (*Config, error) {
	// A .env in the working directory feeds the environment first.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	creds, err := ParseCredentialsFile(path)
	if err != nil {
		return nil, err
	}
	applyCredentials(v, creds)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// ParseCredentialsFile reads a plain KEY=VALUE file. Lines without a
// separator are skipped, values may contain further separators (the
// split happens on the first one), whitespace around keys and values
// is trimmed, and a repeated key keeps its last value.
func ParseCredentialsFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	defer f.Close()

	creds := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "=") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		creds[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	return creds, nil
}

// setDefaults sets default configuration values. Connection
// credentials deliberately have none: a run that supplies no URI,
// username or password must fail validation rather than silently
// reach a default server.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")

	// Data defaults
	v.SetDefault("data.dir", ".")
	v.SetDefault("data.travellers_file", "users.csv")
	v.SetDefault("data.hotels_file", "hotels.csv")
	v.SetDefault("data.reviews_file", "reviews.csv")
	v.SetDefault("data.visa_file", "visa.csv")
}

// applyCredentials maps recognized credentials-file keys onto config
// keys. Unrecognized keys are ignored.
func applyCredentials(v *viper.Viper, creds map[string]string) {
	keys := map[string]string{
		"URI":      "database.uri",
		"USERNAME": "database.username",
		"PASSWORD": "database.password",
		"DATABASE": "database.database",
	}
	for fileKey, configKey := range keys {
		if value, ok := creds[fileKey]; ok {
			v.Set(configKey, value)
		}
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Database.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Database.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Database.Password = pass
	}
	if db := os.Getenv("NEO4J_DATABASE"); db != "" {
		config.Database.Database = db
	}
}

// Validate checks that the settings a run cannot proceed without are
// present. It runs before any file or database I/O.
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("URI is required (credentials file URI key or NEO4J_URI)")
	}
	if c.Database.Username == "" {
		return fmt.Errorf("USERNAME is required (credentials file USERNAME key or NEO4J_USER)")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("PASSWORD is required (credentials file PASSWORD key or NEO4J_PASSWORD)")
	}
	return nil
}
