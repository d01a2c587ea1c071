package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system. It loads a local .env file when
// present, applies defaults, reads ./config/settings.yaml if it exists, and
// lets SCREENER_* environment variables override everything.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		// .env is optional; env vars already set win over its contents.
		_ = godotenv.Load()

		setDefaults()

		viper.SetEnvPrefix("SCREENER")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// No config file is fine; defaults and env vars apply.
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 22022)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1<<20)
	viper.SetDefault("server.max_upload_bytes", int64(2<<30))

	viper.SetDefault("database.path", "./data/screener.db")
	viper.SetDefault("database.log_queries", false)

	viper.SetDefault("storage.uploads_dir", "./uploads")
	viper.SetDefault("storage.generated_tags_dir", "./generated_tags")

	viper.SetDefault("generation.python_bin", "python3")
	viper.SetDefault("generation.script_path", "./scripts/generate_tags.py")
	viper.SetDefault("generation.timeout", 15*time.Minute)

	viper.SetDefault("waveform.ffmpeg_path", "ffmpeg")
	viper.SetDefault("waveform.ffprobe_path", "ffprobe")
	viper.SetDefault("waveform.timeout", 2*time.Minute)
	viper.SetDefault("waveform.resolution", 1000)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("storage.uploads_dir") == "" {
		return fmt.Errorf("storage.uploads_dir must not be empty")
	}

	if viper.GetInt("waveform.resolution") <= 0 {
		viper.Set("waveform.resolution", 1000)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Storage.UploadsDir == "" {
		return fmt.Errorf("storage.uploads_dir must not be empty")
	}
	if c.Waveform.Resolution <= 0 {
		c.Waveform.Resolution = 1000
	}
	return nil
}
