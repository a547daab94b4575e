package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Library     LibraryConfig     `mapstructure:"library"`
	Backup      BackupConfig      `mapstructure:"backup"`
	Remote      RemoteTarget      `mapstructure:"remote"`
	Network     NetworkConfig     `mapstructure:"network"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type LibraryConfig struct {
	Path       string `mapstructure:"path"`
	FolderName string `mapstructure:"folder_name"`
}

type BackupConfig struct {
	TargetFolder    string        `mapstructure:"target_folder"`
	Schedule        string        `mapstructure:"schedule"`
	StatePath       string        `mapstructure:"state_path"`
	WatchdogCeiling time.Duration `mapstructure:"watchdog_ceiling"`
}

type RemoteTarget struct {
	Type string `mapstructure:"type"`

	// AWS S3
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`

	// Google Drive
	CredentialsFile string `mapstructure:"credentials_file"`
	FolderID        string `mapstructure:"folder_id"`
}

type NetworkConfig struct {
	UnrestrictedInterfaces []string `mapstructure:"unrestricted_interfaces"`
}

type DiagnosticsConfig struct {
	Telegram bool   `mapstructure:"telegram"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "mediasafe")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("library.folder_name", "Photos from my device")
	v.SetDefault("backup.target_folder", "Backups")
	v.SetDefault("backup.schedule", "0 0 * * * *")
	v.SetDefault("backup.state_path", "mediasafe.db")
	v.SetDefault("backup.watchdog_ceiling", 5*time.Minute)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Library.Path == "" {
		return fmt.Errorf("library.path is required")
	}
	if c.Backup.StatePath == "" {
		return fmt.Errorf("backup.state_path is required")
	}
	if c.Backup.WatchdogCeiling < 0 {
		return fmt.Errorf("backup.watchdog_ceiling must not be negative")
	}

	switch c.Remote.Type {
	case "s3":
		if c.Remote.Bucket == "" {
			return fmt.Errorf("remote: bucket is required for s3")
		}
		if c.Remote.Region == "" {
			return fmt.Errorf("remote: region is required for s3")
		}
	case "gdrive":
		if c.Remote.CredentialsFile == "" {
			return fmt.Errorf("remote: credentials_file is required for gdrive")
		}
		if c.Remote.FolderID == "" {
			return fmt.Errorf("remote: folder_id is required for gdrive")
		}
	case "":
		return fmt.Errorf("remote.type is required")
	default:
		return fmt.Errorf("remote.type must be s3 or gdrive, got %q", c.Remote.Type)
	}

	if c.Diagnostics.Telegram && c.Diagnostics.BotToken == "" {
		return fmt.Errorf("diagnostics: bot_token is required when telegram is enabled")
	}

	return nil
}
