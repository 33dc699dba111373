package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Storage    StorageConfig    `yaml:"storage"`
	Thumbnail  ThumbnailConfig  `yaml:"thumbnail"`
	View       ViewConfig       `yaml:"view"`
	Pagination PaginationConfig `yaml:"pagination"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

// StorageConfig controls where file bytes live. Mode "database" keeps them in
// the files.data column; mode "s3" stores them in an object bucket and the
// file row only carries the storage key.
type StorageConfig struct {
	Mode             string   `yaml:"mode"`
	MaxFileSize      int64    `yaml:"max_file_size"`
	AllowedTypes     []string `yaml:"allowed_types"`
	DefaultUserQuota int64    `yaml:"default_user_quota"`
	S3               S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint            string `yaml:"endpoint"`
	Region              string `yaml:"region"`
	Bucket              string `yaml:"bucket"`
	AccessKey           string `yaml:"access_key"`
	SecretKey           string `yaml:"secret_key"`
	PresignExpireMinute int    `yaml:"presign_expire_minute"`
}

type ThumbnailConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
}

// ViewConfig controls the ephemeral view handles minted for in-browser
// preview. Handles expire on TTL and are never persisted.
type ViewConfig struct {
	TokenTTLSeconds int `yaml:"token_ttl_seconds"`
}

type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var AppConfig *Config

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Mode == "" {
		cfg.Storage.Mode = "database"
	}
	if cfg.Storage.MaxFileSize == 0 {
		cfg.Storage.MaxFileSize = 16 << 20
	}
	if cfg.Storage.DefaultUserQuota == 0 {
		cfg.Storage.DefaultUserQuota = 1 << 30
	}
	if cfg.Storage.S3.PresignExpireMinute == 0 {
		cfg.Storage.S3.PresignExpireMinute = 15
	}
	if cfg.Thumbnail.Width == 0 {
		cfg.Thumbnail.Width = 200
	}
	if cfg.Thumbnail.Height == 0 {
		cfg.Thumbnail.Height = 200
	}
	if cfg.Thumbnail.Quality == 0 {
		cfg.Thumbnail.Quality = 80
	}
	if cfg.View.TokenTTLSeconds == 0 {
		cfg.View.TokenTTLSeconds = 600
	}
	if cfg.Pagination.DefaultPageSize == 0 {
		cfg.Pagination.DefaultPageSize = 20
	}
	if cfg.Pagination.MaxPageSize == 0 {
		cfg.Pagination.MaxPageSize = 100
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24
	}
}
