package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Driver   string `yaml:"driver" validate:"required|in:file,buntdb"`
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AlarmConfig struct {
	CheckInterval time.Duration `yaml:"checkInterval" validate:"required|min:1"`
	Tolerance     float64       `yaml:"tolerance"`
	MaxPerOwner   int           `yaml:"maxPerOwner" validate:"required|uint|min:1"`
}

type SessionConfig struct {
	// TTL of a pending wizard; zero keeps sessions until they are completed or cancelled.
	TTL time.Duration `yaml:"ttl"`
}

type TelegramConfig struct {
	Token       string        `yaml:"token" validate:"required"`
	PollTimeout time.Duration `yaml:"pollTimeout"`
}

type MarketConfig struct {
	QuoteAsset string        `yaml:"quoteAsset" validate:"required"`
	SymbolTTL  time.Duration `yaml:"symbolTTL"`
	Timeout    time.Duration `yaml:"timeout"`
	Testnet    bool          `yaml:"testnet"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Alarm       AlarmConfig    `yaml:"alarm"`
	Session     SessionConfig  `yaml:"session"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Telegram    TelegramConfig `yaml:"telegram"`
	Market      MarketConfig   `yaml:"market"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
