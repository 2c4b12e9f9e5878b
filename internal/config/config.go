// Package config loads the client configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 客户端配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Archive ArchiveConfig `yaml:"archive"`
	Sound   SoundConfig   `yaml:"sound"`
	UI      UIConfig      `yaml:"ui"`
}

// ServerConfig 对局服务器地址
type ServerConfig struct {
	Addr             string `yaml:"addr"`
	Path             string `yaml:"path"`
	HandshakeTimeout int    `yaml:"handshake_timeout"` // 握手超时（秒）
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // 为空时使用 ~/.chess-arena
}

// ArchiveConfig 对局存档（Redis）
type ArchiveConfig struct {
	Enabled     bool   `yaml:"enabled"`
	RedisAddr   string `yaml:"redis_addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	TTLHours    int    `yaml:"ttl_hours"`
	RecentLimit int    `yaml:"recent_limit"`
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// UIConfig 界面配置
type UIConfig struct {
	FlipForBlack  bool `yaml:"flip_for_black"`
	UnicodePieces bool `yaml:"unicode_pieces"`
}

// HandshakeTimeoutDuration 返回握手超时时长
func (c *ServerConfig) HandshakeTimeoutDuration() time.Duration {
	return time.Duration(c.HandshakeTimeout) * time.Second
}

// TTL 返回存档过期时长，0 表示永不过期
func (c *ArchiveConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ServerURL builds the websocket URL from addr and path. An addr that
// already carries a ws:// or wss:// scheme is kept as is.
func (c *Config) ServerURL() string {
	addr := c.Server.Addr
	if !strings.HasPrefix(addr, "ws://") && !strings.HasPrefix(addr, "wss://") {
		addr = "ws://" + addr
	}
	path := c.Server.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(addr, "/") + path
}

// Load 加载配置文件。文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             "localhost:8080",
			Path:             "/",
			HandshakeTimeout: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		Archive: ArchiveConfig{
			RedisAddr:   "localhost:6379",
			TTLHours:    720,
			RecentLimit: 20,
		},
		Sound: SoundConfig{
			Enabled: true,
			Dir:     "assets/sounds",
		},
		UI: UIConfig{
			FlipForBlack:  true,
			UnicodePieces: true,
		},
	}
}

// applyDefaults 填充被显式清空的字段
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.HandshakeTimeout <= 0 {
		c.Server.HandshakeTimeout = d.Server.HandshakeTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Archive.RedisAddr == "" {
		c.Archive.RedisAddr = d.Archive.RedisAddr
	}
	if c.Archive.RecentLimit <= 0 {
		c.Archive.RecentLimit = d.Archive.RecentLimit
	}
	if c.Archive.TTLHours < 0 {
		c.Archive.TTLHours = 0
	}
	if c.Sound.Dir == "" {
		c.Sound.Dir = d.Sound.Dir
	}
}
