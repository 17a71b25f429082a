package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml"
	"github.com/samber/oops"
)

// DefaultPath 默认配置文件路径（不存在时使用默认值）
const DefaultPath = "playerviewer.toml"

// KitEntry 玩家加入时发放的初始物品
type KitEntry struct {
	Item  string `toml:"item"`
	Count int    `toml:"count"`
}

// LogConfig 日志输出与滚动策略
type LogConfig struct {
	File       string `toml:"file" env:"LOG_FILE"`
	Level      string `toml:"level" env:"LOG_LEVEL"`
	Stderr     bool   `toml:"stderr" env:"LOG_STDERR"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// ViewerConfig 玩家查看 API 的监听地址与超时
type ViewerConfig struct {
	Addr            string        `toml:"addr" env:"VIEWER_ADDR"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// ArenaConfig 游戏服务（WebSocket）配置
type ArenaConfig struct {
	Addr        string     `toml:"addr" env:"ARENA_ADDR"`
	Rooms       []string   `toml:"rooms" env:"ARENA_ROOMS" envSeparator:","`
	DefaultRoom string     `toml:"default_room"`
	Size        float64    `toml:"size"`
	Step        float64    `toml:"step"`
	StarterKit  []KitEntry `toml:"starter_kit"`
}

// Config 进程级配置：文件 → 环境变量 → 命令行，后者覆盖前者
type Config struct {
	Arena  ArenaConfig  `toml:"arena"`
	Viewer ViewerConfig `toml:"viewer"`
	Log    LogConfig    `toml:"log"`
}

// Default 返回内置默认配置
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Addr:        ":8081",
			Rooms:       []string{"overworld"},
			DefaultRoom: "overworld",
			Size:        100,
			Step:        1,
			StarterKit: []KitEntry{
				{Item: "minecraft:wooden_sword", Count: 1},
				{Item: "minecraft:bread", Count: 8},
			},
		},
		Viewer: ViewerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			File:       "app.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load 读取 TOML 配置文件并应用环境变量覆盖。path 为空或文件不存在时仅使用默认值。
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		contents, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, oops.In("config").With("path", path).Wrapf(err, "read config file")
		default:
			if err := toml.Unmarshal(contents, &cfg); err != nil {
				return cfg, oops.In("config").With("path", path).Wrapf(err, "decode config file")
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, oops.In("config").Wrapf(err, "parse env")
	}
	if cfg.Arena.DefaultRoom == "" && len(cfg.Arena.Rooms) > 0 {
		cfg.Arena.DefaultRoom = cfg.Arena.Rooms[0]
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 检查配置的基本合法性
func (c Config) Validate() error {
	if len(c.Arena.Rooms) == 0 {
		return oops.In("config").Errorf("arena.rooms must not be empty")
	}
	found := false
	for _, r := range c.Arena.Rooms {
		if r == "" {
			return oops.In("config").Errorf("arena.rooms contains an empty room id")
		}
		if r == c.Arena.DefaultRoom {
			found = true
		}
	}
	if !found {
		return oops.In("config").With("default_room", c.Arena.DefaultRoom).Errorf("arena.default_room is not listed in arena.rooms")
	}
	if c.Arena.Size <= 0 || c.Arena.Step <= 0 {
		return oops.In("config").Errorf("arena.size and arena.step must be positive")
	}
	for i, k := range c.Arena.StarterKit {
		if k.Item == "" || k.Count < 1 || k.Count > 64 {
			return oops.In("config").With("index", i).Errorf("invalid starter_kit entry %q x%d", k.Item, k.Count)
		}
	}
	if c.Viewer.Addr == "" {
		return oops.In("config").Errorf("viewer.addr must not be empty")
	}
	return nil
}
