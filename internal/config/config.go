package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides DefaultPath.
const (
	EnvPath     = "VOXARENA_CONFIG"
	DefaultPath = "config/server.toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Network   NetworkConfig   `toml:"network"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Game      GameConfig      `toml:"game"`
	Client    ClientConfig    `toml:"client"`
	Logging   LoggingConfig   `toml:"logging"`
	Debug     DebugConfig     `toml:"debug"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	ID        int    `toml:"id"`
	StartTime int64  // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress  string        `toml:"bind_address"`
	Path         string        `toml:"path"` // websocket endpoint
	TickRate     time.Duration `toml:"tick_rate"`
	InQueueSize  int           `toml:"in_queue_size"`
	OutQueueSize int           `toml:"out_queue_size"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	MessagesPerSecond int  `toml:"messages_per_second"`
}

type GameConfig struct {
	LevelPath      string        `toml:"level_path"`
	WeaponsPath    string        `toml:"weapons_path"` // empty = built-in table
	ScriptsDir     string        `toml:"scripts_dir"`  // empty = no Lua rules
	SpawnDelay     time.Duration `toml:"spawn_delay"`
	RespawnDelay   time.Duration `toml:"respawn_delay"`
	PickupInterval time.Duration `toml:"pickup_interval"`
	Seed           uint64        `toml:"seed"` // 0 = time based
}

type ClientConfig struct {
	ServerURL    string        `toml:"server_url"`
	MinFrameTime time.Duration `toml:"min_frame_time"`
	MaxFrameTime time.Duration `toml:"max_frame_time"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Profile string `toml:"profile"` // "cpu", "mem" or "" (off)
}

// Path returns the config file location from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Network.TickRate <= 0 {
		return fmt.Errorf("network.tick_rate must be positive, got %s", c.Network.TickRate)
	}
	if c.Client.MinFrameTime < 0 || c.Client.MaxFrameTime < c.Client.MinFrameTime {
		return fmt.Errorf("client frame time range [%s, %s] is invalid",
			c.Client.MinFrameTime, c.Client.MaxFrameTime)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("debug.profile %q: want cpu, mem or empty", c.Debug.Profile)
	}
	return nil
}

// Defaults returns the configuration used for keys a file leaves out.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "voxarena",
			ID:   1,
		},
		Network: NetworkConfig{
			BindAddress:  "0.0.0.0:7001",
			Path:         "/ws",
			TickRate:     time.Second / 30,
			InQueueSize:  128,
			OutQueueSize: 256,
			WriteTimeout: 10 * time.Second,
			ReadTimeout:  60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			MessagesPerSecond: 120,
		},
		Game: GameConfig{
			LevelPath:      "data/levels/arena.json",
			ScriptsDir:     "scripts",
			SpawnDelay:     time.Second,
			RespawnDelay:   3 * time.Second,
			PickupInterval: 10 * time.Second,
		},
		Client: ClientConfig{
			ServerURL:    "ws://127.0.0.1:7001/ws",
			MinFrameTime: time.Millisecond,
			MaxFrameTime: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
