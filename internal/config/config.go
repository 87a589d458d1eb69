package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultSessionDBName  = "session.db"
	defaultServerURL      = "http://localhost:8080/api"
	defaultTimeoutSeconds = 10
	appDirName            = "taskdeck"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	Expand   string `toml:"expand"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Edit     string `toml:"edit"`
	Restore  string `toml:"restore"`
	Purge    string `toml:"purge"`
	Refresh  string `toml:"refresh"`
	Logout   string `toml:"logout"`
	PaneNext string `toml:"pane_next"`
}

type Config struct {
	ServerURL      string `toml:"server_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	SessionDBPath  string `toml:"session_db_path"`
	Keys           Keymap `toml:"keys"`
}

// Timeout is the flat connection timeout for the API client.
func (c Config) Timeout() time.Duration {
	secs := c.TimeoutSeconds
	if secs <= 0 {
		secs = defaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// ResolveConfigPath places the config under the user config dir, falling back
// to the working directory when that cannot be resolved.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath = filepath.Join(filepath.Dir(path), DefaultSessionDBName)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		ServerURL:      defaultServerURL,
		TimeoutSeconds: defaultTimeoutSeconds,
		SessionDBPath:  filepath.Join(dir, DefaultSessionDBName),
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Toggle:   " ",
			Delete:   "d",
			Expand:   "enter",
			Confirm:  "enter",
			Cancel:   "esc",
			Edit:     "e",
			Restore:  "u",
			Purge:    "x",
			Refresh:  "r",
			Logout:   "L",
			PaneNext: "tab",
		},
	}
}
