package config

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ideatui/idea-tui/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	Path    string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File mirrors the on-disk TOML configuration.
type File struct {
	BaseDir         string `toml:"base_dir"`
	IdeaPath        string `toml:"idea_path"`
	TerminalCommand string `toml:"terminal_command"`
	Theme           string `toml:"theme"`
	Watch           bool   `toml:"watch"`
}

const (
	envConfigPath = "IDEA_TUI_CONFIG"
	envBaseDir    = "IDEA_TUI_BASE_DIR"
	envWidth      = "IDEA_TUI_WIDTH"
	envHeight     = "IDEA_TUI_HEIGHT"
	envShowFooter = "IDEA_TUI_FOOTER"
	envVerbose    = "IDEA_TUI_VERBOSE"
	envTrace      = "IDEA_TUI_TRACE"
	envLogFile    = "IDEA_TUI_LOG_FILE"
)

func defaultFile() File {
	home, _ := os.UserHomeDir()
	return File{
		BaseDir:         filepath.Join(home, "projects"),
		IdeaPath:        "idea",
		TerminalCommand: "kitty --directory",
		Theme:           "",
		Watch:           true,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "idea-tui", "config.toml"), nil
}

// StateDir returns where favorites and recents are persisted.
func StateDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "idea-tui"), nil
}

// Load parses configuration from CLI arguments, environment variables
// and the TOML config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("idea-tui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfigPath, ""), "path to the config file")
	baseDir := fs.String("base-dir", envOrDefault(env, envBaseDir, ""), "projects base directory (overrides config file)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	file, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if *baseDir != "" {
		file.BaseDir = *baseDir
	}

	stateDir, err := StateDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			BaseDir:         file.BaseDir,
			IdeaPath:        file.IdeaPath,
			TerminalCommand: file.TerminalCommand,
			Theme:           file.Theme,
			Watch:           file.Watch,
			StateDir:        stateDir,
			ConfigPath:      path,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":  path,
			"baseDir": file.BaseDir,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
		Path: path,
	}
	cfg.App.SaveTheme = func(name string) error {
		return SaveTheme(path, name)
	}

	return cfg, nil
}

// loadFile reads the TOML file at path, writing a commented default
// when none exists yet.
func loadFile(path string) (File, error) {
	file := defaultFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := writeFile(path, file); werr != nil {
				return File{}, werr
			}
			return file, nil
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file, nil
}

// SaveTheme rewrites the config file with the chosen theme, keeping
// all other settings.
func SaveTheme(path, theme string) error {
	file := defaultFile()
	data, err := os.ReadFile(path)
	if err == nil {
		if uerr := toml.Unmarshal(data, &file); uerr != nil {
			return fmt.Errorf("parse config %s: %w", path, uerr)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	file.Theme = theme
	return writeFile(path, file)
}

func writeFile(path string, file File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "config.*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	_, werr := tmp.WriteString(buf.String())
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmpName)
		if werr != nil {
			return werr
		}
		return cerr
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the configured paths are usable before the UI
// starts.
func Validate(cfg Config) error {
	info, err := os.Stat(cfg.App.BaseDir)
	if err != nil {
		return fmt.Errorf("base_dir %s: %w", cfg.App.BaseDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base_dir %s is not a directory", cfg.App.BaseDir)
	}
	if cfg.App.IdeaPath == "" {
		return fmt.Errorf("idea_path is empty")
	}
	if filepath.IsAbs(cfg.App.IdeaPath) {
		info, err := os.Stat(cfg.App.IdeaPath)
		if err != nil {
			return fmt.Errorf("idea_path %s: %w", cfg.App.IdeaPath, err)
		}
		if info.IsDir() {
			return fmt.Errorf("idea_path %s is a directory", cfg.App.IdeaPath)
		}
		if info.Mode()&0o111 == 0 {
			return fmt.Errorf("idea_path %s is not executable", cfg.App.IdeaPath)
		}
	} else if _, err := exec.LookPath(cfg.App.IdeaPath); err != nil {
		return fmt.Errorf("idea_path %q not found in PATH: %w", cfg.App.IdeaPath, err)
	}
	if strings.TrimSpace(cfg.App.TerminalCommand) == "" {
		return fmt.Errorf("terminal_command is empty")
	}
	return nil
}
