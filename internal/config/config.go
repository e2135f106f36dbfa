package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

const (
	APP_NAME            = "listsync"
	CONFIG_FILE_NAME    = "config.yaml"
	CONFIG_FILE_RELPATH = APP_NAME + "/" + CONFIG_FILE_NAME

	DEFAULT_LOG_LEVEL = zerolog.WarnLevel

	COLOR_MODE_AUTO   = "auto"
	COLOR_MODE_ALWAYS = "always"
	COLOR_MODE_NEVER  = "never"
)

var (
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)

// File is the content of the optional configuration file.
type File struct {
	LogLevel string `yaml:"log-level"`
	Color    string `yaml:"color"` //auto, always or never
}

// Config is the resolved configuration of the CLI: environment variables take precedence over the file.
type Config struct {
	LogLevel     zerolog.Level
	Colorize     bool
	ColorProfile termenv.Profile

	// empty if no configuration file was found
	FilePath string
}

// Load resolves the configuration from the process environment and the configuration file
// found in the XDG config directories, if any.
func Load() (Config, error) {
	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
	if err != nil {
		path = ""
	}
	return LoadFrom(path, os.LookupEnv)
}

// LoadFrom resolves the configuration from the file at path (ignored if empty) and from the
// variables returned by lookupEnv.
func LoadFrom(path string, lookupEnv LookupEnvFn) (Config, error) {
	env := ReadEnvironment(lookupEnv)

	var file File
	if path != "" {
		f, err := ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		file = f
	}

	config := Config{
		LogLevel: DEFAULT_LOG_LEVEL,
		FilePath: path,
	}

	//log level

	levelName := file.LogLevel
	if env.LogLevel != "" {
		levelName = env.LogLevel
	}

	if levelName != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(levelName))
		if err != nil {
			return Config{}, fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
		config.LogLevel = level
	}

	//colors

	switch file.Color {
	case "", COLOR_MODE_AUTO:
		config.Colorize = env.ShouldColorize()
	case COLOR_MODE_ALWAYS:
		config.Colorize = !env.NoColor
	case COLOR_MODE_NEVER:
		config.Colorize = env.ForceColor && !env.NoColor
	default:
		return Config{}, fmt.Errorf("%w: unknown color mode %q", ErrInvalidConfigFile, file.Color)
	}

	config.ColorProfile = termenv.Ascii
	if config.Colorize {
		config.ColorProfile = env.ColorProfile()
	}

	return config, nil
}

func ReadFile(path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, err
		}
		return File{}, fmt.Errorf("failed to read the configuration file: %w", err)
	}

	var file File
	if err := yaml.UnmarshalWithOptions(content, &file, yaml.Strict()); err != nil {
		return File{}, fmt.Errorf("%w %s: %s", ErrInvalidConfigFile, path, err.Error())
	}
	return file, nil
}

// GetConfigFilePath returns the path of the configuration file, the file is created with default
// content if it does not exist.
func GetConfigFilePath() (string, error) {
	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
	if err != nil {
		path, err = xdg.ConfigFile(CONFIG_FILE_RELPATH)
		if err != nil {
			return "", err
		}

		content, err := yaml.Marshal(File{LogLevel: DEFAULT_LOG_LEVEL.String(), Color: COLOR_MODE_AUTO})
		if err != nil {
			return "", err
		}

		if err := os.WriteFile(path, content, 0o600); err != nil {
			return "", err
		}
	}

	return path, nil
}
