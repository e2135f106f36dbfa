package config

import (
	"strings"

	"github.com/muesli/termenv"
)

const (
	LOG_LEVEL_ENV_VAR_NAME = "LISTSYNC_LOG_LEVEL"
)

type LookupEnvFn func(name string) (string, bool)

// Environment holds the environment variables the CLI depends on.
type Environment struct {
	ForceColor          bool
	TruecolorColorterm  bool
	Term256ColorCapable bool
	NoColor             bool
	LogLevel            string
}

func ReadEnvironment(lookupEnv LookupEnvFn) Environment {
	var env Environment

	// FORCE COLOR

	if s, ok := lookupEnv("FORCE_COLOR"); ok {
		env.ForceColor = isTruthy(s)
	}

	//TERMCOLOR

	colorterm, _ := lookupEnv("COLORTERM")
	env.TruecolorColorterm = colorterm == "truecolor" || colorterm == "24bit"

	//NO_COLOR

	if s, ok := lookupEnv("NO_COLOR"); ok {
		env.NoColor = isTruthy(s)
	}

	//TERM

	term, _ := lookupEnv("TERM")
	env.Term256ColorCapable = strings.Contains(term, "256color")

	env.LogLevel, _ = lookupEnv(LOG_LEVEL_ENV_VAR_NAME)
	return env
}

func (e Environment) ShouldColorize() bool {
	return !e.NoColor && (e.ForceColor || e.TruecolorColorterm || e.Term256ColorCapable)
}

func (e Environment) ColorProfile() termenv.Profile {
	switch {
	case e.TruecolorColorterm:
		return termenv.TrueColor
	case e.Term256ColorCapable:
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

func isTruthy(s string) bool {
	return len(s) != 0 && s != "false" && s != "0"
}
