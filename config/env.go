package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	DefaultTrue  = []string{"1", "yes", "true", "on"}  // DefaultTrue are the values considered "true" by [Env.Bool], and can be changed.
	DefaultFalse = []string{"0", "no", "false", "off"} // DefaultFalse are the values considered "false" by [Env.Bool], and can be changed.
)

// Env is a snapshot of environment variables with case-insensitive keys.
type Env map[string]string

// OSEnv returns a snapshot of the process environment.
func OSEnv() Env {
	return ParseEnv(os.Environ())
}

// ParseEnv creates an [Env] from "KEY=value" pairs, as returned by [os.Environ].
func ParseEnv(environ []string) Env {
	env := Env{}
	for _, kv := range environ {
		key, val, found := strings.Cut(kv, "=")
		if !found {
			continue
		}
		env[strings.ToLower(key)] = val
	}
	return env
}

// Lookup returns the trimmed value for key, and false if it isn't set or is blank.
func (e Env) Lookup(key string) (string, bool) {
	val, ok := e[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	val = strings.TrimSpace(val)
	return val, len(val) > 0
}

// Val returns the value for key, or defaultVal if it isn't set or is blank.
func (e Env) Val(key string, defaultVal string) string {
	if val, ok := e.Lookup(key); ok {
		return val
	}
	return defaultVal
}

// Bool interprets a value using [DefaultTrue] and [DefaultFalse].
// The defaultVal is returned if the variable isn't set, or isn't recognized.
func (e Env) Bool(key string, defaultVal bool) bool {
	val, ok := e.Lookup(key)
	if !ok {
		return defaultVal
	}
	val = strings.ToLower(val)
	for _, t := range DefaultTrue {
		if val == t {
			return true
		}
	}
	for _, f := range DefaultFalse {
		if val == f {
			return false
		}
	}
	return defaultVal
}

// Int returns the value for key as an integer, or defaultVal if it isn't set or isn't valid.
func (e Env) Int(key string, defaultVal int64) int64 {
	val, ok := e.Lookup(key)
	if !ok {
		return defaultVal
	}
	ival, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return ival
}

// Duration returns the value for key as a [time.Duration], or defaultVal if it isn't set or isn't valid.
func (e Env) Duration(key string, defaultVal time.Duration) time.Duration {
	val, ok := e.Lookup(key)
	if !ok {
		return defaultVal
	}
	dval, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return dval
}
