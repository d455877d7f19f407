package config

import (
	"errors"
	"strings"

	"github.com/joeshaw/envdecode"
)

// Env holds process settings read from the environment.
type Env struct {
	// Addr is the HTTP listen address. ENV: FORMFLOW_ADDR
	Addr string `env:"FORMFLOW_ADDR,default=:8080"`
	// LogLevel is a zap level name. ENV: FORMFLOW_LOG_LEVEL
	LogLevel string `env:"FORMFLOW_LOG_LEVEL,default=info"`
	// LogFormat is "console" or "json". ENV: FORMFLOW_LOG_FORMAT
	LogFormat string `env:"FORMFLOW_LOG_FORMAT,default=console"`
	// ConfigPath points at the YAML config. ENV: FORMFLOW_CONFIG
	ConfigPath string `env:"FORMFLOW_CONFIG"`
	// FormsSource is an OpenAPI document with extra forms. ENV: FORMFLOW_FORMS
	FormsSource string `env:"FORMFLOW_FORMS"`
	// Title is the page title. ENV: FORMFLOW_TITLE
	Title string `env:"FORMFLOW_TITLE,default=Bistro"`
	// CORSOrigins is a comma separated origin list. ENV: FORMFLOW_CORS_ORIGINS
	CORSOrigins string `env:"FORMFLOW_CORS_ORIGINS"`
}

// Origins splits CORSOrigins, dropping blanks.
func (e Env) Origins() []string {
	var out []string
	for _, origin := range strings.Split(e.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadEnv decodes Env. Defaults come from the struct tags; an environment
// with none of the variables set is not an error.
func LoadEnv() (Env, error) {
	var env Env
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Env{}, err
	}
	return env, nil
}
