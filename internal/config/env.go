package config

import (
	"os"
	"regexp"
	"strings"
)

// Env looks up environment variables. The loader only sees the environment
// through this interface.
type Env interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the process environment
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment, mostly for tests
type MapEnv map[string]string

func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// envRefPattern matches every ${VAR_NAME} inside a value
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ReferencedVars returns the variables referenced by a raw value, in order
func ReferencedVars(rawValue string) []string {
	var vars []string
	for _, m := range envRefPattern.FindAllStringSubmatch(rawValue, -1) {
		vars = append(vars, m[1])
	}
	return vars
}

// expandValue substitutes every ${VAR} in raw. It returns the name of the
// first variable that is unset or empty.
func expandValue(raw string, env Env) (string, string) {
	if !strings.Contains(raw, "${") {
		return raw, ""
	}
	for _, name := range ReferencedVars(raw) {
		if v, ok := env.LookupEnv(name); !ok || v == "" {
			return "", name
		}
	}
	return envRefPattern.ReplaceAllStringFunc(raw, func(ref string) string {
		v, _ := env.LookupEnv(ref[2 : len(ref)-1])
		return v
	}), ""
}
