package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cli/go-gh/pkg/auth"
	"github.com/joho/godotenv"
)

// tokenForHost is swapped in tests so they never read the real gh config.
var tokenForHost = auth.TokenForHost

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Token returns the API token and a short description of where it came from.
// GITHUB_TOKEN wins over GH_TOKEN; the gh CLI credential store is consulted
// last and only when UseGHAuth is set. An empty token means unauthenticated.
func (c Config) Token() (token, source string) {
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, key
		}
	}
	if !c.UseGHAuth {
		return "", ""
	}
	if v, src := tokenForHost(c.Host()); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), "gh:" + src
	}
	return "", ""
}
