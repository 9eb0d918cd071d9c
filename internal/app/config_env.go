package app

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.RosterCSVPath == "" {
		// Support both names; the long one matches the original deployment.
		v := os.Getenv("JACOW_REFERENCES_CSV")
		if v == "" {
			v = os.Getenv("PATH_TO_JACOW_REFERENCES_CSV")
		}
		cfg.RosterCSVPath = v
	}

	if len(cfg.AllowedLanguages) == 0 {
		if s := strings.TrimSpace(os.Getenv("JACOW_LANGUAGES")); s != "" {
			for _, tag := range strings.Split(s, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					cfg.AllowedLanguages = append(cfg.AllowedLanguages, tag)
				}
			}
		}
	}

	if cfg.BodyMinLen == 0 {
		if s := os.Getenv("JACOW_BODY_MIN_LEN"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				cfg.BodyMinLen = n
			}
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.Debug, "DEV_DEBUG")
	setBool(&cfg.Admin, "JACOW_ADMIN")
	setBool(&cfg.Verbose, "VERBOSE")
}
