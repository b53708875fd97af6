// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment following the `env` and
// `envPrefix` tags of [StructuredConfig]. Variables holding only whitespace
// are treated as unset so they cannot hide a value from flags or JSON.
func parseEnv(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment()}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

func environment() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			vars[key] = value
		}
	}
	return vars
}
