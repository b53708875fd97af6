// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// Local replica backends.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base address of the sync server.
	HTTPAddress string
	// RequestTimeout is the timeout of every single outbound request.
	RequestTimeout time.Duration
}

// ClientStorage holds the local replica settings.
type ClientStorage struct {
	// Driver is DriverSQLite or DriverFile.
	Driver string
	// Path is the SQLite database file or the JSON state file.
	Path string
	// LogPath is the client log file.
	LogPath string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// SyncInterval is the period of the timer trigger.
	SyncInterval time.Duration
	// ProbeInterval is the period of the connectivity probe.
	ProbeInterval time.Duration
	// MaxParallel bounds concurrent submissions within one pass.
	MaxParallel int
	// ConflictPolicy settles conflicts after each pass.
	ConflictPolicy models.ConflictPolicy
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	policy, err := models.ParseConflictPolicy(cfg.Workers.ConflictPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkerConfigs, err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Driver:  cfg.Storage.Local.Driver,
			Path:    cfg.Storage.Local.Path,
			LogPath: cfg.Storage.Local.LogPath,
		},
		Workers: ClientWorkers{
			SyncInterval:   cfg.Workers.SyncInterval,
			ProbeInterval:  cfg.Workers.ProbeInterval,
			MaxParallel:    cfg.Workers.MaxParallel,
			ConflictPolicy: policy,
		},
	}

	return clientCfg, clientCfg.validate()
}
