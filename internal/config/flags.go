// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line flags in args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-grpc-address grpc server listen address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-s sync server address used by the client
//	-local-driver local replica backend (sqlite|file)
//	-local-path local replica path
//	-log client log file
//	-sync-interval timer trigger period
//	-probe-interval connectivity probe period
//	-max-parallel concurrent submissions per sync pass
//	-policy conflict policy (manual|server_wins|client_wins|time_based)
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-todo-keeper", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var adapterAddress, localDriver, localPath, logPath, policy string
	var syncInterval, probeInterval time.Duration
	var maxParallel int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&adapterAddress, "s", "", "Sync server address")
	fs.StringVar(&localDriver, "local-driver", "", "Local replica backend (sqlite|file)")
	fs.StringVar(&localPath, "local-path", "", "Local replica path")
	fs.StringVar(&logPath, "log", "", "Client log file")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 30s)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 5s)")
	fs.IntVar(&maxParallel, "max-parallel", 0, "Concurrent submissions per sync pass")
	fs.StringVar(&policy, "policy", "", "Conflict policy (manual|server_wins|client_wins|time_based)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
			Local: Local{
				Driver:  localDriver,
				Path:    localPath,
				LogPath: logPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval:   syncInterval,
			ProbeInterval:  probeInterval,
			MaxParallel:    maxParallel,
			ConflictPolicy: policy,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

var (
	errAddressFormat = errors.New("need address in a form `host:port`")
	errPortRange     = errors.New("port must be between 1 and 65535")
	errHostNotIP     = errors.New("host must be empty, localhost or an IP address")
)

// String returns host:port, bracketing IPv6 hosts. The zero value is "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port" and "[ipv6]:port". An empty host listens on every
// interface.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %w", errAddressFormat, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return errPortRange
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errHostNotIP
	}

	a.Host = host
	a.Port = port
	return nil
}
