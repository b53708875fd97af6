// Package config provides configuration loading, merging, and validation
// facilities for the client and server binaries.
//
// Configuration is assembled from multiple sources. For every field the
// first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetServerConfig] and [GetClientConfig].
package config
