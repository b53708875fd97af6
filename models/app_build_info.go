// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo holds the version, date and commit stamped into a binary by
// -ldflags. Both binaries print it at startup and the client shows it in
// the version window.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo substitutes "N/A" for every empty value.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// String formats the info the way the binaries print it on startup.
func (a AppBuildInfo) String() string {
	return "Build version: " + a.buildVersion + "\n" +
		"Build date: " + a.buildDate + "\n" +
		"Build commit: " + a.buildCommit + "\n"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
