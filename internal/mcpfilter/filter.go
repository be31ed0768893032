// Package mcpfilter provides startup-time tool filtering for MCP servers.
// Tools are assigned to clusters; profiles select which clusters are exposed.
package mcpfilter

import (
	"log/slog"
	"os"
	"strings"
)

// Profile controls which tool clusters are exposed.
type Profile string

const (
	ProfileFull     Profile = "full"
	ProfileStandard Profile = "standard"
	ProfileReadOnly Profile = "readonly"
)

// Cluster groups related tools by function.
type Cluster string

// ReadProfile reads the tool profile from env vars through getenv, which
// defaults to os.Getenv when nil.
// Priority: server-specific > global > default (full).
func ReadProfile(getenv func(string) string, serverEnvKey string) Profile {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(serverEnvKey); v != "" {
		return ParseProfile(v, serverEnvKey)
	}
	if v := getenv("MCP_TOOL_PROFILE"); v != "" {
		return ParseProfile(v, "MCP_TOOL_PROFILE")
	}
	return ProfileFull
}

// ParseProfile maps a profile name to a Profile. Unknown names warn and fall
// back to full; source names where the value came from.
func ParseProfile(s string, source string) Profile {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return ProfileFull
	case ProfileFull, ProfileStandard, ProfileReadOnly:
		return p
	default:
		slog.Warn("mcpfilter: unknown profile, defaulting to full", "value", s, "source", source)
		return ProfileFull
	}
}

// Filter returns only the tools whose cluster is allowed by the profile.
func Filter[T any](
	tools []T,
	getName func(T) string,
	profile Profile,
	toolClusters map[string]Cluster,
	profileClusters map[Profile][]Cluster,
) []T {
	if profile == ProfileFull {
		return tools
	}
	allowed := make(map[Cluster]bool)
	for _, c := range profileClusters[profile] {
		allowed[c] = true
	}
	var filtered []T
	for _, t := range tools {
		name := getName(t)
		c, ok := toolClusters[name]
		if !ok {
			slog.Warn("mcpfilter: tool not in any cluster, excluding", "tool", name, "profile", profile)
			continue
		}
		if allowed[c] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
