// Package plugin provides the public API for swatches generator plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// GeneratorPluginName is the name the host dispenses from a plugin binary.
	GeneratorPluginName = "generator"

	// MaxBatch is the largest Count a host asks for in one Generate call.
	MaxBatch = 64
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1, // Bump when GenerateRequest or the RPC methods change shape.
	MagicCookieKey:   "SWATCHES_PLUGIN",
	MagicCookieValue: "swatches_generator",
}

// PluginMap returns the plugin set served by a generator binary.
func PluginMap(impl Generator) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		GeneratorPluginName: &GeneratorRPC{Impl: impl},
	}
}

// Serve runs impl as a generator plugin. It does not return until the host
// disconnects.
func Serve(impl Generator) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
