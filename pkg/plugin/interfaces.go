package plugin

import "context"

// Generator is the interface that generator plugins must implement for go-plugin RPC.
type Generator interface {
	// Generate returns req.Count colours as "#rrggbb" strings. Hosts validate
	// and normalise every value, and discard the ones that fail.
	Generate(ctx context.Context, req GenerateRequest) ([]string, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
