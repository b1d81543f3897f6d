package plugin

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}

// GenerateRequest asks a plugin for a batch of colours.
type GenerateRequest struct {
	// Count is how many colours to return, between 1 and MaxBatch.
	Count int `json:"count"`
	// Seed is non-zero when the host wants reproducible output.
	Seed uint64 `json:"seed,omitempty"`
	// Existing lists the palette's current colours so plugins can avoid or
	// harmonise with them.
	Existing   []string       `json:"existing,omitempty"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
}
