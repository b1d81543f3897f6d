// golden - golden-angle palette generator (swatches generator plugin)
//
// Steps the hue by the golden angle, starting from the palette's last colour
// (or a seeded random hue), so any run of consecutive colours stays well
// separated. Chroma and lightness wander a
// little inside a pastel band.
//
// Build:
//   go build -o swatches-golden
//
// Usage:
//   swatches --plugin-path ./swatches-golden --plugin-arg chroma=0.6
//
// Plugin Args:
//   chroma: base chroma (default: 0.45)
//   lightness: base lightness (default: 0.75)

package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	mathrand "math/rand/v2"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/swatches/pkg/plugin"
)

const goldenAngle = 137.50776405003785

// GoldenPlugin implements plugin.Generator.
type GoldenPlugin struct{}

// Generate returns req.Count colours.
func (p *GoldenPlugin) Generate(_ context.Context, req plugin.GenerateRequest) ([]string, error) {
	if req.Count < 1 || req.Count > plugin.MaxBatch {
		return nil, fmt.Errorf("count %d out of range [1, %d]", req.Count, plugin.MaxBatch)
	}

	seed := req.Seed
	if seed == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err == nil {
			seed = binary.LittleEndian.Uint64(b[:])
		}
	}
	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	// #nosec G404 -- deterministic colour generation, not cryptography
	rng := mathrand.New(mathrand.NewChaCha8(seedArray))

	chroma := floatArg(req.PluginArgs, "chroma", 0.45)
	lightness := floatArg(req.PluginArgs, "lightness", 0.75)

	hue := startHue(req.Existing, rng)
	out := make([]string, 0, req.Count)
	for len(out) < req.Count {
		hue = math.Mod(hue+goldenAngle, 360)
		c := colorful.Hcl(hue, chroma+rng.Float64()*0.1-0.05, lightness+rng.Float64()*0.1-0.05)
		out = append(out, c.Clamped().Hex())
	}
	return out, nil
}

// GetMetadata returns plugin metadata.
func (p *GoldenPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "golden",
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Golden-angle hue stepping in a pastel band",
	}
}

// startHue continues the golden-angle walk from the palette's last colour,
// or picks a random hue for an empty palette.
func startHue(existing []string, rng *mathrand.Rand) float64 {
	for i := len(existing) - 1; i >= 0; i-- {
		c, err := colorful.Hex(existing[i])
		if err != nil {
			continue
		}
		h, _, _ := c.Hcl()
		return h
	}
	return rng.Float64() * 360
}

func floatArg(args map[string]any, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode((&GoldenPlugin{}).GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&GoldenPlugin{})
}
