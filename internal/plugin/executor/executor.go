// Package executor runs external generator plugins over go-plugin RPC and
// adapts them to the in-process generator interface.
package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	swplugin "github.com/jmylchreest/swatches/pkg/plugin"
)

// ProbeTimeout bounds the --plugin-info query.
const ProbeTimeout = 5 * time.Second

// ErrNotExecutable is returned when the plugin path is a directory or lacks
// an executable bit.
var ErrNotExecutable = errors.New("plugin is not an executable file")

// Remote is the subset of the plugin API the host calls per batch.
type Remote interface {
	Generate(ctx context.Context, req swplugin.GenerateRequest) ([]string, error)
}

// Executor owns one plugin process. The process is started lazily on the
// first Generate and kept until Close.
type Executor struct {
	path   string
	logger hclog.Logger

	client *plugin.Client
	rpc    *swplugin.GeneratorRPCClient
}

// New returns an executor for the plugin binary at path.
func New(path string, logger hclog.Logger) (*Executor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat plugin: %w", err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotExecutable)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Executor{path: path, logger: logger.Named("plugin")}, nil
}

// Path returns the plugin binary path.
func (e *Executor) Path() string { return e.path }

// Generate asks the plugin for a batch of colours.
func (e *Executor) Generate(ctx context.Context, req swplugin.GenerateRequest) ([]string, error) {
	client, err := e.rpcClient()
	if err != nil {
		return nil, err
	}
	return client.Generate(ctx, req)
}

// Close kills the plugin process, if one was started.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpc = nil
	}
}

func (e *Executor) rpcClient() (*swplugin.GeneratorRPCClient, error) {
	if e.rpc != nil {
		return e.rpc, nil
	}

	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: swplugin.Handshake,
		Plugins: map[string]plugin.Plugin{
			swplugin.GeneratorPluginName: &swplugin.GeneratorRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(swplugin.GeneratorPluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*swplugin.GeneratorRPCClient)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpc = client
	return client, nil
}

// Probe runs the plugin with --plugin-info and checks that its protocol
// version is compatible with this host.
func Probe(ctx context.Context, runner ProcessRunner, path string) (swplugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	stdout, stderr, err := runner.Run(ctx, path, []string{"--plugin-info"}, nil)
	if err != nil {
		if len(stderr) > 0 {
			return swplugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w: %s", err, stderr)
		}
		return swplugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info swplugin.PluginInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return swplugin.PluginInfo{}, fmt.Errorf("failed to parse plugin info: %w", err)
	}
	if err := swplugin.CheckCompatible(info.ProtocolVersion); err != nil {
		return info, fmt.Errorf("plugin %q: %w", info.Name, err)
	}
	return info, nil
}
