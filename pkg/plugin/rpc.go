package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// GeneratorRPC implements the go-plugin Plugin interface for generator plugins.
type GeneratorRPC struct {
	plugin.Plugin
	Impl Generator
}

// Server returns an RPC server for this plugin.
func (p *GeneratorRPC) Server(*plugin.MuxBroker) (any, error) {
	return &GeneratorRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *GeneratorRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &GeneratorRPCClient{client: c}, nil
}

// GeneratorRPCServer is the RPC server implementation for generator plugins.
type GeneratorRPCServer struct {
	Impl Generator
}

// Generate implements the RPC method for colour generation.
func (s *GeneratorRPCServer) Generate(req GenerateRequest, resp *[]string) error {
	colours, err := s.Impl.Generate(context.Background(), req)
	if err != nil {
		return err
	}
	*resp = colours
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *GeneratorRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GeneratorRPCClient is the RPC client implementation for generator plugins.
type GeneratorRPCClient struct {
	client *rpc.Client
}

// NewGeneratorRPCClient wraps an existing net/rpc client.
func NewGeneratorRPCClient(c *rpc.Client) *GeneratorRPCClient {
	return &GeneratorRPCClient{client: c}
}

// Generate calls the remote Generate method. Cancelling ctx abandons the
// call; the plugin may still finish it.
func (c *GeneratorRPCClient) Generate(ctx context.Context, req GenerateRequest) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var colours []string
	call := c.client.Go("Plugin.Generate", req, &colours, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.Done:
	}
	if call.Error != nil {
		return nil, &RPCError{Message: call.Error.Error()}
	}
	return colours, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *GeneratorRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
