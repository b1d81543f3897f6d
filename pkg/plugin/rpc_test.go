package plugin

import (
	"context"
	"errors"
	"net"
	"net/rpc"
	"reflect"
	"testing"
)

type mockGenerator struct {
	colours     []string
	metadata    PluginInfo
	generateErr error
	lastReq     GenerateRequest
}

func (m *mockGenerator) Generate(_ context.Context, req GenerateRequest) ([]string, error) {
	m.lastReq = req
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.colours[:min(req.Count, len(m.colours))], nil
}

func (m *mockGenerator) GetMetadata() PluginInfo {
	return m.metadata
}

// pipeClient serves impl over an in-memory connection the same way go-plugin
// registers it, and returns a client for it.
func pipeClient(t *testing.T, impl Generator) *GeneratorRPCClient {
	t.Helper()

	server := rpc.NewServer()
	if err := server.RegisterName("Plugin", &GeneratorRPCServer{Impl: impl}); err != nil {
		t.Fatalf("RegisterName() error = %v", err)
	}
	serverConn, clientConn := net.Pipe()
	go server.ServeConn(serverConn)

	client := rpc.NewClient(clientConn)
	t.Cleanup(func() { _ = client.Close() })
	return NewGeneratorRPCClient(client)
}

func TestGeneratorRPC(t *testing.T) {
	mock := &mockGenerator{}
	p := &GeneratorRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := p.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}
		rpcServer, ok := server.(*GeneratorRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := p.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if _, ok := client.(*GeneratorRPCClient); !ok {
			t.Fatal("Client() returned wrong type")
		}
	})
}

func TestGeneratorRPCRoundTrip(t *testing.T) {
	mock := &mockGenerator{
		colours: []string{"#ff0000", "#00ff00", "#0000ff"},
		metadata: PluginInfo{
			Name:            "test-generator",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			Description:     "Test generator plugin",
		},
	}
	client := pipeClient(t, mock)

	req := GenerateRequest{Count: 2, Seed: 42, Existing: []string{"#123456"}}
	got, err := client.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := []string{"#ff0000", "#00ff00"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Generate() = %v, want %v", got, want)
	}
	if mock.lastReq.Seed != 42 || !reflect.DeepEqual(mock.lastReq.Existing, req.Existing) {
		t.Errorf("plugin saw request %+v, want %+v", mock.lastReq, req)
	}

	info, err := client.GetMetadata()
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if info != mock.metadata {
		t.Errorf("GetMetadata() = %+v, want %+v", info, mock.metadata)
	}
}

func TestGeneratorRPCError(t *testing.T) {
	client := pipeClient(t, &mockGenerator{generateErr: errors.New("model unavailable")})

	_, err := client.Generate(context.Background(), GenerateRequest{Count: 1})
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("Generate() error = %v, want *RPCError", err)
	}
	if rpcErr.Message != "model unavailable" {
		t.Errorf("RPCError.Message = %q, want %q", rpcErr.Message, "model unavailable")
	}
}

func TestGeneratorRPCCancelled(t *testing.T) {
	client := pipeClient(t, &mockGenerator{colours: []string{"#ffffff"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Generate(ctx, GenerateRequest{Count: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestPluginMap(t *testing.T) {
	m := PluginMap(&mockGenerator{})
	if _, ok := m[GeneratorPluginName].(*GeneratorRPC); !ok {
		t.Errorf("PluginMap()[%q] missing or wrong type", GeneratorPluginName)
	}
}
