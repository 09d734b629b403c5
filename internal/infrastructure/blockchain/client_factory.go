package blockchain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
)

var beforeGetEVMClientWriteLockHook = func(string) {}

// ErrNoConnection is returned when neither the network nor the options name a usable endpoint
var ErrNoConnection = errors.New("no rpc endpoint or connection configured")

// Network identifies where a contract lives. Conn wins over RPCURL when set.
type Network struct {
	Name   string
	RPCURL string
	Conn   Connection
}

// ClientFactory manages blockchain clients
type ClientFactory struct {
	evmClients map[string]*EVMClient
	mu         sync.RWMutex

	// restricted factories only dial endpoints in allowed
	restricted bool
	allowed    map[string]struct{}
}

// NewClientFactory creates a client factory that dials any endpoint it is given
func NewClientFactory() *ClientFactory {
	return &ClientFactory{
		evmClients: make(map[string]*EVMClient),
	}
}

// NewRestrictedClientFactory creates a client factory that only dials the
// given endpoints. Every other RPC URL is rejected with ErrRPCNotAllowed, so
// the client cache never grows past the allowlist.
func NewRestrictedClientFactory(allowedRPCURLs []string) *ClientFactory {
	f := NewClientFactory()
	f.restricted = true
	f.allowed = make(map[string]struct{}, len(allowedRPCURLs))
	for _, url := range allowedRPCURLs {
		if url = strings.TrimSpace(url); url != "" {
			f.allowed[url] = struct{}{}
		}
	}
	return f
}

// Connect derives the read connection for network. A read-only RPC URL in
// options takes precedence over the network's own endpoint.
func (f *ClientFactory) Connect(network Network, options *entities.SDKOptions) (Connection, error) {
	if options != nil && options.ReadOnly != nil && options.ReadOnly.RPCURL != "" {
		return f.dial(options.ReadOnly.RPCURL)
	}
	if network.Conn != nil {
		return network.Conn, nil
	}
	if network.RPCURL == "" {
		return nil, ErrNoConnection
	}
	return f.dial(network.RPCURL)
}

// Allows reports whether the factory may dial rpcURL
func (f *ClientFactory) Allows(rpcURL string) bool {
	if !f.restricted {
		return true
	}
	_, ok := f.allowed[strings.TrimSpace(rpcURL)]
	return ok
}

func (f *ClientFactory) dial(rpcURL string) (*EVMClient, error) {
	if !f.Allows(rpcURL) {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrRPCNotAllowed, rpcURL)
	}
	return f.GetEVMClient(strings.TrimSpace(rpcURL))
}

// GetEVMClient returns an EVM client for the given RPC URL
// If a client already exists for the URL, it returns the cached client
func (f *ClientFactory) GetEVMClient(rpcURL string) (*EVMClient, error) {
	f.mu.RLock()
	client, ok := f.evmClients[rpcURL]
	f.mu.RUnlock()
	if ok {
		return client, nil
	}

	beforeGetEVMClientWriteLockHook(rpcURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double check
	if client, ok := f.evmClients[rpcURL]; ok {
		return client, nil
	}

	newClient, err := NewEVMClient(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create EVM client: %w", err)
	}

	f.evmClients[rpcURL] = newClient
	return newClient, nil
}

// RegisterEVMClient injects/overrides cached client for a specific rpcURL.
// Useful for deterministic unit tests.
func (f *ClientFactory) RegisterEVMClient(rpcURL string, client *EVMClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evmClients[rpcURL] = client
}

// Close closes every cached client
func (f *ClientFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for url, client := range f.evmClients {
		client.Close()
		delete(f.evmClients, url)
	}
}
