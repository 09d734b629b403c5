package blockchain

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	dialEVMClient    = ethclient.Dial
	getClientChainID = func(client *ethclient.Client, ctx context.Context) (*big.Int, error) {
		return client.ChainID(ctx)
	}
)

var errClientNotDialed = errors.New("evm client is not connected")

// Connection is the read-only chain access the resolver needs
type Connection interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallView(ctx context.Context, to string, data []byte) ([]byte, error)
}

// EVMClient provides EVM blockchain interaction
type EVMClient struct {
	client *ethclient.Client
	rpcURL string

	mu      sync.Mutex
	chainID *big.Int

	// testCallView allows deterministic unit tests without network sockets.
	testCallView func(ctx context.Context, to string, data []byte) ([]byte, error)
}

// NewEVMClient dials rpcURL. The chain id is fetched on first use.
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	return &EVMClient{
		client: client,
		rpcURL: rpcURL,
	}, nil
}

// NewEVMClientWithCallView creates an EVM client that uses an injected CallView implementation.
// This is intended for unit tests where RPC sockets are unavailable.
func NewEVMClientWithCallView(chainID *big.Int, callViewFn func(ctx context.Context, to string, data []byte) ([]byte, error)) *EVMClient {
	if chainID == nil {
		chainID = big.NewInt(1)
	}
	return &EVMClient{
		chainID:      chainID,
		testCallView: callViewFn,
	}
}

// RPCURL returns the endpoint the client was dialed with
func (c *EVMClient) RPCURL() string {
	return c.rpcURL
}

// ChainID returns the chain ID reported by the node, fetched once per client
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return new(big.Int).Set(c.chainID), nil
	}
	if c.client == nil {
		return nil, errClientNotDialed
	}

	chainID, err := getClientChainID(c.client, ctx)
	if err != nil {
		return nil, err
	}
	c.chainID = chainID
	return new(big.Int).Set(chainID), nil
}

// CallView executes a read-only contract call against the latest block
func (c *EVMClient) CallView(ctx context.Context, to string, data []byte) ([]byte, error) {
	if c.testCallView != nil {
		return c.testCallView(ctx, to, data)
	}
	if c.client == nil {
		return nil, errClientNotDialed
	}
	addr := common.HexToAddress(to)
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	return c.client.CallContract(ctx, msg, nil)
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
