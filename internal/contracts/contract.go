// Package contracts provides the typed client wrappers returned for a
// resolved contract address. Clients are read-only: they encode view calls
// with the resolved ABI and never send transactions.
package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// maxRoleMembers bounds the members RoleMembers enumerates
const maxRoleMembers = 1000

// Storage downloads off-chain metadata documents
type Storage interface {
	DownloadJSON(ctx context.Context, uri string) (map[string]interface{}, error)
}

// Params carries everything a constructor needs to build a client
type Params struct {
	Network    blockchain.Network
	Conn       blockchain.Connection
	Address    string
	Storage    Storage
	Options    *entities.SDKOptions
	Definition *abis.Definition
	ChainID    *big.Int
	Descriptor entities.ContractDescriptor
}

// Client is the handle returned for a resolved contract
type Client interface {
	Type() entities.ContractType
	Address() string
	ChainID() *big.Int
	ABI() *abi.ABI
	Band() abis.Band
	Roles() []entities.Role
	Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
	Metadata(ctx context.Context) (map[string]interface{}, error)
}

// contract implements the behaviour shared by every client type
type contract struct {
	network    blockchain.Network
	conn       blockchain.Connection
	address    string
	storage    Storage
	options    *entities.SDKOptions
	definition *abis.Definition
	chainID    *big.Int
	descriptor entities.ContractDescriptor
}

func newContract(p Params) *contract {
	chainID := new(big.Int)
	if p.ChainID != nil {
		chainID.Set(p.ChainID)
	}
	return &contract{
		network:    p.Network,
		conn:       p.Conn,
		address:    common.HexToAddress(p.Address).Hex(),
		storage:    p.Storage,
		options:    p.Options,
		definition: p.Definition,
		chainID:    chainID,
		descriptor: p.Descriptor,
	}
}

func (c *contract) Type() entities.ContractType {
	return c.descriptor.Type
}

func (c *contract) Address() string {
	return c.address
}

func (c *contract) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *contract) ABI() *abi.ABI {
	return c.definition.ABI
}

func (c *contract) Band() abis.Band {
	return c.definition.Band
}

func (c *contract) Roles() []entities.Role {
	return append([]entities.Role(nil), c.descriptor.Roles...)
}

// Call performs a read-only call of a view or pure method
func (c *contract) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	m, ok := c.definition.ABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %s", domainerrors.ErrInvalidInput, c.definition.Asset, method)
	}
	if !m.IsConstant() {
		return nil, fmt.Errorf("%w: %s is not a read-only method", domainerrors.ErrInvalidInput, method)
	}

	data, err := c.definition.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidInput, err)
	}
	out, err := c.conn.CallView(ctx, c.address, data)
	if err != nil {
		return nil, err
	}
	vals, err := c.definition.ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", method, err)
	}
	return vals, nil
}

// Metadata downloads the contract-level metadata document and validates it
// against the type's schema
func (c *contract) Metadata(ctx context.Context) (map[string]interface{}, error) {
	if c.storage == nil {
		return nil, fmt.Errorf("no storage configured for %s", c.address)
	}
	uri, err := callTyped[string](ctx, c, "contractURI")
	if err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, fmt.Errorf("%w: %s has no contract metadata", domainerrors.ErrNotFound, c.address)
	}

	doc, err := c.storage.DownloadJSON(ctx, uri)
	if err != nil {
		return nil, err
	}
	if c.descriptor.Schema != nil {
		if err := c.descriptor.Schema.Validate(doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidInput, err)
		}
	}
	return doc, nil
}

// HasRole reports whether account holds role on the contract
func (c *contract) HasRole(ctx context.Context, role entities.Role, account string) (bool, error) {
	if !c.descriptor.HasRole(role) {
		return false, fmt.Errorf("%w: %s does not support role %s", domainerrors.ErrInvalidInput, c.descriptor.Type, role)
	}
	return callTyped[bool](ctx, c, "hasRole", RoleHash(role), common.HexToAddress(account))
}

// RoleMembers lists the accounts holding role
func (c *contract) RoleMembers(ctx context.Context, role entities.Role) ([]string, error) {
	if !c.descriptor.HasRole(role) {
		return nil, fmt.Errorf("%w: %s does not support role %s", domainerrors.ErrInvalidInput, c.descriptor.Type, role)
	}
	hash := RoleHash(role)
	count, err := callTyped[*big.Int](ctx, c, "getRoleMemberCount", hash)
	if err != nil {
		return nil, err
	}

	if count == nil || count.Sign() < 0 || !count.IsInt64() || count.Int64() > maxRoleMembers {
		return nil, fmt.Errorf("role member count %v out of range (max %d)", count, maxRoleMembers)
	}

	n := count.Int64()
	members := make([]string, 0, n)
	for i := int64(0); i < n; i++ {
		member, err := callTyped[common.Address](ctx, c, "getRoleMember", hash, big.NewInt(i))
		if err != nil {
			return nil, err
		}
		members = append(members, member.Hex())
	}
	return members, nil
}

// RoleHash returns the on-chain identifier of role. The admin role is the
// zero hash; every other role is keccak256("<ROLE>_ROLE").
func RoleHash(role entities.Role) [32]byte {
	if role == entities.RoleAdmin {
		return [32]byte{}
	}
	return crypto.Keccak256Hash([]byte(strings.ToUpper(string(role)) + "_ROLE"))
}

func callTyped[T any](ctx context.Context, c *contract, method string, args ...interface{}) (T, error) {
	var zero T

	vals, err := c.Call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	if len(vals) == 0 {
		return zero, fmt.Errorf("failed to decode %s", method)
	}
	value, ok := vals[0].(T)
	if !ok {
		return zero, fmt.Errorf("invalid %s return type", method)
	}
	return value, nil
}
