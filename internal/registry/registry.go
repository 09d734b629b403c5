// Package registry holds the fixed table of supported contract types.
package registry

import (
	"contract-registry.backend/internal/domain/entities"
	"contract-registry.backend/internal/schemas"
)

// UndefinedRemoteName is reported for type ids that are not registered
const UndefinedRemoteName = "undefined"

// Registry is a read-only table from contract type to descriptor.
// It is built once and never mutated, so lookups need no locking.
type Registry struct {
	order  []entities.ContractType
	byType map[entities.ContractType]entities.ContractDescriptor
	byName map[string]entities.ContractType
}

func threshold(v uint8) *uint8 {
	return &v
}

var defaultDescriptors = []entities.ContractDescriptor{
	{
		Type:            entities.ContractTypeEditionDrop,
		RemoteName:      "DropERC1155",
		Schema:          schemas.DropErc1155,
		Roles:           []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleTransfer},
		LegacyThreshold: threshold(2),
	},
	{
		Type:       entities.ContractTypeEdition,
		RemoteName: "TokenERC1155",
		Schema:     schemas.TokenErc1155,
		Roles:      []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleTransfer},
	},
	{
		Type:       entities.ContractTypeMarketplace,
		RemoteName: "Marketplace",
		Schema:     schemas.Marketplace,
		Roles:      []entities.Role{entities.RoleAdmin, entities.RoleLister, entities.RoleAsset},
	},
	{
		Type:       entities.ContractTypeMultiwrap,
		RemoteName: "Multiwrap",
		Schema:     schemas.Multiwrap,
		Roles:      []entities.Role{entities.RoleAdmin, entities.RoleTransfer, entities.RoleMinter, entities.RoleUnwrap, entities.RoleAsset},
	},
	{
		Type:       entities.ContractTypeNFTCollection,
		RemoteName: "TokenERC721",
		Schema:     schemas.TokenErc721,
		Roles:      []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleTransfer},
	},
	{
		Type:            entities.ContractTypeNFTDrop,
		RemoteName:      "DropERC721",
		Schema:          schemas.DropErc721,
		Roles:           []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleTransfer},
		LegacyThreshold: threshold(3),
	},
	{
		Type:       entities.ContractTypePack,
		RemoteName: "Pack",
		Schema:     schemas.Pack,
		Roles:      []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleAsset, entities.RoleTransfer},
	},
	{
		// signature drops share the ERC721 drop metadata shape
		Type:            entities.ContractTypeSignatureDrop,
		RemoteName:      "SignatureDrop",
		Schema:          schemas.DropErc721,
		Roles:           []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleTransfer},
		LegacyThreshold: threshold(4),
	},
	{
		Type:       entities.ContractTypeSplit,
		RemoteName: "Split",
		Schema:     schemas.Splits,
		Roles:      []entities.Role{entities.RoleAdmin},
	},
	{
		Type:            entities.ContractTypeTokenDrop,
		RemoteName:      "DropERC20",
		Schema:          schemas.DropErc20,
		Roles:           []entities.Role{entities.RoleAdmin, entities.RoleTransfer},
		LegacyThreshold: threshold(2),
	},
	{
		Type:       entities.ContractTypeToken,
		RemoteName: "TokenERC20",
		Schema:     schemas.TokenErc20,
		Roles:      []entities.Role{entities.RoleAdmin, entities.RoleMinter, entities.RoleTransfer},
	},
	{
		Type:       entities.ContractTypeVote,
		RemoteName: "VoteERC20",
		Schema:     schemas.Vote,
		Roles:      []entities.Role{},
	},
	{
		Type:       entities.ContractTypeCustom,
		RemoteName: "SmartContract",
		Schema:     schemas.Custom,
		Roles:      entities.AllRoles,
	},
}

var defaultRegistry = New(defaultDescriptors)

// Default returns the process-wide registry of supported contract types
func Default() *Registry {
	return defaultRegistry
}

// New builds a registry from descriptors. Later duplicates of a type id or
// remote name are ignored so that every type keeps exactly one descriptor.
func New(descriptors []entities.ContractDescriptor) *Registry {
	r := &Registry{
		order:  make([]entities.ContractType, 0, len(descriptors)),
		byType: make(map[entities.ContractType]entities.ContractDescriptor, len(descriptors)),
		byName: make(map[string]entities.ContractType, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := r.byType[d.Type]; exists {
			continue
		}
		d.Roles = append([]entities.Role(nil), d.Roles...)
		r.order = append(r.order, d.Type)
		r.byType[d.Type] = d
		if _, exists := r.byName[d.RemoteName]; !exists {
			r.byName[d.RemoteName] = d.Type
		}
	}
	return r
}

// Lookup returns the descriptor registered for typ
func (r *Registry) Lookup(typ entities.ContractType) (entities.ContractDescriptor, bool) {
	d, ok := r.byType[typ]
	if !ok {
		return entities.ContractDescriptor{}, false
	}
	d.Roles = append([]entities.Role(nil), d.Roles...)
	return d, true
}

// MatchRemoteName returns the type registered under a remote name and whether one matched
func (r *Registry) MatchRemoteName(name string) (entities.ContractType, bool) {
	typ, ok := r.byName[name]
	return typ, ok
}

// TypeForRemoteName maps a remote name to its contract type, falling back to
// the generic custom type when nothing matches. It never fails.
func (r *Registry) TypeForRemoteName(name string) entities.ContractType {
	if typ, ok := r.byName[name]; ok {
		return typ
	}
	return entities.ContractTypeCustom
}

// RemoteNameForType returns the remote name of typ, or "undefined" when typ is unknown
func (r *Registry) RemoteNameForType(typ entities.ContractType) string {
	if d, ok := r.byType[typ]; ok {
		return d.RemoteName
	}
	return UndefinedRemoteName
}

// Prebuilt reports whether typ is a registered type with its own client implementation
func (r *Registry) Prebuilt(typ entities.ContractType) bool {
	_, ok := r.byType[typ]
	return ok && typ != entities.ContractTypeCustom
}

// Types lists registered contract types in registration order
func (r *Registry) Types() []entities.ContractType {
	return append([]entities.ContractType(nil), r.order...)
}

// Descriptors lists registered descriptors in registration order
func (r *Registry) Descriptors() []entities.ContractDescriptor {
	out := make([]entities.ContractDescriptor, 0, len(r.order))
	for _, typ := range r.order {
		d, _ := r.Lookup(typ)
		out = append(out, d)
	}
	return out
}

// TypeForRemoteName resolves against the default registry
func TypeForRemoteName(name string) entities.ContractType {
	return defaultRegistry.TypeForRemoteName(name)
}

// RemoteNameForType resolves against the default registry
func RemoteNameForType(typ entities.ContractType) string {
	return defaultRegistry.RemoteNameForType(typ)
}
