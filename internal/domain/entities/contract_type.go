package entities

// ContractType identifies a supported contract shape
type ContractType string

const (
	ContractTypeEditionDrop   ContractType = "edition-drop"
	ContractTypeEdition       ContractType = "edition"
	ContractTypeMarketplace   ContractType = "marketplace"
	ContractTypeMultiwrap     ContractType = "multiwrap"
	ContractTypeNFTCollection ContractType = "nft-collection"
	ContractTypeNFTDrop       ContractType = "nft-drop"
	ContractTypePack          ContractType = "pack"
	ContractTypeSignatureDrop ContractType = "signature-drop"
	ContractTypeSplit         ContractType = "split"
	ContractTypeTokenDrop     ContractType = "token-drop"
	ContractTypeToken         ContractType = "token"
	ContractTypeVote          ContractType = "vote"

	// ContractTypeCustom is the generic fallback for contracts with no prebuilt match.
	ContractTypeCustom ContractType = "custom"
)

func (t ContractType) String() string {
	return string(t)
}

// Role is a permission category exposed by a contract type
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTransfer Role = "transfer"
	RoleMinter   Role = "minter"
	RolePauser   Role = "pauser"
	RoleEditor   Role = "editor"
	RoleLister   Role = "lister"
	RoleAsset    Role = "asset"
	RoleUnwrap   Role = "unwrap"
	RoleFactory  Role = "factory"
	RoleSigner   Role = "signer"
)

// AllRoles lists every known role in display order
var AllRoles = []Role{
	RoleAdmin,
	RoleTransfer,
	RoleMinter,
	RolePauser,
	RoleEditor,
	RoleLister,
	RoleAsset,
	RoleUnwrap,
	RoleFactory,
	RoleSigner,
}

// Schema validates contract-level metadata documents for a contract type
type Schema interface {
	Name() string
	Validate(doc map[string]interface{}) error
}

// ContractDescriptor is the immutable registry record of a supported contract type.
//
// LegacyThreshold is nil for types whose ABI never changed shape. Otherwise an
// on-chain version at or below the threshold selects the legacy ABI.
type ContractDescriptor struct {
	Type            ContractType `json:"type"`
	RemoteName      string       `json:"remoteName"`
	Schema          Schema       `json:"-"`
	Roles           []Role       `json:"roles"`
	LegacyThreshold *uint8       `json:"legacyThreshold,omitempty"`
}

// HasRole reports whether the descriptor exposes role r
func (d ContractDescriptor) HasRole(r Role) bool {
	for _, role := range d.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// ContractMetadata is the snapshot a deployed contract reports about itself
type ContractMetadata struct {
	RemoteName  string `json:"remoteName"`
	Version     uint8  `json:"version"`
	MetadataURI string `json:"metadataUri,omitempty"`
}

// SDKOptions carries caller options that influence how a connection is derived
type SDKOptions struct {
	ReadOnly *ReadOnlySettings `json:"readonlySettings,omitempty"`
}

// ReadOnlySettings forces reads through a dedicated RPC endpoint
type ReadOnlySettings struct {
	RPCURL  string `json:"rpcUrl"`
	ChainID int64  `json:"chainId,omitempty"`
}
