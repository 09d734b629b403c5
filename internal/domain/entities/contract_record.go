package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContractRecord is a ledger entry written after a contract was resolved
type ContractRecord struct {
	ID              uuid.UUID    `json:"id"`
	ChainID         int64        `json:"chainId"`
	ContractAddress string       `json:"contractAddress"`
	ContractType    ContractType `json:"contractType"`
	RemoteName      string       `json:"remoteName"`
	Version         uint8        `json:"version"`
	ABIBand         string       `json:"abiBand"`
	ABIAsset        string       `json:"abiAsset"`
	Roles           []Role       `json:"roles"`
	ResolvedAt      time.Time    `json:"resolvedAt"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	DeletedAt       null.Time    `json:"-"`
}

// ContractRecordFilter narrows ledger listings
type ContractRecordFilter struct {
	ChainID      *int64
	ContractType ContractType
	Address      string
}

// ResolveContractInput is the request to resolve and initialize a contract client
type ResolveContractInput struct {
	RPCURL          string       `json:"rpcUrl"`
	ContractAddress string       `json:"contractAddress" binding:"required"`
	ContractType    ContractType `json:"contractType" binding:"required"`
	Options         *SDKOptions  `json:"options,omitempty"`
}

// DetectContractInput is the request to detect a contract's type
type DetectContractInput struct {
	RPCURL          string      `json:"rpcUrl"`
	ContractAddress string      `json:"contractAddress" binding:"required"`
	Options         *SDKOptions `json:"options,omitempty"`
}

// DetectedContract is the result of a detection
type DetectedContract struct {
	ContractAddress string       `json:"contractAddress"`
	ContractType    ContractType `json:"contractType"`
	RemoteName      string       `json:"remoteName"`
	Version         uint8        `json:"version"`
	MetadataURI     string       `json:"metadataUri,omitempty"`
	Prebuilt        bool         `json:"prebuilt"`
}
