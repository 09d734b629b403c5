package usecases

import (
	"context"
	"fmt"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/internal/registry"
	"contract-registry.backend/pkg/logger"
	"go.uber.org/zap"
)

// MetadataFetcher reads the metadata snapshot a contract reports about itself.
// A nil snapshot with a nil error means the contract reported nothing.
type MetadataFetcher interface {
	GetMetadata(ctx context.Context, address string, conn blockchain.Connection) (*entities.ContractMetadata, error)
}

// Resolution is a resolved interface definition together with the snapshot it was selected from
type Resolution struct {
	Definition *abis.Definition
	Metadata   entities.ContractMetadata
	Descriptor entities.ContractDescriptor
}

// ABIResolver selects the interface definition matching a deployed contract's
// reported type and version. Nothing is cached: every call re-reads metadata.
type ABIResolver struct {
	registry *registry.Registry
	store    *abis.Store
	fetcher  MetadataFetcher
}

// NewABIResolver creates a new resolver
func NewABIResolver(reg *registry.Registry, store *abis.Store, fetcher MetadataFetcher) *ABIResolver {
	return &ABIResolver{
		registry: reg,
		store:    store,
		fetcher:  fetcher,
	}
}

// Resolve returns the interface definition for address, which must be an
// instance of expected. Metadata lookup failures are returned unchanged.
func (r *ABIResolver) Resolve(ctx context.Context, address string, conn blockchain.Connection, expected entities.ContractType) (*abis.Definition, error) {
	res, err := r.ResolveDetailed(ctx, address, conn, expected)
	if err != nil {
		return nil, err
	}
	return res.Definition, nil
}

// ResolveDetailed is Resolve that also reports the snapshot and descriptor used
func (r *ABIResolver) ResolveDetailed(ctx context.Context, address string, conn blockchain.Connection, expected entities.ContractType) (*Resolution, error) {
	descriptor, ok := r.registry.Lookup(expected)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrUnsupportedContractType, expected)
	}

	snapshot, err := r.fetcher.GetMetadata(ctx, address, conn)
	if err != nil {
		return nil, err
	}
	if snapshot == nil || snapshot.RemoteName != descriptor.RemoteName {
		reported := ""
		if snapshot != nil {
			reported = snapshot.RemoteName
		}
		logger.Debug(ctx, "Contract type mismatch",
			zap.String("contract_type", string(expected)),
			zap.String("address", address),
			zap.String("reported", reported),
		)
		return nil, domainerrors.NewContractTypeMismatch(string(expected), address, reported)
	}

	band := abis.SelectBand(descriptor.LegacyThreshold, snapshot.Version)
	def, err := r.store.Load(expected, band)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "Resolved contract ABI",
		zap.String("contract_type", string(expected)),
		zap.String("address", address),
		zap.Uint8("version", snapshot.Version),
		zap.String("band", string(band)),
		zap.String("asset", def.Asset),
	)
	return &Resolution{
		Definition: def,
		Metadata:   *snapshot,
		Descriptor: descriptor,
	}, nil
}
