package usecases

import (
	"context"
	"fmt"

	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/internal/metrics"
	"contract-registry.backend/internal/registry"
	"contract-registry.backend/pkg/logger"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// DetectUsecase reports which registered type a deployed contract claims to be
type DetectUsecase struct {
	registry  *registry.Registry
	connector Connector
	fetcher   MetadataFetcher
}

// NewDetectUsecase creates a new detect usecase
func NewDetectUsecase(reg *registry.Registry, connector Connector, fetcher MetadataFetcher) *DetectUsecase {
	return &DetectUsecase{
		registry:  reg,
		connector: connector,
		fetcher:   fetcher,
	}
}

// Detect reads the contract's metadata snapshot and maps its remote name to a
// type id. Unknown names and contracts without metadata map to the custom type.
func (u *DetectUsecase) Detect(ctx context.Context, network blockchain.Network, address string, options *entities.SDKOptions) (*entities.DetectedContract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrInvalidAddress, address)
	}

	conn, err := u.connector.Connect(network, options)
	if err != nil {
		return nil, err
	}

	snapshot, err := u.fetcher.GetMetadata(ctx, address, conn)
	if err != nil {
		return nil, err
	}

	out := &entities.DetectedContract{
		ContractAddress: common.HexToAddress(address).Hex(),
		ContractType:    entities.ContractTypeCustom,
	}
	if snapshot != nil {
		out.RemoteName = snapshot.RemoteName
		out.Version = snapshot.Version
		out.MetadataURI = snapshot.MetadataURI
		out.ContractType = u.registry.TypeForRemoteName(snapshot.RemoteName)
	}
	out.Prebuilt = u.registry.Prebuilt(out.ContractType)

	if _, matched := u.registry.MatchRemoteName(out.RemoteName); !matched {
		logger.Debug(ctx, "Unregistered remote name, using custom type",
			zap.String("address", out.ContractAddress),
			zap.String("remote_name", out.RemoteName),
		)
	}
	metrics.ContractDetections.WithLabelValues(string(out.ContractType)).Inc()
	return out, nil
}
