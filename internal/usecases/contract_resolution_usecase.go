package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contract-registry.backend/internal/contracts"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/domain/repositories"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/pkg/logger"
	"contract-registry.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResolvedContract is an initialized client and the ledger entry written for it
type ResolvedContract struct {
	Client contracts.Client
	Record *entities.ContractRecord
}

// ResolutionMetadata is the contract-level metadata read for a ledger entry
type ResolutionMetadata struct {
	Record   *entities.ContractRecord `json:"resolution"`
	Metadata map[string]interface{}   `json:"metadata"`
}

// ResolutionRoleMembers lists the holders of one role for a ledger entry
type ResolutionRoleMembers struct {
	Record  *entities.ContractRecord `json:"resolution"`
	Role    entities.Role            `json:"role"`
	Members []string                 `json:"members"`
}

type roleMemberReader interface {
	RoleMembers(ctx context.Context, role entities.Role) ([]string, error)
}

// ContractResolutionUsecase initializes contract clients on request and keeps
// a ledger of what was resolved. The ledger is never consulted during resolution.
type ContractResolutionUsecase struct {
	initializers  *ClientInitializer
	recordRepo    repositories.ContractRecordRepository
	storage       contracts.Storage
	defaultRPCURL string
	timeout       time.Duration
}

// NewContractResolutionUsecase creates a new resolution usecase
func NewContractResolutionUsecase(
	initializers *ClientInitializer,
	recordRepo repositories.ContractRecordRepository,
	storage contracts.Storage,
	defaultRPCURL string,
	timeout time.Duration,
) *ContractResolutionUsecase {
	return &ContractResolutionUsecase{
		initializers:  initializers,
		recordRepo:    recordRepo,
		storage:       storage,
		defaultRPCURL: defaultRPCURL,
		timeout:       timeout,
	}
}

// Network returns the network a request targets, defaulting to the configured RPC
func (u *ContractResolutionUsecase) Network(rpcURL string) blockchain.Network {
	rpcURL = strings.TrimSpace(rpcURL)
	if rpcURL == "" {
		rpcURL = u.defaultRPCURL
	}
	return blockchain.Network{RPCURL: rpcURL}
}

// WithTimeout bounds ctx by the configured resolve timeout
func (u *ContractResolutionUsecase) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}

// Resolve initializes the client for input and records the resolution.
// A ledger write failure is logged and does not fail the resolution.
func (u *ContractResolutionUsecase) Resolve(ctx context.Context, input *entities.ResolveContractInput) (*ResolvedContract, error) {
	if input == nil {
		return nil, domainerrors.ErrBadRequest
	}
	initializer, err := u.initializers.For(input.ContractType)
	if err != nil {
		return nil, err
	}

	ctx, cancel := u.WithTimeout(ctx)
	defer cancel()

	out, err := initializer.InitializeDetailed(ctx, u.Network(input.RPCURL), input.ContractAddress, u.storage, input.Options)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entities.ContractRecord{
		ID:              utils.GenerateUUIDv7(),
		ChainID:         out.ChainID.Int64(),
		ContractAddress: out.Client.Address(),
		ContractType:    out.Client.Type(),
		RemoteName:      out.Resolution.Metadata.RemoteName,
		Version:         out.Resolution.Metadata.Version,
		ABIBand:         string(out.Resolution.Definition.Band),
		ABIAsset:        out.Resolution.Definition.Asset,
		Roles:           out.Client.Roles(),
		ResolvedAt:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if u.recordRepo != nil {
		if err := u.recordRepo.Create(ctx, record); err != nil {
			logger.Warn(ctx, "Failed to record contract resolution",
				zap.String("contract_type", string(record.ContractType)),
				zap.String("address", record.ContractAddress),
				zap.Error(err),
			)
		}
	}

	return &ResolvedContract{Client: out.Client, Record: record}, nil
}

// List returns ledger entries matching filter
func (u *ContractResolutionUsecase) List(ctx context.Context, filter entities.ContractRecordFilter, pagination utils.PaginationParams) ([]*entities.ContractRecord, int64, error) {
	return u.recordRepo.List(ctx, filter, pagination)
}

// GetByID returns one ledger entry
func (u *ContractResolutionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.ContractRecord, error) {
	return u.recordRepo.GetByID(ctx, id)
}

// Delete soft deletes a ledger entry
func (u *ContractResolutionUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.recordRepo.SoftDelete(ctx, id)
}

// Metadata re-initializes the client of a ledger entry and reads its
// contract-level metadata document through storage
func (u *ContractResolutionUsecase) Metadata(ctx context.Context, id uuid.UUID, rpcURL string) (*ResolutionMetadata, error) {
	ctx, cancel := u.WithTimeout(ctx)
	defer cancel()

	record, client, err := u.reinitialize(ctx, id, rpcURL)
	if err != nil {
		return nil, err
	}
	doc, err := client.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	return &ResolutionMetadata{Record: record, Metadata: doc}, nil
}

// RoleMembers re-initializes the client of a ledger entry and lists the
// accounts holding role
func (u *ContractResolutionUsecase) RoleMembers(ctx context.Context, id uuid.UUID, rpcURL string, role entities.Role) (*ResolutionRoleMembers, error) {
	ctx, cancel := u.WithTimeout(ctx)
	defer cancel()

	record, client, err := u.reinitialize(ctx, id, rpcURL)
	if err != nil {
		return nil, err
	}
	reader, ok := client.(roleMemberReader)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not expose roles", domainerrors.ErrInvalidInput, record.ContractType)
	}
	members, err := reader.RoleMembers(ctx, role)
	if err != nil {
		return nil, err
	}
	return &ResolutionRoleMembers{Record: record, Role: role, Members: members}, nil
}

// reinitialize builds a fresh client for a ledger entry. The endpoint must
// serve the chain the entry was recorded on.
func (u *ContractResolutionUsecase) reinitialize(ctx context.Context, id uuid.UUID, rpcURL string) (*entities.ContractRecord, contracts.Client, error) {
	record, err := u.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	initializer, err := u.initializers.For(record.ContractType)
	if err != nil {
		return nil, nil, err
	}

	out, err := initializer.InitializeDetailed(ctx, u.Network(rpcURL), record.ContractAddress, u.storage, nil)
	if err != nil {
		return nil, nil, err
	}
	if !out.ChainID.IsInt64() || out.ChainID.Int64() != record.ChainID {
		return nil, nil, fmt.Errorf("%w: resolution was recorded on chain %d, endpoint serves chain %s",
			domainerrors.ErrInvalidInput, record.ChainID, out.ChainID)
	}
	return record, out.Client, nil
}
