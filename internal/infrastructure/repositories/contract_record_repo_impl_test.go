package repositories

import (
	"context"
	"testing"
	"time"

	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRecord(chainID int64, typ entities.ContractType, address string, resolvedAt time.Time) *entities.ContractRecord {
	return &entities.ContractRecord{
		ChainID:         chainID,
		ContractAddress: address,
		ContractType:    typ,
		RemoteName:      "DropERC721",
		Version:         4,
		ABIBand:         "current",
		ABIAsset:        "DropERC721",
		Roles:           []entities.Role{entities.RoleAdmin, entities.RoleMinter},
		ResolvedAt:      resolvedAt,
	}
}

func TestContractRecordRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createContractRecordTable(t, db)
	repo := NewContractRecordRepository(db)
	ctx := context.Background()

	record := newRecord(8453, entities.ContractTypeNFTDrop, "0x00000000000000000000000000000000000000Aa", time.Time{})
	require.NoError(t, repo.Create(ctx, record))
	require.NotEqual(t, uuid.Nil, record.ID)
	require.False(t, record.ResolvedAt.IsZero())

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, int64(8453), got.ChainID)
	require.Equal(t, entities.ContractTypeNFTDrop, got.ContractType)
	require.Equal(t, uint8(4), got.Version)
	require.Equal(t, "DropERC721", got.ABIAsset)
	require.Equal(t, []entities.Role{entities.RoleAdmin, entities.RoleMinter}, got.Roles)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestContractRecordRepo_ListFiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	createContractRecordTable(t, db)
	repo := NewContractRecordRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, newRecord(1, entities.ContractTypeNFTDrop, "0x00000000000000000000000000000000000000Aa", base)))
	require.NoError(t, repo.Create(ctx, newRecord(1, entities.ContractTypeToken, "0x00000000000000000000000000000000000000bB", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newRecord(137, entities.ContractTypeNFTDrop, "0x00000000000000000000000000000000000000cc", base.Add(2*time.Minute))))

	items, total, err := repo.List(ctx, entities.ContractRecordFilter{}, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	require.Equal(t, int64(137), items[0].ChainID)

	chainID := int64(1)
	items, total, err = repo.List(ctx, entities.ContractRecordFilter{ChainID: &chainID}, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	items, total, err = repo.List(ctx, entities.ContractRecordFilter{ContractType: entities.ContractTypeNFTDrop}, utils.PaginationParams{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), items[0].ChainID)

	items, total, err = repo.List(ctx, entities.ContractRecordFilter{Address: "0x00000000000000000000000000000000000000AA"}, utils.PaginationParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
}

func TestContractRecordRepo_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	createContractRecordTable(t, db)
	repo := NewContractRecordRepository(db)
	ctx := context.Background()

	record := newRecord(1, entities.ContractTypeSplit, "0x00000000000000000000000000000000000000dd", time.Now())
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.SoftDelete(ctx, record.ID))
	_, err := repo.GetByID(ctx, record.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, total, err := repo.List(ctx, entities.ContractRecordFilter{}, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)

	require.ErrorIs(t, repo.SoftDelete(ctx, record.ID), domainerrors.ErrNotFound)
}

func TestContractRecordRepo_DBErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRecordRepository(db)
	ctx := context.Background()

	require.Error(t, repo.Create(ctx, newRecord(1, entities.ContractTypeToken, "0x00000000000000000000000000000000000000ee", time.Now())))

	_, err := repo.GetByID(ctx, uuid.New())
	require.Error(t, err)
	require.NotErrorIs(t, err, domainerrors.ErrNotFound)

	_, _, err = repo.List(ctx, entities.ContractRecordFilter{}, utils.PaginationParams{Page: 1, Limit: 10})
	require.Error(t, err)

	require.Error(t, repo.SoftDelete(ctx, uuid.New()))
}
