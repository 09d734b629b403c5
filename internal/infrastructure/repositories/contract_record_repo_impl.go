package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	domainrepos "contract-registry.backend/internal/domain/repositories"
	"contract-registry.backend/internal/infrastructure/models"
	"contract-registry.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type contractRecordRepo struct {
	db *gorm.DB
}

func NewContractRecordRepository(db *gorm.DB) domainrepos.ContractRecordRepository {
	return &contractRecordRepo{db: db}
}

func (r *contractRecordRepo) Create(ctx context.Context, record *entities.ContractRecord) error {
	if record.ID == uuid.Nil {
		record.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if record.ResolvedAt.IsZero() {
		record.ResolvedAt = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	return r.db.WithContext(ctx).Create(toContractRecordModel(record)).Error
}

func (r *contractRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.ContractRecord, error) {
	var row models.ContractRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toContractRecordEntity(&row), nil
}

func (r *contractRecordRepo) List(ctx context.Context, filter entities.ContractRecordFilter, pagination utils.PaginationParams) ([]*entities.ContractRecord, int64, error) {
	var rows []models.ContractRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ContractRecord{})
	if filter.ChainID != nil {
		query = query.Where("chain_id = ?", *filter.ChainID)
	}
	if filter.ContractType != "" {
		query = query.Where("contract_type = ?", string(filter.ContractType))
	}
	if filter.Address != "" {
		query = query.Where("LOWER(contract_address) = ?", strings.ToLower(filter.Address))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Order("resolved_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.ContractRecord, 0, len(rows))
	for i := range rows {
		items = append(items, toContractRecordEntity(&rows[i]))
	}
	return items, total, nil
}

func (r *contractRecordRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toContractRecordModel(e *entities.ContractRecord) *models.ContractRecord {
	roles := make(pq.StringArray, 0, len(e.Roles))
	for _, role := range e.Roles {
		roles = append(roles, string(role))
	}
	return &models.ContractRecord{
		ID:              e.ID,
		ChainID:         e.ChainID,
		ContractAddress: e.ContractAddress,
		ContractType:    string(e.ContractType),
		RemoteName:      e.RemoteName,
		Version:         int16(e.Version),
		ABIBand:         e.ABIBand,
		ABIAsset:        e.ABIAsset,
		Roles:           roles,
		ResolvedAt:      e.ResolvedAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toContractRecordEntity(m *models.ContractRecord) *entities.ContractRecord {
	roles := make([]entities.Role, 0, len(m.Roles))
	for _, role := range m.Roles {
		roles = append(roles, entities.Role(role))
	}
	return &entities.ContractRecord{
		ID:              m.ID,
		ChainID:         m.ChainID,
		ContractAddress: m.ContractAddress,
		ContractType:    entities.ContractType(m.ContractType),
		RemoteName:      m.RemoteName,
		Version:         uint8(m.Version),
		ABIBand:         m.ABIBand,
		ABIAsset:        m.ABIAsset,
		Roles:           roles,
		ResolvedAt:      m.ResolvedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
