package repositories

import (
	"context"

	"contract-registry.backend/internal/domain/entities"
	"contract-registry.backend/pkg/utils"
	"github.com/google/uuid"
)

// ContractRecordRepository persists the resolution ledger
type ContractRecordRepository interface {
	Create(ctx context.Context, record *entities.ContractRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ContractRecord, error)
	List(ctx context.Context, filter entities.ContractRecordFilter, pagination utils.PaginationParams) ([]*entities.ContractRecord, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
