package usecases_test

import (
	"context"
	"math/big"

	"contract-registry.backend/internal/domain/entities"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// Mock MetadataFetcher
type MockMetadataFetcher struct {
	mock.Mock
}

func (m *MockMetadataFetcher) GetMetadata(ctx context.Context, address string, conn blockchain.Connection) (*entities.ContractMetadata, error) {
	args := m.Called(ctx, address, conn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContractMetadata), args.Error(1)
}

// Mock ContractRecordRepository
type MockContractRecordRepository struct {
	mock.Mock
}

func (m *MockContractRecordRepository) Create(ctx context.Context, record *entities.ContractRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockContractRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ContractRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContractRecord), args.Error(1)
}

func (m *MockContractRecordRepository) List(ctx context.Context, filter entities.ContractRecordFilter, pagination utils.PaginationParams) ([]*entities.ContractRecord, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.ContractRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRecordRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) DownloadJSON(ctx context.Context, uri string) (map[string]interface{}, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

// Mock Connection
type MockConnection struct {
	mock.Mock
}

func (m *MockConnection) ChainID(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockConnection) CallView(ctx context.Context, to string, data []byte) ([]byte, error) {
	args := m.Called(ctx, to, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func snapshot(remoteName string, version uint8) *entities.ContractMetadata {
	return &entities.ContractMetadata{RemoteName: remoteName, Version: version}
}

func staticConnection(chainID int64) *blockchain.EVMClient {
	return blockchain.NewEVMClientWithCallView(big.NewInt(chainID), func(context.Context, string, []byte) ([]byte, error) {
		return nil, nil
	})
}
