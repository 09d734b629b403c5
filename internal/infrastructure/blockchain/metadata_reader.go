package blockchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/domain/entities"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/rpc"
)

// MetadataReader reads the self-describing metadata every prebuilt contract
// exposes: contractType(), contractVersion() and contractURI().
type MetadataReader struct {
	abi *abi.ABI
}

// NewMetadataReader builds a reader over the IThirdwebContract interface
func NewMetadataReader() (*MetadataReader, error) {
	parsed, err := abis.Default().Asset(abis.IThirdwebContractAsset)
	if err != nil {
		return nil, err
	}
	return &MetadataReader{abi: parsed}, nil
}

// GetMetadata returns the contract's metadata snapshot. Contracts that do not
// implement the interface (reverts or empty return data) yield nil without an
// error. Transport failures are returned as-is.
func (r *MetadataReader) GetMetadata(ctx context.Context, address string, conn Connection) (*entities.ContractMetadata, error) {
	typeOut, err := r.call(ctx, conn, address, "contractType")
	if err != nil || typeOut == nil {
		return nil, err
	}
	rawType, ok := typeOut[0].([32]byte)
	if !ok {
		return nil, nil
	}

	versionOut, err := r.call(ctx, conn, address, "contractVersion")
	if err != nil || versionOut == nil {
		return nil, err
	}
	version, ok := versionOut[0].(uint8)
	if !ok {
		return nil, nil
	}

	snapshot := &entities.ContractMetadata{
		RemoteName: decodeBytes32(rawType),
		Version:    version,
	}

	// contractURI is informational; older deployments may not expose it
	uriOut, err := r.call(ctx, conn, address, "contractURI")
	if err != nil {
		return nil, err
	}
	if uriOut != nil {
		if uri, ok := uriOut[0].(string); ok {
			snapshot.MetadataURI = uri
		}
	}
	return snapshot, nil
}

// call returns nil outputs when the contract does not answer the method
func (r *MetadataReader) call(ctx context.Context, conn Connection, address, method string) ([]interface{}, error) {
	data, err := r.abi.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	out, err := conn.CallView(ctx, address, data)
	if err != nil {
		if isExecutionReverted(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	values, err := r.abi.Unpack(method, out)
	if err != nil || len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func isExecutionReverted(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}

func decodeBytes32(raw [32]byte) string {
	return string(bytes.TrimRight(raw[:], "\x00"))
}

// EncodeBytes32 right-pads name into a bytes32 value
func EncodeBytes32(name string) [32]byte {
	var out [32]byte
	copy(out[:], name)
	return out
}
