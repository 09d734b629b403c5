package usecases_test

import (
	"context"
	"errors"
	"testing"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/registry"
	"contract-registry.backend/internal/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newResolver(fetcher usecases.MetadataFetcher) *usecases.ABIResolver {
	return usecases.NewABIResolver(registry.Default(), abis.NewStore(), fetcher)
}

func TestABIResolver_NFTDropScenario(t *testing.T) {
	ctx := context.Background()
	conn := staticConnection(1)

	cases := []struct {
		name      string
		snapshot  *entities.ContractMetadata
		wantBand  abis.Band
		wantAsset string
	}{
		{name: "version 3 is legacy", snapshot: snapshot("DropERC721", 3), wantBand: abis.BandLegacy, wantAsset: "DropERC721_V3"},
		{name: "version 4 is current", snapshot: snapshot("DropERC721", 4), wantBand: abis.BandCurrent, wantAsset: "DropERC721"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(MockMetadataFetcher)
			fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(tc.snapshot, nil).Once()

			def, err := newResolver(fetcher).Resolve(ctx, testAddress, conn, entities.ContractTypeNFTDrop)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBand, def.Band)
			assert.Equal(t, tc.wantAsset, def.Asset)
			assert.Equal(t, entities.ContractTypeNFTDrop, def.Type)
			fetcher.AssertExpectations(t)
		})
	}

	t.Run("wrong remote name", func(t *testing.T) {
		fetcher := new(MockMetadataFetcher)
		fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(snapshot("Wrong", 4), nil).Once()

		def, err := newResolver(fetcher).Resolve(ctx, testAddress, conn, entities.ContractTypeNFTDrop)
		require.Nil(t, def)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrContractTypeMismatch))
		assert.Contains(t, err.Error(), "nft-drop")
		assert.Equal(t, "Contract is not a nft-drop", err.Error())

		var mismatch *domainerrors.ContractTypeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "Wrong", mismatch.Reported)
	})
}

func TestABIResolver_ThresholdBoundaries(t *testing.T) {
	ctx := context.Background()
	conn := staticConnection(1)

	for _, d := range registry.Default().Descriptors() {
		if d.LegacyThreshold == nil {
			continue
		}
		threshold := *d.LegacyThreshold
		versions := map[uint8]abis.Band{
			0:             abis.BandLegacy,
			threshold:     abis.BandLegacy,
			threshold + 1: abis.BandCurrent,
			255:           abis.BandCurrent,
		}
		for version, want := range versions {
			fetcher := new(MockMetadataFetcher)
			fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(snapshot(d.RemoteName, version), nil)

			def, err := newResolver(fetcher).Resolve(ctx, testAddress, conn, d.Type)
			require.NoError(t, err, "%s v%d", d.Type, version)
			assert.Equal(t, want, def.Band, "%s v%d", d.Type, version)
		}
	}
}

func TestABIResolver_UnthresholdedTypesAlwaysCurrent(t *testing.T) {
	ctx := context.Background()
	conn := staticConnection(1)

	for _, d := range registry.Default().Descriptors() {
		if d.LegacyThreshold != nil || d.Type == entities.ContractTypeCustom {
			continue
		}
		for _, version := range []uint8{0, 1, 200} {
			fetcher := new(MockMetadataFetcher)
			fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(snapshot(d.RemoteName, version), nil)

			def, err := newResolver(fetcher).Resolve(ctx, testAddress, conn, d.Type)
			require.NoError(t, err, d.Type)
			assert.Equal(t, abis.BandCurrent, def.Band, d.Type)
		}
	}
}

func TestABIResolver_TypeMismatchForEveryPrebuiltType(t *testing.T) {
	ctx := context.Background()
	conn := staticConnection(1)
	reg := registry.Default()

	for _, typ := range reg.Types() {
		if !reg.Prebuilt(typ) {
			continue
		}
		for _, snap := range []*entities.ContractMetadata{snapshot("NotThisContract", 9), nil} {
			fetcher := new(MockMetadataFetcher)
			if snap == nil {
				fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(nil, nil)
			} else {
				fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(snap, nil)
			}

			def, err := newResolver(fetcher).Resolve(ctx, testAddress, conn, typ)
			require.Nil(t, def)
			require.True(t, errors.Is(err, domainerrors.ErrContractTypeMismatch), typ)
			assert.Equal(t, "Contract is not a "+string(typ), err.Error())
		}
	}
}

func TestABIResolver_FetchErrorPropagatesUnchanged(t *testing.T) {
	conn := staticConnection(1)
	boom := errors.New("rpc unavailable")

	fetcher := new(MockMetadataFetcher)
	fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(nil, boom)

	def, err := newResolver(fetcher).Resolve(context.Background(), testAddress, conn, entities.ContractTypeToken)
	require.Nil(t, def)
	assert.True(t, err == boom, "expected the collaborator error value, got %v", err)
}

func TestABIResolver_UnknownAndCustomTypes(t *testing.T) {
	conn := staticConnection(1)

	fetcher := new(MockMetadataFetcher)
	_, err := newResolver(fetcher).Resolve(context.Background(), testAddress, conn, "not-a-type")
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedContractType))
	fetcher.AssertNotCalled(t, "GetMetadata", mock.Anything, mock.Anything, mock.Anything)

	fetcher = new(MockMetadataFetcher)
	fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(snapshot("SmartContract", 1), nil)
	_, err = newResolver(fetcher).Resolve(context.Background(), testAddress, conn, entities.ContractTypeCustom)
	assert.True(t, errors.Is(err, domainerrors.ErrABIAssetNotFound))
}

func TestABIResolver_ResolveDetailed(t *testing.T) {
	conn := staticConnection(1)
	fetcher := new(MockMetadataFetcher)
	fetcher.On("GetMetadata", mock.Anything, testAddress, conn).Return(&entities.ContractMetadata{
		RemoteName:  "SignatureDrop",
		Version:     5,
		MetadataURI: "ipfs://QmSig/0",
	}, nil)

	res, err := newResolver(fetcher).ResolveDetailed(context.Background(), testAddress, conn, entities.ContractTypeSignatureDrop)
	require.NoError(t, err)
	assert.Equal(t, "SignatureDrop", res.Definition.Asset)
	assert.Equal(t, uint8(5), res.Metadata.Version)
	assert.Equal(t, "ipfs://QmSig/0", res.Metadata.MetadataURI)
	assert.Equal(t, entities.ContractTypeSignatureDrop, res.Descriptor.Type)
}
