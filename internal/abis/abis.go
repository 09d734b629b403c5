// Package abis serves the static, versioned ABI assets of every prebuilt
// contract type. Assets are embedded at build time and parsed on first use.
package abis

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed assets/*.json
var assetFS embed.FS

// Band names the version range an ABI asset serves
type Band string

const (
	BandCurrent Band = "current"
	BandLegacy  Band = "legacy"
)

// IThirdwebContractAsset describes the metadata surface every prebuilt contract exposes
const IThirdwebContractAsset = "IThirdwebContract"

type assetKey struct {
	typ  entities.ContractType
	band Band
}

var assetNames = map[assetKey]string{
	{entities.ContractTypeEditionDrop, BandCurrent}:   "DropERC1155",
	{entities.ContractTypeEditionDrop, BandLegacy}:    "DropERC1155_V2",
	{entities.ContractTypeEdition, BandCurrent}:       "TokenERC1155",
	{entities.ContractTypeMarketplace, BandCurrent}:   "Marketplace",
	{entities.ContractTypeMultiwrap, BandCurrent}:     "Multiwrap",
	{entities.ContractTypeNFTCollection, BandCurrent}: "TokenERC721",
	{entities.ContractTypeNFTDrop, BandCurrent}:       "DropERC721",
	{entities.ContractTypeNFTDrop, BandLegacy}:        "DropERC721_V3",
	{entities.ContractTypePack, BandCurrent}:          "Pack",
	{entities.ContractTypeSignatureDrop, BandCurrent}: "SignatureDrop",
	{entities.ContractTypeSignatureDrop, BandLegacy}:  "SignatureDrop_V4",
	{entities.ContractTypeSplit, BandCurrent}:         "Split",
	{entities.ContractTypeTokenDrop, BandCurrent}:     "DropERC20",
	{entities.ContractTypeTokenDrop, BandLegacy}:      "DropERC20_V2",
	{entities.ContractTypeToken, BandCurrent}:         "TokenERC20",
	{entities.ContractTypeVote, BandCurrent}:          "VoteERC20",
}

// Definition is a resolved interface definition for one contract type and band
type Definition struct {
	Type  entities.ContractType
	Band  Band
	Asset string
	ABI   *abi.ABI
}

// SelectBand picks the ABI band for an on-chain version. Versions above the
// threshold use the current ABI; versions at or below it use the legacy one.
// A nil threshold means the type only ever had one ABI shape.
func SelectBand(legacyThreshold *uint8, version uint8) Band {
	if legacyThreshold == nil || version > *legacyThreshold {
		return BandCurrent
	}
	return BandLegacy
}

// AssetName returns the asset backing (typ, band)
func AssetName(typ entities.ContractType, band Band) (string, bool) {
	name, ok := assetNames[assetKey{typ: typ, band: band}]
	return name, ok
}

type parsedAsset struct {
	once sync.Once
	abi  *abi.ABI
	err  error
}

// Store loads and parses ABI assets on demand. Parsed assets are immutable
// and shared between callers.
type Store struct {
	fs     embed.FS
	mu     sync.Mutex
	parsed map[string]*parsedAsset
}

// NewStore creates a store over the embedded assets
func NewStore() *Store {
	return &Store{
		fs:     assetFS,
		parsed: make(map[string]*parsedAsset),
	}
}

var defaultStore = NewStore()

// Default returns the process-wide asset store
func Default() *Store {
	return defaultStore
}

// Load returns the definition for typ in the given band
func (s *Store) Load(typ entities.ContractType, band Band) (*Definition, error) {
	name, ok := AssetName(typ, band)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", domainerrors.ErrABIAssetNotFound, typ, band)
	}
	parsed, err := s.Asset(name)
	if err != nil {
		return nil, err
	}
	return &Definition{
		Type:  typ,
		Band:  band,
		Asset: name,
		ABI:   parsed,
	}, nil
}

// Asset parses a named asset, once per store
func (s *Store) Asset(name string) (*abi.ABI, error) {
	s.mu.Lock()
	entry, ok := s.parsed[name]
	if !ok {
		entry = &parsedAsset{}
		s.parsed[name] = entry
	}
	s.mu.Unlock()

	entry.once.Do(func() {
		raw, err := s.fs.ReadFile("assets/" + name + ".json")
		if err != nil {
			entry.err = fmt.Errorf("%w: %s", domainerrors.ErrABIAssetNotFound, name)
			return
		}
		parsed, err := abi.JSON(bytes.NewReader(raw))
		if err != nil {
			entry.err = fmt.Errorf("failed to parse ABI asset %s: %w", name, err)
			return
		}
		entry.abi = &parsed
	})
	return entry.abi, entry.err
}
