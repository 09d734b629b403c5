package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"contract-registry.backend/internal/contracts"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/internal/metrics"
	"contract-registry.backend/internal/registry"
	"contract-registry.backend/pkg/logger"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var loadConstructor = contracts.ConstructorFor

// Connector derives the read connection used for a network
type Connector interface {
	Connect(network blockchain.Network, options *entities.SDKOptions) (blockchain.Connection, error)
}

// Initialized is a constructed client together with what it was built from
type Initialized struct {
	Client     contracts.Client
	Resolution *Resolution
	ChainID    *big.Int
}

// Initializer constructs the client for one prebuilt contract type
type Initializer struct {
	contractType entities.ContractType
	connector    Connector
	resolver     *ABIResolver
}

// Type returns the contract type this initializer builds
func (i *Initializer) Type() entities.ContractType {
	return i.contractType
}

// Initialize resolves the ABI for address and returns the typed client. ABI
// resolution, constructor loading and the chain id lookup run concurrently;
// the first failure aborts the call and no client is returned.
func (i *Initializer) Initialize(
	ctx context.Context,
	network blockchain.Network,
	address string,
	storage contracts.Storage,
	options *entities.SDKOptions,
) (contracts.Client, error) {
	out, err := i.InitializeDetailed(ctx, network, address, storage, options)
	if err != nil {
		return nil, err
	}
	return out.Client, nil
}

// InitializeDetailed is Initialize that also reports the resolution and chain id
func (i *Initializer) InitializeDetailed(
	ctx context.Context,
	network blockchain.Network,
	address string,
	storage contracts.Storage,
	options *entities.SDKOptions,
) (*Initialized, error) {
	start := time.Now()
	out, err := i.initialize(ctx, network, address, storage, options)
	metrics.ObserveResolution(string(i.contractType), outcomeOf(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Contract client initialized",
		zap.String("contract_type", string(i.contractType)),
		zap.String("address", out.Client.Address()),
		zap.Uint8("version", out.Resolution.Metadata.Version),
		zap.String("band", string(out.Client.Band())),
		zap.String("chain_id", out.ChainID.String()),
	)
	return out, nil
}

func (i *Initializer) initialize(
	ctx context.Context,
	network blockchain.Network,
	address string,
	storage contracts.Storage,
	options *entities.SDKOptions,
) (*Initialized, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrInvalidAddress, address)
	}

	conn, err := i.connector.Connect(network, options)
	if err != nil {
		return nil, err
	}

	var (
		resolution *Resolution
		ctor       contracts.Constructor
		chainID    *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := i.resolver.ResolveDetailed(gctx, address, conn, i.contractType)
		if err != nil {
			return err
		}
		resolution = res
		return nil
	})
	g.Go(func() error {
		c, err := loadConstructor(i.contractType)
		if err != nil {
			return err
		}
		ctor = c
		return nil
	})
	g.Go(func() error {
		id, err := conn.ChainID(gctx)
		if err != nil {
			return err
		}
		chainID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	client := ctor(contracts.Params{
		Network:    network,
		Conn:       conn,
		Address:    address,
		Storage:    storage,
		Options:    options,
		Definition: resolution.Definition,
		ChainID:    chainID,
		Descriptor: resolution.Descriptor,
	})
	return &Initialized{
		Client:     client,
		Resolution: resolution,
		ChainID:    chainID,
	}, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domainerrors.ErrContractTypeMismatch):
		return metrics.OutcomeTypeMismatch
	default:
		return metrics.OutcomeError
	}
}

// ClientInitializer hands out the initializer of every prebuilt contract type
type ClientInitializer struct {
	registry     *registry.Registry
	initializers map[entities.ContractType]*Initializer
}

// NewClientInitializer creates one initializer per prebuilt type in reg
func NewClientInitializer(reg *registry.Registry, connector Connector, resolver *ABIResolver) *ClientInitializer {
	ci := &ClientInitializer{
		registry:     reg,
		initializers: make(map[entities.ContractType]*Initializer),
	}
	for _, typ := range reg.Types() {
		if !reg.Prebuilt(typ) {
			continue
		}
		ci.initializers[typ] = &Initializer{
			contractType: typ,
			connector:    connector,
			resolver:     resolver,
		}
	}
	return ci
}

// For returns the initializer of typ
func (ci *ClientInitializer) For(typ entities.ContractType) (*Initializer, error) {
	initializer, ok := ci.initializers[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrUnsupportedContractType, typ)
	}
	return initializer, nil
}

// Types lists the contract types that have an initializer, in registry order
func (ci *ClientInitializer) Types() []entities.ContractType {
	out := make([]entities.ContractType, 0, len(ci.initializers))
	for _, typ := range ci.registry.Types() {
		if _, ok := ci.initializers[typ]; ok {
			out = append(out, typ)
		}
	}
	return out
}
