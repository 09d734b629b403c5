package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/contracts"
	"contract-registry.backend/internal/domain/entities"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/internal/infrastructure/storage"
	"contract-registry.backend/internal/registry"
	"contract-registry.backend/internal/usecases"
	"contract-registry.backend/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// toolkit is what the commands share; it is built once in Before
type toolkit struct {
	registry *registry.Registry
	factory  *blockchain.ClientFactory
	reader   *blockchain.MetadataReader
}

func (k toolkit) initialize(ctx context.Context, typ, rpcURL, address string, store contracts.Storage) (*usecases.Initialized, error) {
	resolver := usecases.NewABIResolver(k.registry, abis.Default(), k.reader)
	initializer, err := usecases.NewClientInitializer(k.registry, k.factory, resolver).For(entities.ContractType(typ))
	if err != nil {
		return nil, err
	}
	return initializer.InitializeDetailed(ctx, blockchain.Network{RPCURL: rpcURL}, address, store, nil)
}

func newApp(out io.Writer) *cli.App {
	var (
		rpcURL   string
		timeout  time.Duration
		logLevel string
		gateway  string
		kit      toolkit
	)

	return &cli.App{
		Name:      "resolve",
		Usage:     "Inspect and resolve prebuilt contracts",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "rpc",
				Usage:       "JSON-RPC endpoint of the chain to read from",
				EnvVars:     []string{"DEFAULT_RPC_URL"},
				Destination: &rpcURL,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Value:       15 * time.Second,
				Usage:       "Upper bound for a single detect or init",
				EnvVars:     []string{"RESOLVE_TIMEOUT"},
				Destination: &timeout,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Value:       "warn",
				Usage:       "Logger level (debug, info, warn, error)",
				Destination: &logLevel,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Init("development")
			if err := logger.SetLevel(logLevel); err != nil {
				return err
			}
			reader, err := blockchain.NewMetadataReader()
			if err != nil {
				return err
			}
			kit = toolkit{
				registry: registry.Default(),
				factory:  blockchain.NewClientFactory(),
				reader:   reader,
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if kit.factory != nil {
				kit.factory.Close()
			}
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "types",
				Usage: "List registered contract types",
				Action: func(c *cli.Context) error {
					type row struct {
						Type       entities.ContractType `json:"type"`
						RemoteName string                `json:"remoteName"`
						Roles      []entities.Role       `json:"roles"`
						Legacy     string                `json:"legacyAbi,omitempty"`
					}
					rows := make([]row, 0)
					for _, d := range kit.registry.Descriptors() {
						legacy, _ := abis.AssetName(d.Type, abis.BandLegacy)
						rows = append(rows, row{Type: d.Type, RemoteName: d.RemoteName, Roles: d.Roles, Legacy: legacy})
					}
					return printJSON(c.App.Writer, rows)
				},
			},
			{
				Name:      "detect",
				Usage:     "Report the contract type a deployed contract claims",
				ArgsUsage: "ADDRESS",
				Action: func(c *cli.Context) error {
					address, err := addressArg(c, rpcURL)
					if err != nil {
						return err
					}
					ctx, cancel := context.WithTimeout(c.Context, timeout)
					defer cancel()

					detect := usecases.NewDetectUsecase(kit.registry, kit.factory, kit.reader)
					out, err := detect.Detect(ctx, blockchain.Network{RPCURL: rpcURL}, address, nil)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, out)
				},
			},
			{
				Name:      "init",
				Usage:     "Initialize a client for the expected contract type",
				ArgsUsage: "ADDRESS",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Expected contract type id, e.g. nft-drop",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					address, err := addressArg(c, rpcURL)
					if err != nil {
						return err
					}
					ctx, cancel := context.WithTimeout(c.Context, timeout)
					defer cancel()

					out, err := kit.initialize(ctx, c.String("type"), rpcURL, address, nil)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, map[string]interface{}{
						"contractType":    out.Client.Type(),
						"contractAddress": out.Client.Address(),
						"chainId":         out.ChainID.String(),
						"remoteName":      out.Resolution.Metadata.RemoteName,
						"version":         out.Resolution.Metadata.Version,
						"abiBand":         out.Resolution.Definition.Band,
						"abiAsset":        out.Resolution.Definition.Asset,
						"roles":           out.Client.Roles(),
					})
				},
			},
			{
				Name:      "metadata",
				Usage:     "Read and validate the contract-level metadata document",
				ArgsUsage: "ADDRESS",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Expected contract type id, e.g. nft-drop",
						Required: true,
					},
					&cli.StringFlag{
						Name:        "gateway",
						Value:       "https://ipfs.io/ipfs/",
						Usage:       "IPFS HTTP gateway used for ipfs:// URIs",
						EnvVars:     []string{"IPFS_GATEWAY_URL"},
						Destination: &gateway,
					},
				},
				Action: func(c *cli.Context) error {
					address, err := addressArg(c, rpcURL)
					if err != nil {
						return err
					}
					ctx, cancel := context.WithTimeout(c.Context, timeout)
					defer cancel()

					out, err := kit.initialize(ctx, c.String("type"), rpcURL, address, storage.NewGatewayStorage(gateway, nil, 0))
					if err != nil {
						return err
					}
					doc, err := out.Client.Metadata(ctx)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, map[string]interface{}{
						"contractType":    out.Client.Type(),
						"contractAddress": out.Client.Address(),
						"chainId":         out.ChainID.String(),
						"metadata":        doc,
					})
				},
			},
		},
	}
}

func addressArg(c *cli.Context, rpcURL string) (string, error) {
	if rpcURL == "" {
		return "", errors.New("--rpc is required")
	}
	if c.NArg() != 1 {
		return "", errors.New("expected exactly one ADDRESS argument")
	}
	return c.Args().First(), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
