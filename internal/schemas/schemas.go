// Package schemas holds the contract-level metadata schemas attached to each
// registered contract type.
package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CommonContract is the metadata every contract carries
type CommonContract struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	ExternalLink string `json:"external_link" validate:"omitempty,url"`
}

type CommonRoyalty struct {
	SellerFeeBasisPoints uint16 `json:"seller_fee_basis_points" validate:"lte=10000"`
	FeeRecipient         string `json:"fee_recipient" validate:"omitempty,eth_addr"`
}

type CommonPrimarySale struct {
	PrimarySaleRecipient string `json:"primary_sale_recipient" validate:"omitempty,eth_addr"`
}

type CommonPlatformFee struct {
	PlatformFeeBasisPoints uint16 `json:"platform_fee_basis_points" validate:"lte=10000"`
	PlatformFeeRecipient   string `json:"platform_fee_recipient" validate:"omitempty,eth_addr"`
}

type CommonSymbol struct {
	Symbol string `json:"symbol"`
}

type CommonTrustedForwarder struct {
	TrustedForwarders []string `json:"trusted_forwarders" validate:"omitempty,dive,eth_addr"`
}

type DropErc721Contract struct {
	CommonContract
	CommonRoyalty
	CommonSymbol
	CommonPrimarySale
	CommonPlatformFee
	CommonTrustedForwarder
}

type DropErc1155Contract struct {
	CommonContract
	CommonRoyalty
	CommonSymbol
	CommonPrimarySale
	CommonPlatformFee
	CommonTrustedForwarder
}

type DropErc20Contract struct {
	CommonContract
	CommonSymbol
	CommonPrimarySale
	CommonPlatformFee
	CommonTrustedForwarder
}

type TokenErc721Contract struct {
	CommonContract
	CommonRoyalty
	CommonSymbol
	CommonPrimarySale
	CommonPlatformFee
	CommonTrustedForwarder
}

type TokenErc1155Contract struct {
	CommonContract
	CommonRoyalty
	CommonSymbol
	CommonPrimarySale
	CommonPlatformFee
	CommonTrustedForwarder
}

type TokenErc20Contract struct {
	CommonContract
	CommonSymbol
	CommonPrimarySale
	CommonPlatformFee
	CommonTrustedForwarder
}

type MarketplaceContract struct {
	CommonContract
	CommonPlatformFee
	CommonTrustedForwarder
}

type PackContract struct {
	CommonContract
	CommonRoyalty
	CommonSymbol
	CommonTrustedForwarder
}

type MultiwrapContract struct {
	CommonContract
	CommonRoyalty
	CommonSymbol
	CommonTrustedForwarder
}

type SplitRecipient struct {
	Address   string `json:"address" validate:"required,eth_addr"`
	SharesBps uint16 `json:"sharesBps" validate:"gt=0,lte=10000"`
}

type SplitsContract struct {
	CommonContract
	CommonTrustedForwarder
	Recipients []SplitRecipient `json:"recipients" validate:"required,min=1,dive"`
}

func (s SplitsContract) check() error {
	var total uint32
	for _, r := range s.Recipients {
		total += uint32(r.SharesBps)
	}
	if total != 10000 {
		return fmt.Errorf("recipient shares must add up to 10000 bps, got %d", total)
	}
	return nil
}

type VoteContract struct {
	CommonContract
	CommonTrustedForwarder
	VotingDelayInBlocks    uint64 `json:"voting_delay_in_blocks"`
	VotingPeriodInBlocks   uint64 `json:"voting_period_in_blocks"`
	VotingTokenAddress     string `json:"voting_token_address" validate:"required,eth_addr"`
	VotingQuorumFraction   uint8  `json:"voting_quorum_fraction" validate:"lte=100"`
	ProposalTokenThreshold string `json:"proposal_token_threshold" validate:"omitempty,numeric"`
}

type CustomContract struct {
	CommonContract
}

type checker interface {
	check() error
}

// Schema validates a metadata document by decoding it into T
type Schema[T any] struct {
	name string
}

func newSchema[T any](name string) Schema[T] {
	return Schema[T]{name: name}
}

func (s Schema[T]) Name() string {
	return s.name
}

// Decode converts doc into the schema's typed form and validates it
func (s Schema[T]) Decode(doc map[string]interface{}) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("%s: failed to encode metadata: %w", s.name, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s: %w", s.name, err)
	}
	if err := validate.Struct(out); err != nil {
		return out, fmt.Errorf("%s: %w", s.name, err)
	}
	if c, ok := any(out).(checker); ok {
		if err := c.check(); err != nil {
			return out, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return out, nil
}

func (s Schema[T]) Validate(doc map[string]interface{}) error {
	_, err := s.Decode(doc)
	return err
}

var (
	DropErc721   = newSchema[DropErc721Contract]("DropErc721ContractSchema")
	DropErc1155  = newSchema[DropErc1155Contract]("DropErc1155ContractSchema")
	DropErc20    = newSchema[DropErc20Contract]("DropErc20ContractSchema")
	TokenErc721  = newSchema[TokenErc721Contract]("TokenErc721ContractSchema")
	TokenErc1155 = newSchema[TokenErc1155Contract]("TokenErc1155ContractSchema")
	TokenErc20   = newSchema[TokenErc20Contract]("TokenErc20ContractSchema")
	Marketplace  = newSchema[MarketplaceContract]("MarketplaceContractSchema")
	Pack         = newSchema[PackContract]("PackContractSchema")
	Multiwrap    = newSchema[MultiwrapContract]("MultiwrapContractSchema")
	Splits       = newSchema[SplitsContract]("SplitsContractSchema")
	Vote         = newSchema[VoteContract]("VoteContractSchema")
	Custom       = newSchema[CustomContract]("CustomContractSchema")
)
