package contracts

import (
	"context"
	"math/big"
)

// NFTDrop is a lazy-minted ERC721 collection claimed under claim conditions
type NFTDrop struct {
	*contract
	ERC721
}

func newNFTDrop(p Params) Client {
	c := newContract(p)
	return &NFTDrop{contract: c, ERC721: ERC721{c: c}}
}

// NextTokenIDToClaim returns the id the next claim will receive
func (d *NFTDrop) NextTokenIDToClaim(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, d.contract, "nextTokenIdToClaim")
}

func (d *NFTDrop) MaxTotalSupply(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, d.contract, "maxTotalSupply")
}

func (d *NFTDrop) DefaultRoyalty(ctx context.Context) (Royalty, error) {
	return defaultRoyalty(ctx, d.contract)
}

// SignatureDrop is an ERC721 drop that also accepts signed mint requests
type SignatureDrop struct {
	*contract
	ERC721
}

func newSignatureDrop(p Params) Client {
	c := newContract(p)
	return &SignatureDrop{contract: c, ERC721: ERC721{c: c}}
}

func (d *SignatureDrop) NextTokenIDToClaim(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, d.contract, "nextTokenIdToClaim")
}

func (d *SignatureDrop) DefaultRoyalty(ctx context.Context) (Royalty, error) {
	return defaultRoyalty(ctx, d.contract)
}

// EditionDrop is a lazy-minted ERC1155 collection with per-token claim conditions
type EditionDrop struct {
	*contract
	ERC1155
}

func newEditionDrop(p Params) Client {
	c := newContract(p)
	return &EditionDrop{contract: c, ERC1155: ERC1155{c: c}}
}

// ActiveClaimConditionID returns the index of the claim condition active for tokenID
func (d *EditionDrop) ActiveClaimConditionID(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return callTyped[*big.Int](ctx, d.contract, "getActiveClaimConditionId", tokenID)
}

func (d *EditionDrop) DefaultRoyalty(ctx context.Context) (Royalty, error) {
	return defaultRoyalty(ctx, d.contract)
}

// TokenDrop is an ERC20 sold through claim conditions
type TokenDrop struct {
	*contract
	ERC20
}

func newTokenDrop(p Params) Client {
	c := newContract(p)
	return &TokenDrop{contract: c, ERC20: ERC20{c: c}}
}

func (d *TokenDrop) ActiveClaimConditionID(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, d.contract, "getActiveClaimConditionId")
}
