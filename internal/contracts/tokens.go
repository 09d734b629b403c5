package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ERC721 reads shared by every ERC721-based client
type ERC721 struct {
	c *contract
}

func (t ERC721) Name(ctx context.Context) (string, error) {
	return callTyped[string](ctx, t.c, "name")
}

func (t ERC721) Symbol(ctx context.Context) (string, error) {
	return callTyped[string](ctx, t.c, "symbol")
}

func (t ERC721) TotalSupply(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "totalSupply")
}

func (t ERC721) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "balanceOf", common.HexToAddress(owner))
}

func (t ERC721) OwnerOf(ctx context.Context, tokenID *big.Int) (string, error) {
	owner, err := callTyped[common.Address](ctx, t.c, "ownerOf", tokenID)
	if err != nil {
		return "", err
	}
	return owner.Hex(), nil
}

func (t ERC721) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	return callTyped[string](ctx, t.c, "tokenURI", tokenID)
}

// ERC1155 reads shared by every ERC1155-based client
type ERC1155 struct {
	c *contract
}

func (t ERC1155) Name(ctx context.Context) (string, error) {
	return callTyped[string](ctx, t.c, "name")
}

func (t ERC1155) Symbol(ctx context.Context) (string, error) {
	return callTyped[string](ctx, t.c, "symbol")
}

func (t ERC1155) NextTokenIDToMint(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "nextTokenIdToMint")
}

func (t ERC1155) TotalSupply(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "totalSupply", tokenID)
}

func (t ERC1155) BalanceOf(ctx context.Context, owner string, tokenID *big.Int) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "balanceOf", common.HexToAddress(owner), tokenID)
}

func (t ERC1155) URI(ctx context.Context, tokenID *big.Int) (string, error) {
	return callTyped[string](ctx, t.c, "uri", tokenID)
}

// ERC20 reads shared by every ERC20-based client
type ERC20 struct {
	c *contract
}

func (t ERC20) Name(ctx context.Context) (string, error) {
	return callTyped[string](ctx, t.c, "name")
}

func (t ERC20) Symbol(ctx context.Context) (string, error) {
	return callTyped[string](ctx, t.c, "symbol")
}

func (t ERC20) Decimals(ctx context.Context) (uint8, error) {
	return callTyped[uint8](ctx, t.c, "decimals")
}

func (t ERC20) TotalSupply(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "totalSupply")
}

func (t ERC20) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "balanceOf", common.HexToAddress(owner))
}

func (t ERC20) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.c, "allowance", common.HexToAddress(owner), common.HexToAddress(spender))
}

// Royalty is the default royalty configuration of a collection
type Royalty struct {
	Recipient string
	Bps       uint16
}

func defaultRoyalty(ctx context.Context, c *contract) (Royalty, error) {
	vals, err := c.Call(ctx, "getDefaultRoyaltyInfo")
	if err != nil {
		return Royalty{}, err
	}
	recipient, _ := vals[0].(common.Address)
	bps, _ := vals[1].(uint16)
	return Royalty{Recipient: recipient.Hex(), Bps: bps}, nil
}
