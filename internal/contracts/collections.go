package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// NFTCollection is a mint-on-demand ERC721 collection
type NFTCollection struct {
	*contract
	ERC721
}

func newNFTCollection(p Params) Client {
	c := newContract(p)
	return &NFTCollection{contract: c, ERC721: ERC721{c: c}}
}

func (n *NFTCollection) NextTokenIDToMint(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, n.contract, "nextTokenIdToMint")
}

func (n *NFTCollection) DefaultRoyalty(ctx context.Context) (Royalty, error) {
	return defaultRoyalty(ctx, n.contract)
}

// Edition is a mint-on-demand ERC1155 collection
type Edition struct {
	*contract
	ERC1155
}

func newEdition(p Params) Client {
	c := newContract(p)
	return &Edition{contract: c, ERC1155: ERC1155{c: c}}
}

func (e *Edition) DefaultRoyalty(ctx context.Context) (Royalty, error) {
	return defaultRoyalty(ctx, e.contract)
}

// Token is a mintable ERC20 with vote delegation
type Token struct {
	*contract
	ERC20
}

func newToken(p Params) Client {
	c := newContract(p)
	return &Token{contract: c, ERC20: ERC20{c: c}}
}

// Votes returns the delegated voting power of account
func (t *Token) Votes(ctx context.Context, account string) (*big.Int, error) {
	return callTyped[*big.Int](ctx, t.contract, "getVotes", common.HexToAddress(account))
}

// Multiwrap bundles ERC20, ERC721 and ERC1155 assets into a single ERC721
type Multiwrap struct {
	*contract
	ERC721
}

func newMultiwrap(p Params) Client {
	c := newContract(p)
	return &Multiwrap{contract: c, ERC721: ERC721{c: c}}
}

func (m *Multiwrap) NextTokenIDToMint(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, m.contract, "nextTokenIdToMint")
}

// Pack is an ERC1155 whose tokens open into randomized rewards
type Pack struct {
	*contract
	ERC1155
}

func newPack(p Params) Client {
	c := newContract(p)
	return &Pack{contract: c, ERC1155: ERC1155{c: c}}
}

// CanUpdatePack reports whether more rewards can still be added to packID
func (p *Pack) CanUpdatePack(ctx context.Context, packID *big.Int) (bool, error) {
	return callTyped[bool](ctx, p.contract, "canUpdatePack", packID)
}
