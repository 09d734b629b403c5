package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Marketplace lists direct sales and auctions
type Marketplace struct {
	*contract
}

func newMarketplace(p Params) Client {
	return &Marketplace{contract: newContract(p)}
}

func (m *Marketplace) TotalListings(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, m.contract, "totalListings")
}

// TimeBuffer is the auction extension window in seconds
func (m *Marketplace) TimeBuffer(ctx context.Context) (uint64, error) {
	return callTyped[uint64](ctx, m.contract, "timeBuffer")
}

func (m *Marketplace) BidBufferBps(ctx context.Context) (uint64, error) {
	return callTyped[uint64](ctx, m.contract, "bidBufferBps")
}

// Split distributes received funds between payees by share
type Split struct {
	*contract
}

func newSplit(p Params) Client {
	return &Split{contract: newContract(p)}
}

// Recipient is one payee of a split and its share
type Recipient struct {
	Address string
	Shares  *big.Int
}

func (s *Split) TotalShares(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, s.contract, "totalShares")
}

func (s *Split) TotalReleased(ctx context.Context) (*big.Int, error) {
	return callTyped[*big.Int](ctx, s.contract, "totalReleased")
}

// Recipients lists every payee with its shares
func (s *Split) Recipients(ctx context.Context) ([]Recipient, error) {
	count, err := callTyped[*big.Int](ctx, s.contract, "payeeCount")
	if err != nil {
		return nil, err
	}

	out := make([]Recipient, 0, count.Int64())
	for i := int64(0); i < count.Int64(); i++ {
		payee, err := callTyped[common.Address](ctx, s.contract, "payee", big.NewInt(i))
		if err != nil {
			return nil, err
		}
		shares, err := callTyped[*big.Int](ctx, s.contract, "shares", payee)
		if err != nil {
			return nil, err
		}
		out = append(out, Recipient{Address: payee.Hex(), Shares: shares})
	}
	return out, nil
}

// Vote is an ERC20-weighted governor
type Vote struct {
	*contract
}

func newVote(p Params) Client {
	return &Vote{contract: newContract(p)}
}

// Settings are the governance parameters of a vote contract
type Settings struct {
	VotingToken       string
	VotingDelay       *big.Int
	VotingPeriod      *big.Int
	ProposalThreshold *big.Int
	QuorumNumerator   *big.Int
}

func (v *Vote) Settings(ctx context.Context) (*Settings, error) {
	token, err := callTyped[common.Address](ctx, v.contract, "token")
	if err != nil {
		return nil, err
	}
	delay, err := callTyped[*big.Int](ctx, v.contract, "votingDelay")
	if err != nil {
		return nil, err
	}
	period, err := callTyped[*big.Int](ctx, v.contract, "votingPeriod")
	if err != nil {
		return nil, err
	}
	threshold, err := callTyped[*big.Int](ctx, v.contract, "proposalThreshold")
	if err != nil {
		return nil, err
	}
	quorum, err := callTyped[*big.Int](ctx, v.contract, "quorumNumerator")
	if err != nil {
		return nil, err
	}
	return &Settings{
		VotingToken:       token.Hex(),
		VotingDelay:       delay,
		VotingPeriod:      period,
		ProposalThreshold: threshold,
		QuorumNumerator:   quorum,
	}, nil
}

// ProposalState returns the governor state of proposalID
func (v *Vote) ProposalState(ctx context.Context, proposalID *big.Int) (uint8, error) {
	return callTyped[uint8](ctx, v.contract, "state", proposalID)
}
