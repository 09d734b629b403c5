package contracts

import (
	"fmt"

	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
)

// Constructor builds the client for one contract type
type Constructor func(Params) Client

var constructors = map[entities.ContractType]Constructor{
	entities.ContractTypeEditionDrop:   newEditionDrop,
	entities.ContractTypeEdition:       newEdition,
	entities.ContractTypeMarketplace:   newMarketplace,
	entities.ContractTypeMultiwrap:     newMultiwrap,
	entities.ContractTypeNFTCollection: newNFTCollection,
	entities.ContractTypeNFTDrop:       newNFTDrop,
	entities.ContractTypePack:          newPack,
	entities.ContractTypeSignatureDrop: newSignatureDrop,
	entities.ContractTypeSplit:         newSplit,
	entities.ContractTypeTokenDrop:     newTokenDrop,
	entities.ContractTypeToken:         newToken,
	entities.ContractTypeVote:          newVote,
}

// ConstructorFor returns the constructor registered for typ
func ConstructorFor(typ entities.ContractType) (Constructor, error) {
	ctor, ok := constructors[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrUnsupportedContractType, typ)
	}
	return ctor, nil
}
