package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/internal/interfaces/http/response"
	"contract-registry.backend/internal/usecases"
	"contract-registry.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContractDetector reports which type a deployed contract claims to be
type ContractDetector interface {
	Detect(ctx context.Context, network blockchain.Network, address string, options *entities.SDKOptions) (*entities.DetectedContract, error)
}

// ContractResolver initializes contract clients and serves the resolution ledger
type ContractResolver interface {
	Network(rpcURL string) blockchain.Network
	WithTimeout(ctx context.Context) (context.Context, context.CancelFunc)
	Resolve(ctx context.Context, input *entities.ResolveContractInput) (*usecases.ResolvedContract, error)
	List(ctx context.Context, filter entities.ContractRecordFilter, pagination utils.PaginationParams) ([]*entities.ContractRecord, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ContractRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Metadata(ctx context.Context, id uuid.UUID, rpcURL string) (*usecases.ResolutionMetadata, error)
	RoleMembers(ctx context.Context, id uuid.UUID, rpcURL string, role entities.Role) (*usecases.ResolutionRoleMembers, error)
}

// ResolvedContractView describes an initialized client
type ResolvedContractView struct {
	ID              uuid.UUID             `json:"id"`
	ContractType    entities.ContractType `json:"contractType"`
	ContractAddress string                `json:"contractAddress"`
	ChainID         int64                 `json:"chainId"`
	RemoteName      string                `json:"remoteName"`
	Version         uint8                 `json:"version"`
	ABIBand         abis.Band             `json:"abiBand"`
	ABIAsset        string                `json:"abiAsset"`
	Roles           []entities.Role       `json:"roles"`
	Functions       []string              `json:"functions"`
}

type ContractHandler struct {
	detector ContractDetector
	resolver ContractResolver
}

func NewContractHandler(detector ContractDetector, resolver ContractResolver) *ContractHandler {
	return &ContractHandler{detector: detector, resolver: resolver}
}

// DetectContract reads a contract's self-reported type.
// POST /api/v1/contracts/detect
func (h *ContractHandler) DetectContract(c *gin.Context) {
	var input entities.DetectContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ctx, cancel := h.resolver.WithTimeout(c.Request.Context())
	defer cancel()

	detected, err := h.detector.Detect(ctx, h.resolver.Network(input.RPCURL), input.ContractAddress, input.Options)
	if err != nil {
		response.Error(c, resolutionError(err))
		return
	}
	response.Success(c, http.StatusOK, detected)
}

// ResolveContract initializes a client for the expected contract type.
// POST /api/v1/contracts/resolve
func (h *ContractHandler) ResolveContract(c *gin.Context) {
	var input entities.ResolveContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, resolutionError(err))
		return
	}

	client := resolved.Client
	functions := make([]string, 0, len(client.ABI().Methods))
	for _, method := range client.ABI().Methods {
		functions = append(functions, method.Sig)
	}
	sort.Strings(functions)

	response.Success(c, http.StatusOK, ResolvedContractView{
		ID:              resolved.Record.ID,
		ContractType:    client.Type(),
		ContractAddress: client.Address(),
		ChainID:         resolved.Record.ChainID,
		RemoteName:      resolved.Record.RemoteName,
		Version:         resolved.Record.Version,
		ABIBand:         client.Band(),
		ABIAsset:        resolved.Record.ABIAsset,
		Roles:           client.Roles(),
		Functions:       functions,
	})
}

// ListResolutions returns the resolution ledger.
// GET /api/v1/contracts/resolutions?chainId=&contractType=&address=&page=&limit=
func (h *ContractHandler) ListResolutions(c *gin.Context) {
	var filter entities.ContractRecordFilter
	if raw := c.Query("chainId"); raw != "" {
		chainID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid chainId"))
			return
		}
		filter.ChainID = &chainID
	}
	filter.ContractType = entities.ContractType(c.Query("contractType"))
	filter.Address = c.Query("address")

	var page utils.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid pagination"))
		return
	}
	page = utils.GetPaginationParams(page.Page, page.Limit)

	items, total, err := h.resolver.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, utils.CalculateMeta(total, page.Page, page.Limit))
}

// GetResolution returns one ledger entry.
// GET /api/v1/contracts/resolutions/:id
func (h *ContractHandler) GetResolution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid resolution ID"))
		return
	}

	record, err := h.resolver.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("resolution not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// DeleteResolution soft deletes a ledger entry.
// DELETE /api/v1/contracts/resolutions/:id
func (h *ContractHandler) DeleteResolution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid resolution ID"))
		return
	}

	if err := h.resolver.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("resolution not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Resolution deleted"})
}

// GetResolutionMetadata reads the contract-level metadata of a resolved contract.
// GET /api/v1/contracts/resolutions/:id/metadata?rpcUrl=
func (h *ContractHandler) GetResolutionMetadata(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid resolution ID"))
		return
	}

	out, err := h.resolver.Metadata(c.Request.Context(), id, c.Query("rpcUrl"))
	if err != nil {
		response.Error(c, resolutionError(err))
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetResolutionRoleMembers lists the holders of a role on a resolved contract.
// GET /api/v1/contracts/resolutions/:id/roles/:role?rpcUrl=
func (h *ContractHandler) GetResolutionRoleMembers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid resolution ID"))
		return
	}

	out, err := h.resolver.RoleMembers(c.Request.Context(), id, c.Query("rpcUrl"), entities.Role(c.Param("role")))
	if err != nil {
		response.Error(c, resolutionError(err))
		return
	}
	response.Success(c, http.StatusOK, out)
}

func resolutionError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.NewAppError(http.StatusGatewayTimeout, domainerrors.CodeUpstreamError, "contract resolution timed out", err)
	}
	return domainerrors.FromResolution(err)
}
