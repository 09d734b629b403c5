package handlers

import (
	"net/http"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/domain/entities"
	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// TypeRegistry is the read side of the contract type registry
type TypeRegistry interface {
	Lookup(typ entities.ContractType) (entities.ContractDescriptor, bool)
	MatchRemoteName(name string) (entities.ContractType, bool)
	TypeForRemoteName(name string) entities.ContractType
	Prebuilt(typ entities.ContractType) bool
	Descriptors() []entities.ContractDescriptor
}

// ContractTypeView is the public shape of a registered contract type
type ContractTypeView struct {
	Type            entities.ContractType `json:"type"`
	RemoteName      string                `json:"remoteName"`
	Roles           []entities.Role       `json:"roles"`
	Prebuilt        bool                  `json:"prebuilt"`
	LegacyThreshold *uint8                `json:"legacyThreshold,omitempty"`
	Schema          string                `json:"schema,omitempty"`
	ABIs            map[abis.Band]string  `json:"abis,omitempty"`
}

type ContractTypeHandler struct {
	registry TypeRegistry
}

func NewContractTypeHandler(registry TypeRegistry) *ContractTypeHandler {
	return &ContractTypeHandler{registry: registry}
}

// ListContractTypes returns every registered type in registration order.
// GET /api/v1/contract-types
func (h *ContractTypeHandler) ListContractTypes(c *gin.Context) {
	descriptors := h.registry.Descriptors()
	items := make([]ContractTypeView, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, h.view(d))
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetContractType returns one registered type.
// GET /api/v1/contract-types/:type
func (h *ContractTypeHandler) GetContractType(c *gin.Context) {
	d, ok := h.registry.Lookup(entities.ContractType(c.Param("type")))
	if !ok {
		response.Error(c, domainerrors.NotFound("contract type not found"))
		return
	}
	response.Success(c, http.StatusOK, h.view(d))
}

// GetByRemoteName maps an on-chain contract name to its type id.
// Unregistered names map to the custom type.
// GET /api/v1/contract-types/remote/:name
func (h *ContractTypeHandler) GetByRemoteName(c *gin.Context) {
	name := c.Param("name")
	_, matched := h.registry.MatchRemoteName(name)
	typ := h.registry.TypeForRemoteName(name)
	response.Success(c, http.StatusOK, gin.H{
		"remoteName":   name,
		"contractType": typ,
		"matched":      matched,
		"prebuilt":     h.registry.Prebuilt(typ),
	})
}

// ValidateMetadata checks a contract metadata document against the type's schema.
// POST /api/v1/contract-types/:type/validate
func (h *ContractTypeHandler) ValidateMetadata(c *gin.Context) {
	d, ok := h.registry.Lookup(entities.ContractType(c.Param("type")))
	if !ok {
		response.Error(c, domainerrors.NotFound("contract type not found"))
		return
	}
	if d.Schema == nil {
		response.Error(c, domainerrors.BadRequest("contract type has no metadata schema"))
		return
	}

	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if err := d.Schema.Validate(doc); err != nil {
		response.Error(c, domainerrors.SchemaInvalid(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"valid":  true,
		"schema": d.Schema.Name(),
	})
}

func (h *ContractTypeHandler) view(d entities.ContractDescriptor) ContractTypeView {
	v := ContractTypeView{
		Type:            d.Type,
		RemoteName:      d.RemoteName,
		Roles:           d.Roles,
		Prebuilt:        h.registry.Prebuilt(d.Type),
		LegacyThreshold: d.LegacyThreshold,
	}
	if d.Schema != nil {
		v.Schema = d.Schema.Name()
	}
	for _, band := range []abis.Band{abis.BandCurrent, abis.BandLegacy} {
		if name, ok := abis.AssetName(d.Type, band); ok {
			if v.ABIs == nil {
				v.ABIs = make(map[abis.Band]string, 2)
			}
			v.ABIs[band] = name
		}
	}
	return v
}
