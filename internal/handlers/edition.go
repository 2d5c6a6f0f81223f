// internal/handlers/edition.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/i18n"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

type EditionHandler struct {
	editionService  *services.EditionService
	purchaseService *services.PurchaseService
}

func NewEditionHandler(editionService *services.EditionService, purchaseService *services.PurchaseService) *EditionHandler {
	return &EditionHandler{
		editionService:  editionService,
		purchaseService: purchaseService,
	}
}

func parseEditionID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "edition id"), nil)
		return 0, false
	}
	return id, true
}

// POST /editions
func (h *EditionHandler) CreateEdition(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	edition, err := h.editionService.CreateEdition(&req)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEditionCreated),
		"edition": edition,
	})
}

// GET /editions/:id
func (h *EditionHandler) GetEdition(c *gin.Context) {
	editionID, ok := parseEditionID(c)
	if !ok {
		return
	}

	edition, err := h.editionService.GetEdition(editionID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, edition)
}

// GET /editions
func (h *EditionHandler) ListEditions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	editions, total, err := h.editionService.ListEditions(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(editions, total, params))
}

type purchaseRequest struct {
	Referrer string `json:"referrer" validate:"required,address"`
	Payment  uint64 `json:"payment"`
}

// POST /editions/:id/purchase
//
// The buyer is the authenticated caller's address; it never comes from the
// request body. Payment must equal the edition price exactly.
func (h *EditionHandler) BuyEdition(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	editionID, ok := parseEditionID(c)
	if !ok {
		return
	}

	buyer, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.purchaseService.BuyEdition(editionID, buyer, req.Referrer, req.Payment)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyEditionPurchased),
		"purchase": result,
	})
}
