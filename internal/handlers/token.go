// internal/handlers/token.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/i18n"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

type TokenHandler struct {
	tokenService *services.TokenService
}

func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

func parseTokenID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "token id"), nil)
		return 0, false
	}
	return id, true
}

// GET /tokens/:id
func (h *TokenHandler) GetToken(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	token, err := h.tokenService.GetToken(tokenID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, token)
}

// GET /tokens/:id/uri
func (h *TokenHandler) GetTokenURI(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	uri, err := h.tokenService.TokenURI(tokenID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token_id":  tokenID,
		"token_uri": uri,
	})
}

// GET /tokens/:id/approved
func (h *TokenHandler) GetApproved(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	approved, err := h.tokenService.GetApproved(tokenID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token_id": tokenID,
		"approved": approved,
	})
}

type approveRequest struct {
	Delegate string `json:"delegate" validate:"required,address"`
}

// POST /tokens/:id/approve
func (h *TokenHandler) Approve(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	caller, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.tokenService.Approve(caller, tokenID, req.Delegate); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTokenApproved),
		"token_id": tokenID,
		"approved": req.Delegate,
	})
}

type transferRequest struct {
	From string `json:"from" validate:"required,address"`
	To   string `json:"to" validate:"required,address"`
}

// POST /tokens/:id/transfer
func (h *TokenHandler) Transfer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	caller, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.tokenService.TransferFrom(caller, req.From, req.To, tokenID); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyTokenTransferred),
		"token_id": tokenID,
		"from":     req.From,
		"to":       req.To,
	})
}

// GET /tokens/:id/owner
func (h *TokenHandler) GetOwner(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	owner, err := h.tokenService.OwnerOf(tokenID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token_id": tokenID,
		"owner":    owner,
	})
}
