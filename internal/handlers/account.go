// internal/handlers/account.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/i18n"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

type AccountHandler struct {
	accountService *services.AccountService
	tokenService   *services.TokenService
}

func NewAccountHandler(accountService *services.AccountService, tokenService *services.TokenService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		tokenService:   tokenService,
	}
}

func parseAddress(c *gin.Context) (string, bool) {
	address := c.Param("address")
	if !utils.IsAddress(address) {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "address"), nil)
		return "", false
	}
	return address, true
}

// GET /accounts/:address
//
// Balance and holdings are both derived, never cached: credits come from the
// account row, the token count from a live count over the ownership table.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	address, ok := parseAddress(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetBalance(address)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	tokenCount, err := h.tokenService.BalanceOf(address)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"address":     address,
		"balance":     balance,
		"token_count": tokenCount,
	})
}

// GET /accounts/:address/tokens
func (h *AccountHandler) GetAccountTokens(c *gin.Context) {
	address, ok := parseAddress(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	tokens, total, err := h.tokenService.TokensOf(address, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(tokens, total, params))
}

type freezeRequest struct {
	Frozen bool `json:"frozen"`
}

// PATCH /admin/accounts/:address/freeze
//
// A frozen account rejects incoming credits, which in turn aborts any
// purchase that would pay it.
func (h *AccountHandler) SetFrozen(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	address, ok := parseAddress(c)
	if !ok {
		return
	}

	var req freezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.accountService.SetFrozen(address, req.Frozen); err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
		"address": address,
		"frozen":  req.Frozen,
	})
}
