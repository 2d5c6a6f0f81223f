// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/i18n"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

type PaymentHandler struct {
	gatewayService *services.GatewayService
}

func NewPaymentHandler(gatewayService *services.GatewayService) *PaymentHandler {
	return &PaymentHandler{
		gatewayService: gatewayService,
	}
}

// POST /payments/intent
func (h *PaymentHandler) CreateCheckoutIntent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyer, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CheckoutIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	intent, err := h.gatewayService.CreateCheckoutIntent(buyer, &req)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, intent)
}

// POST /payments/confirm
func (h *PaymentHandler) ConfirmCheckout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyer, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.gatewayService.ConfirmCheckout(buyer, &req)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPaymentSuccess),
		"purchase": result,
	})
}
