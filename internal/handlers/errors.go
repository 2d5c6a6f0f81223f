// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/i18n"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

// respondLedgerError maps the ledger error taxonomy onto HTTP statuses.
// Callers fall through here after any service call so every handler agrees
// on the status for a given failure.
func respondLedgerError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrInvalidCommission):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_COMMISSION",
			i18n.T(lang, i18n.KeyEditionInvalidCommission), err.Error())
	case errors.Is(err, services.ErrIncorrectPayment):
		utils.ErrorResponse(c, http.StatusBadRequest, "INCORRECT_PAYMENT",
			i18n.T(lang, i18n.KeyPaymentInvalidAmount), err.Error())
	case errors.Is(err, services.ErrUnknownEdition):
		utils.ErrorResponse(c, http.StatusNotFound, "EDITION_NOT_FOUND",
			i18n.T(lang, i18n.KeyEditionNotFound), err.Error())
	case errors.Is(err, services.ErrNonexistentUnit):
		utils.ErrorResponse(c, http.StatusNotFound, "TOKEN_NOT_FOUND",
			i18n.T(lang, i18n.KeyTokenNotFound), err.Error())
	case errors.Is(err, services.ErrUnsoldUnit):
		utils.ErrorResponse(c, http.StatusNotFound, "TOKEN_NOT_SOLD",
			i18n.T(lang, i18n.KeyTokenNotSold), err.Error())
	case errors.Is(err, services.ErrSupplyExhausted):
		utils.ErrorResponse(c, http.StatusConflict, "SOLD_OUT",
			i18n.T(lang, i18n.KeyEditionSoldOut), err.Error())
	case errors.Is(err, services.ErrCheckoutConsumed):
		utils.ErrorResponse(c, http.StatusConflict, "CHECKOUT_CONSUMED",
			i18n.T(lang, i18n.KeyPaymentAlreadySettled), err.Error())
	case errors.Is(err, services.ErrFrozenAccount):
		utils.ErrorResponse(c, http.StatusConflict, "ACCOUNT_FROZEN",
			i18n.T(lang, i18n.KeyAccountFrozen), err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusForbidden, "NOT_AUTHORIZED",
			i18n.T(lang, i18n.KeyTokenUnauthorized), err.Error())
	case errors.Is(err, services.ErrOwnerMismatch):
		utils.ErrorResponse(c, http.StatusForbidden, "OWNER_MISMATCH",
			i18n.T(lang, i18n.KeyTokenNotOwner), err.Error())
	default:
		utils.InternalErrorResponse(c, "")
	}
}
