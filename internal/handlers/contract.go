// internal/handlers/contract.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

type ContractHandler struct {
	contractService *services.ContractService
	statsService    *services.StatsService
}

func NewContractHandler(contractService *services.ContractService, statsService *services.StatsService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		statsService:    statsService,
	}
}

// GET /contract
func (h *ContractHandler) GetContract(c *gin.Context) {
	meta, err := h.contractService.GetMetadata()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, meta)
}

// GET /stats
func (h *ContractHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetPlatformStats()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, stats)
}
