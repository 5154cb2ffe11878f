package handlers

import (
	"net/http"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/gestion-app/gestion_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// referenceHandler handles HTTP requests for reference issuance.
type referenceHandler struct {
	referenceService portssvc.ReferenceSvcFacade
}

func newReferenceHandler(referenceService portssvc.ReferenceSvcFacade) *referenceHandler {
	return &referenceHandler{referenceService: referenceService}
}

// nextRef godoc
// @Summary Issue the next reference code for an entity class
// @Description Consumes and returns the next "PREFIX-N" code for the given table key, e.g. for pre-printing paper receipts. The number is consumed even if never attached to a row; skipped numbers are harmless, reused ones are not.
// @Tags references
// @Produce json
// @Param tableKey path string true "Entity class" Enums(users, accounts, clients, suppliers, sales, purchases, transactions)
// @Success 201 {object} dto.RefResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /references/{tableKey} [post]
func (h *referenceHandler) nextRef(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ref, err := h.referenceService.NextRef(c.Request.Context(), domain.TableKey(c.Param("tableKey")))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RefResponse{Ref: ref})
}

// registerReferenceRoutes registers reference issuance routes.
func registerReferenceRoutes(group *gin.RouterGroup, referenceService portssvc.ReferenceSvcFacade) {
	h := newReferenceHandler(referenceService)

	group.POST("/references/:tableKey", h.nextRef)
}
