package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/gestion-app/gestion_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contactHandler handles HTTP requests for clients and suppliers.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(contactService portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: contactService}
}

// createContact godoc
// @Summary Create a contact
// @Description Creates a client or supplier; the CLI or FOU ref is issued server-side.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body dto.CreateContactRequest true "Contact"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Router /contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	agentID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), req, agentID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// getContact godoc
// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Param contactID path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} ErrorResponse
// @Router /contacts/{contactID} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID := c.Param("contactID")

	contact, err := h.contactService.GetContactByID(c.Request.Context(), contactID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List contacts
// @Description Retrieves active contacts, optionally filtered with ?kind=client|supplier.
// @Tags contacts
// @Produce json
// @Param kind query string false "Contact kind filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Router /contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var kind *domain.ContactKind
	if kindStr := c.Query("kind"); kindStr != "" {
		k := domain.ContactKind(kindStr)
		if k != domain.ContactClient && k != domain.ContactSupplier {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid kind parameter"})
			return
		}
		kind = &k
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, err := h.contactService.ListContacts(c.Request.Context(), kind, limit, offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	responses := make([]dto.ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = dto.ToContactResponse(&contacts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// registerContactRoutes registers contact specific routes.
func registerContactRoutes(group *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := group.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:contactID", h.getContact)
	}
}
