package handler

import (
	"net/http"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/service"

	"github.com/gin-gonic/gin"
)

// BillsHandler serves the saved-bills log.
type BillsHandler struct {
	billing     service.BillingService
	docs        service.DocumentService
	defaultLang i18n.Language
}

func NewBillsHandler(billing service.BillingService, docs service.DocumentService, defaultLang i18n.Language) *BillsHandler {
	return &BillsHandler{billing: billing, docs: docs, defaultLang: defaultLang}
}

func (h *BillsHandler) List(c *gin.Context) {
	list, err := h.billing.ListSaved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BillsHandler) PDF(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.docs.ExportSaved(c.Request.Context(), id, language(c, h.defaultLang))
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, out)
}
