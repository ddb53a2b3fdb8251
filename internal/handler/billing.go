package handler

import (
	"mime"
	"net/http"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/dto"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/render"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing     service.BillingService
	docs        service.DocumentService
	shopName    string
	defaultLang i18n.Language
}

func NewBillingHandler(billing service.BillingService, docs service.DocumentService, shopName string, defaultLang i18n.Language) *BillingHandler {
	return &BillingHandler{billing: billing, docs: docs, shopName: shopName, defaultLang: defaultLang}
}

// respond writes the draft as the billing screen needs it: bill, search box
// and the rendered table in the requested language.
func (h *BillingHandler) respond(c *gin.Context, status int, d service.Draft) {
	lang := language(c, h.defaultLang)
	bill := d.Composer.Bill()
	editing, isEditing := d.Composer.Editing()

	resp := dto.DraftResponse{
		ID:       d.ID,
		Language: lang,
		Bill:     bill,
		Search:   d.Composer.SearchState(),
		Table:    render.Table(render.Build(bill, lang, h.shopName), editing),
		Total:    render.FormatMoney(d.Composer.Total()),
		Options:  d.Composer.Options(),
	}
	if isEditing {
		resp.EditingLineID = &editing
	}
	c.JSON(status, resp)
}

// reply writes d, or the error that prevented the transition.
func (h *BillingHandler) reply(c *gin.Context, d service.Draft, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

func (h *BillingHandler) Create(c *gin.Context) {
	d, err := h.billing.CreateDraft(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, d)
}

func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.billing.Draft(id)
	h.reply(c, d, err)
}

func (h *BillingHandler) Discard(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.billing.Discard(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BillingHandler) SetCustomer(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.CustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.billing.SetCustomer(id, req)
	h.reply(c, d, err)
}

func (h *BillingHandler) Suggestions(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.billing.Suggest(c.Request.Context(), id, c.Query("q"))
	h.reply(c, d, err)
}

func (h *BillingHandler) Select(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.SelectRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.billing.Select(c.Request.Context(), id, req.ProductID)
	h.reply(c, d, err)
}

func (h *BillingHandler) Navigate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.NavigateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.billing.Navigate(c.Request.Context(), id, req.Key)
	h.reply(c, d, err)
}

func (h *BillingHandler) AddLine(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddLineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.billing.AddLine(c.Request.Context(), id, req)
	h.reply(c, d, err)
}

func (h *BillingHandler) BeginEdit(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := snowflakeParam(c, "line_id")
	if !ok {
		return
	}
	d, err := h.billing.BeginEdit(id, lineID)
	h.reply(c, d, err)
}

func (h *BillingHandler) EditLine(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := snowflakeParam(c, "line_id")
	if !ok {
		return
	}
	var req dto.EditLineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.billing.EditLine(id, lineID, req)
	h.reply(c, d, err)
}

func (h *BillingHandler) CancelEdit(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.billing.CancelEdit(id)
	h.reply(c, d, err)
}

func (h *BillingHandler) RemoveLine(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := snowflakeParam(c, "line_id")
	if !ok {
		return
	}
	d, err := h.billing.RemoveLine(id, lineID)
	h.reply(c, d, err)
}

// Print serves the static print page; the browser opens its print dialog.
func (h *BillingHandler) Print(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	html, err := h.docs.PrintDraft(c.Request.Context(), id, language(c, h.defaultLang))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *BillingHandler) PDF(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.docs.ExportDraft(c.Request.Context(), id, language(c, h.defaultLang))
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, out)
}

func (h *BillingHandler) Save(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	snap, err := h.billing.Save(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// sendPDF writes an export as an attachment. mime.FormatMediaType applies the
// RFC 2231 encoding needed for non-ASCII customer names.
func sendPDF(c *gin.Context, out service.ExportedPDF) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName})
	c.Header("Content-Disposition", disposition)
	if out.Degraded {
		c.Header("X-Font-Fallback", "true")
	}
	if out.Language != "" {
		c.Header("X-Document-Language", string(out.Language))
	}
	c.Data(http.StatusOK, "application/pdf", out.Content)
}
