package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/apierror"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/dto"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/service"

	"github.com/gin-gonic/gin"
)

// maxCSVUpload bounds catalog imports.
const maxCSVUpload = 2 << 20

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.svc.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := snowflakeParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := snowflakeParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="catalog.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportCSV accepts a multipart "file" field or a raw text/csv body.
func (h *CatalogHandler) ImportCSV(c *gin.Context) {
	var src io.Reader
	if c.ContentType() == "multipart/form-data" {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Missing file field"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file"))
			return
		}
		defer f.Close()
		src = f
	} else {
		src = http.MaxBytesReader(c.Writer, c.Request.Body, maxCSVUpload)
	}

	resp, err := h.svc.ImportCSV(c.Request.Context(), src)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
