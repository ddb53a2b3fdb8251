package handler

import (
	"net/http"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/dto"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ShellConfig is what the application shell shows besides labels.
type ShellConfig struct {
	ShopName           string
	DefaultLanguage    i18n.Language
	KeyboardNavigation bool
	BillLog            bool
}

// Shell serves the navigation shell: shop name, labels and the language
// toggle for the requested language.
func Shell(cfg ShellConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := language(c, cfg.DefaultLanguage)
		c.JSON(http.StatusOK, dto.ShellResponse{
			ShopName:           i18n.ShopName(cfg.ShopName, lang),
			Language:           lang,
			Languages:          i18n.Languages,
			Labels:             i18n.For(lang),
			KeyboardNavigation: cfg.KeyboardNavigation,
			BillLog:            cfg.BillLog,
		})
	}
}
