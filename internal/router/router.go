package router

import (
	"github.com/tamilselvan8428/rajasnacksBilling/internal/billing"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/config"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/handler"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/middleware"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/repository"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/service"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DocumentStore
func New(cfg *config.Config, store infra.DocumentStore, ids billing.IDGenerator) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	defaultLang := i18n.Parse(cfg.DefaultLanguage, i18n.English)

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(store)
	billLogRepo := repository.NewBillLogRepository(store)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(catalogRepo, ids)
	billingSvc := service.NewBillingService(catalogSvc, billLogRepo, ids, billing.Options{
		SeedSampleCatalog:        cfg.SeedSampleCatalog,
		EnableSaveLog:            cfg.EnableBillLog,
		EnableKeyboardNavigation: cfg.EnableKeyboardNavigation,
	})
	documentSvc := service.NewDocumentService(billingSvc, service.DocumentConfig{
		ShopName:    cfg.ShopName,
		FontPath:    cfg.FontPath,
		StoragePath: cfg.PDFStoragePath,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogH := handler.NewCatalogHandler(catalogSvc)
	billingH := handler.NewBillingHandler(billingSvc, documentSvc, cfg.ShopName, defaultLang)
	billsH := handler.NewBillsHandler(billingSvc, documentSvc, defaultLang)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(store, cfg.StoreDriver))

	v1 := r.Group("/v1")
	{
		v1.GET("/shell", handler.Shell(handler.ShellConfig{
			ShopName:           cfg.ShopName,
			DefaultLanguage:    defaultLang,
			KeyboardNavigation: cfg.EnableKeyboardNavigation,
			BillLog:            cfg.EnableBillLog,
		}))

		// Stock screen
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", catalogH.List)
			catalog.POST("", catalogH.Create)
			catalog.GET("/export.csv", catalogH.ExportCSV)
			catalog.POST("/import", catalogH.ImportCSV)
			catalog.PUT("/:id", catalogH.Update)
			catalog.DELETE("/:id", catalogH.Delete)
		}

		// Billing screen
		drafts := v1.Group("/billing/drafts")
		{
			drafts.POST("", billingH.Create)
			drafts.GET("/:id", billingH.Get)
			drafts.DELETE("/:id", billingH.Discard)
			drafts.PUT("/:id/customer", billingH.SetCustomer)
			drafts.GET("/:id/suggestions", billingH.Suggestions)
			drafts.POST("/:id/select", billingH.Select)
			drafts.POST("/:id/navigate", billingH.Navigate)
			drafts.POST("/:id/lines", billingH.AddLine)
			drafts.POST("/:id/lines/:line_id/edit", billingH.BeginEdit)
			drafts.PUT("/:id/lines/:line_id", billingH.EditLine)
			drafts.DELETE("/:id/lines/:line_id", billingH.RemoveLine)
			drafts.POST("/:id/edit/cancel", billingH.CancelEdit)
			drafts.GET("/:id/print", billingH.Print)
			drafts.GET("/:id/pdf", billingH.PDF)
			drafts.POST("/:id/save", billingH.Save)
		}

		bills := v1.Group("/bills")
		{
			bills.GET("", billsH.List)
			bills.GET("/:id/pdf", billsH.PDF)
		}
	}

	return r
}
