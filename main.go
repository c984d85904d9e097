package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/collections"
	"plantpnl/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed demo data and backfill legacy rows on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateVariantDefaults(app); err != nil {
			log.Printf("Warning: defaults migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active P&L middleware globally
		se.Router.BindFunc(handlers.ActivePnlMiddleware(app))

		// ── P&L activation ───────────────────────────────────────
		se.Router.POST("/pnls/{id}/activate", handlers.HandlePnlActivate(app))
		se.Router.POST("/pnls/deactivate", handlers.HandlePnlDeactivate(app))

		// ── P&L CRUD ─────────────────────────────────────────────
		se.Router.GET("/pnls", handlers.HandlePnlList(app))
		se.Router.GET("/pnls/new", handlers.HandlePnlCreate(app))
		se.Router.POST("/pnls/new", handlers.HandlePnlSave(app))
		se.Router.GET("/pnls/{id}/edit", handlers.HandlePnlEdit(app))
		se.Router.POST("/pnls/{id}/edit", handlers.HandlePnlUpdate(app))
		se.Router.DELETE("/pnls/{id}", handlers.HandlePnlDelete(app))

		// ── Contract CRUD (scoped to the active P&L) ─────────────
		se.Router.GET("/contracts", handlers.HandleContractList(app))
		se.Router.GET("/contracts/new", handlers.HandleContractCreate(app))
		se.Router.POST("/contracts/new", handlers.HandleContractSave(app))
		se.Router.GET("/contracts/{id}/edit", handlers.HandleContractEdit(app))
		se.Router.POST("/contracts/{id}/edit", handlers.HandleContractUpdate(app))
		se.Router.DELETE("/contracts/{id}", handlers.HandleContractDelete(app))

		// ── Variants ─────────────────────────────────────────────
		se.Router.GET("/contracts/{id}/variants", handlers.HandleVariantList(app))
		se.Router.GET("/contracts/{id}/variants/new", handlers.HandleVariantCreate(app))
		se.Router.POST("/contracts/{id}/variants/new", handlers.HandleVariantSave(app))
		se.Router.GET("/variants/{id}/edit", handlers.HandleVariantEdit(app))
		se.Router.POST("/variants/{id}/edit", handlers.HandleVariantUpdate(app))
		se.Router.DELETE("/variants/{id}", handlers.HandleVariantDelete(app))

		// Variant dashboard and its HTMX-refreshable KPI partial
		se.Router.GET("/variants/{id}/kpis", handlers.HandleVariantKpis(app))

		// ── Variant costing ──────────────────────────────────────
		se.Router.GET("/variants/{id}/costs", handlers.HandleCostsForm(app))
		se.Router.POST("/variants/{id}/costs", handlers.HandleCostsSave(app))
		se.Router.POST("/variants/{id}/formula-lines", handlers.HandleFormulaLineAdd(app))
		se.Router.POST("/formula-lines/{id}", handlers.HandleFormulaLineUpdate(app))
		se.Router.DELETE("/formula-lines/{id}", handlers.HandleFormulaLineDelete(app))
		se.Router.POST("/variants/{id}/material-overrides", handlers.HandleMaterialOverrideAdd(app))
		se.Router.DELETE("/material-overrides/{id}", handlers.HandleMaterialOverrideDelete(app))
		se.Router.POST("/variants/{id}/misc-costs", handlers.HandleMiscCostAdd(app))
		se.Router.DELETE("/misc-costs/{id}", handlers.HandleMiscCostDelete(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/variants/{id}/export/quote", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/variants/{id}/export/excel", handlers.HandleVariantExportExcel(app))

		// Variant view (after specific /variants/{id}/* routes)
		se.Router.GET("/variants/{id}", handlers.HandleVariantView(app))

		// ── Catalogs ─────────────────────────────────────────────
		se.Router.GET("/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/materials", handlers.HandleMaterialAdd(app))
		se.Router.DELETE("/materials/{id}", handlers.HandleMaterialDelete(app))

		se.Router.GET("/formulas", handlers.HandleFormulaList(app))
		se.Router.POST("/formulas", handlers.HandleFormulaAdd(app))
		se.Router.GET("/formulas/{id}", handlers.HandleFormulaView(app))
		se.Router.DELETE("/formulas/{id}", handlers.HandleFormulaDelete(app))
		se.Router.POST("/formulas/{id}/components", handlers.HandleFormulaComponentAdd(app))
		se.Router.DELETE("/formula-components/{id}", handlers.HandleFormulaComponentDelete(app))

		// The sidebar variants entry lands on the contract list
		se.Router.GET("/variants", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/contracts")
		})

		// Redirect home to the P&L list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/pnls")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
