package handlers

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/services"
	"plantpnl/templates"
)

// HandleMaterialList renders the material catalog.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialsCol, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("materials: could not find materials collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(materialsCol)
		if err != nil {
			log.Printf("materials: could not query materials: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var items []templates.MaterialListItem
		for _, rec := range records {
			items = append(items, templates.MaterialListItem{
				ID:        rec.Id,
				Name:      rec.GetString("name"),
				UOM:       rec.GetString("uom"),
				UnitPrice: services.FormatEUR(rec.GetFloat("unit_price")),
			})
		}

		data := templates.MaterialListData{
			Items:      items,
			UOMOptions: services.MaterialUOMOptions,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.MaterialListContent(data)
		} else {
			component = templates.MaterialListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleMaterialAdd creates a catalog material.
func HandleMaterialAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Material name is required")
		}
		uom := e.Request.FormValue("uom")
		if !slices.Contains(services.MaterialUOMOptions, uom) {
			uom = "t"
		}

		materialsCol, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("materials: could not find materials collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(materialsCol)
		record.Set("name", name)
		record.Set("uom", uom)
		record.Set("unit_price", services.ParseNumeric(e.Request.FormValue("unit_price")))

		if err := app.Save(record); err != nil {
			log.Printf("materials: could not save material: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Material added")
		e.Response.Header().Set("HX-Redirect", "/materials")
		return e.String(http.StatusOK, "")
	}
}

// HandleMaterialDelete removes a catalog material.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("materials", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Material not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("materials: could not delete material %s: %v", id, err)
			return ErrorToast(e, http.StatusConflict, "Material is still used by a formula")
		}

		SetToast(e, "success", "Material deleted")
		return e.String(http.StatusOK, "")
	}
}
