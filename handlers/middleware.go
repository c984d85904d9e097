package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"plantpnl/templates"
)

type contextKey string

const ActivePnlKey contextKey = "activePnl"
const HeaderDataKey contextKey = "headerData"
const SidebarDataKey contextKey = "sidebarData"

// GetActivePnl extracts the active P&L from the request context.
func GetActivePnl(r *http.Request) *templates.ActivePnl {
	if val, ok := r.Context().Value(ActivePnlKey).(*templates.ActivePnl); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// GetSidebarData extracts the pre-built SidebarData from the request context.
func GetSidebarData(r *http.Request) templates.SidebarData {
	if val, ok := r.Context().Value(SidebarDataKey).(templates.SidebarData); ok {
		return val
	}
	return templates.SidebarData{}
}

// ActivePnlMiddleware reads the "active_pnl" cookie, loads the P&L record,
// builds HeaderData with the full P&L list, and stores both in the request
// context so handlers and templates can use them.
func ActivePnlMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var activePnl *templates.ActivePnl

		// Read cookie
		cookie, err := e.Request.Cookie("active_pnl")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("pnls", cookie.Value)
			if err == nil {
				activePnl = &templates.ActivePnl{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				}
			} else {
				log.Printf("middleware: active pnl %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_pnl",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		// Build full P&L list for the header switcher
		pnlsCol, _ := app.FindCollectionByNameOrId("pnls")
		var selectorItems []templates.PnlSelectorItem
		if pnlsCol != nil {
			records, _ := app.FindAllRecords(pnlsCol)
			for _, rec := range records {
				isActive := activePnl != nil && rec.Id == activePnl.ID
				selectorItems = append(selectorItems, templates.PnlSelectorItem{
					ID:       rec.Id,
					Name:     rec.GetString("name"),
					Client:   rec.GetString("client"),
					IsActive: isActive,
				})
			}
		}

		headerData := templates.HeaderData{
			ActivePnl: activePnl,
			Pnls:      selectorItems,
		}

		// Store in context
		ctx := context.WithValue(e.Request.Context(), ActivePnlKey, activePnl)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		e.Request = e.Request.WithContext(ctx)

		// Build sidebar data (needs activePnl in context first)
		sidebarData := BuildSidebarData(e.Request, app)
		ctx = context.WithValue(e.Request.Context(), SidebarDataKey, sidebarData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
