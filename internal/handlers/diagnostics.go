package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const maxDiagnosticCollections = 10

// Diagnostics answers GET /test with the backend and database state.
// It never fails: every probe degrades to a field-level message instead.
//
// The database field reports exactly one of: "Not Available" (no
// DATABASE_URL configured), "Available but not initialized" (configured
// but the connection failed at startup), "Connected & Working", or a
// "Connected but Error: ..." message when listing collections fails.
func (h *Marketplace) Diagnostics(c *gin.Context) {
	resp := gin.H{
		"backend":           "Running",
		"database":          "Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	urlSet := os.Getenv("DATABASE_URL") != ""

	if h.store == nil {
		if urlSet {
			resp["database"] = "Available but not initialized"
			resp["database_url"] = "Set"
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp["database"] = "Available"
	resp["database_name"] = h.dbName
	if urlSet {
		resp["database_url"] = "Set"
	} else {
		resp["database_url"] = "Not Set"
	}

	if err := h.store.Ping(c.Request.Context()); err != nil {
		resp["connection_status"] = "Not Connected"
		resp["database"] = "Error: " + truncate(err.Error(), errMessageLimit)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp["connection_status"] = "Connected"

	names, err := h.store.ListCollectionNames(c.Request.Context())
	if err != nil {
		resp["database"] = "Connected but Error: " + truncate(err.Error(), errMessageLimit)
		c.JSON(http.StatusOK, resp)
		return
	}

	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	resp["collections"] = names
	resp["database"] = "Connected & Working"

	c.JSON(http.StatusOK, resp)
}
