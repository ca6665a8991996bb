package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"marketplace-api/internal/store"
)

func getDiagnostics(t *testing.T, gw store.Gateway) map[string]any {
	t.Helper()

	r := newTestRouter(gw)
	w := doRequest(t, r, http.MethodGet, "/test", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /test: status %d", w.Code)
	}
	var resp map[string]any
	decodeBody(t, w, &resp)
	return resp
}

func TestDiagnosticsNoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	resp := getDiagnostics(t, nil)
	if resp["backend"] != "Running" {
		t.Errorf("backend = %v", resp["backend"])
	}
	if resp["database"] != "Not Available" {
		t.Errorf("database = %v", resp["database"])
	}
	if resp["connection_status"] != "Not Connected" {
		t.Errorf("connection_status = %v", resp["connection_status"])
	}
	if resp["database_url"] != nil {
		t.Errorf("database_url = %v", resp["database_url"])
	}
}

func TestDiagnosticsNotInitialized(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")

	resp := getDiagnostics(t, nil)
	if resp["database"] != "Available but not initialized" {
		t.Errorf("database = %v", resp["database"])
	}
	if resp["database_url"] != "Set" {
		t.Errorf("database_url = %v", resp["database_url"])
	}
}

func TestDiagnosticsConnected(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")

	fs := newFakeStore()
	fs.seed("product", bson.M{"title": "x"})
	fs.seed("order", bson.M{"status": "pending"})

	resp := getDiagnostics(t, fs)
	if resp["database"] != "Connected & Working" {
		t.Errorf("database = %v", resp["database"])
	}
	if resp["connection_status"] != "Connected" {
		t.Errorf("connection_status = %v", resp["connection_status"])
	}
	if resp["database_name"] != "marketplace" {
		t.Errorf("database_name = %v", resp["database_name"])
	}

	names := resp["collections"].([]any)
	if len(names) != 2 {
		t.Errorf("collections = %v", names)
	}
}

func TestDiagnosticsCollectionCap(t *testing.T) {
	fs := newFakeStore()
	for i := 0; i < 12; i++ {
		fs.seed(fmt.Sprintf("coll%02d", i), bson.M{"n": i})
	}

	resp := getDiagnostics(t, fs)
	if names := resp["collections"].([]any); len(names) != 10 {
		t.Errorf("collections capped at %d, want 10", len(names))
	}
}

func TestDiagnosticsListError(t *testing.T) {
	fs := newFakeStore()
	fs.listNamesErr = errors.New(strings.Repeat("boom ", 40))

	resp := getDiagnostics(t, fs)
	db := resp["database"].(string)
	if !strings.HasPrefix(db, "Connected but Error: ") {
		t.Fatalf("database = %q", db)
	}
	if len(db) > len("Connected but Error: ")+80 {
		t.Errorf("error message not truncated: %d chars", len(db))
	}
}

func TestDiagnosticsPingError(t *testing.T) {
	fs := newFakeStore()
	fs.pingErr = errors.New("no reachable servers")

	resp := getDiagnostics(t, fs)
	if resp["connection_status"] != "Not Connected" {
		t.Errorf("connection_status = %v", resp["connection_status"])
	}
	if db := resp["database"].(string); !strings.HasPrefix(db, "Error: ") {
		t.Errorf("database = %q", db)
	}
}
