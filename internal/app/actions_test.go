package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/export"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/session"
	"github.com/sonic/sonic-task-hub/internal/ui/exportform"
)

// The export fetch widens the query to one oversized page so everything
// matching the view's filters is covered, but the filters echoed in the
// JSON document must stay exactly as the user had them.
func TestExportWidensFetchButEchoesViewFilters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()

		data, err := json.Marshal(api.ItemPage{
			Content: []model.Item{{
				ID:         1,
				ItemNumber: 1,
				Title:      "write report",
				Type:       model.ItemTypeTask,
				Status:     model.StatusPending,
			}},
			TotalElements: 1,
			TotalPages:    1,
		})
		if err != nil {
			t.Errorf("marshaling page: %v", err)
		}
		json.NewEncoder(w).Encode(api.Envelope{
			Success:   true,
			Message:   "ok",
			Data:      data,
			Timestamp: "2026-08-30T12:00:00Z",
		})
	}))
	defer srv.Close()

	t.Chdir(t.TempDir())

	m := Model{
		client:  api.NewClient(srv.URL),
		session: session.NewSession(&model.User{ID: 7}),
	}

	res, ok := m.runExport(exportform.SubmitMsg{
		Format: export.FormatJSON,
		Toggles: export.Toggles{
			IncludeCompleted: true,
			IncludeSnoozed:   true,
			IncludeSubtasks:  true,
		},
		Filters: api.ItemFilters{Search: "report", Page: 3, Size: 20},
	})().(exportDoneMsg)
	if !ok {
		t.Fatal("expected exportDoneMsg")
	}
	if res.err != nil {
		t.Fatalf("runExport: %v", res.err)
	}

	if gotQuery.Get("page") != "0" || gotQuery.Get("size") != "10000" {
		t.Errorf("fetch should request one oversized first page, got %v", gotQuery)
	}
	if gotQuery.Get("search") != "report" {
		t.Errorf("fetch should keep the view's search term, got %v", gotQuery)
	}

	raw, err := os.ReadFile(res.path)
	if err != nil {
		t.Fatalf("reading export file: %v", err)
	}

	var doc struct {
		Filters api.ItemFilters `json:"filters"`
		Items   []model.Item    `json:"items"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("parsing export file: %v", err)
	}

	if doc.Filters.Page != 3 || doc.Filters.Size != 20 {
		t.Errorf("document should echo the view's paging, got %+v", doc.Filters)
	}
	if doc.Filters.Search != "report" {
		t.Errorf("document should echo the view's search, got %+v", doc.Filters)
	}
	if len(doc.Items) != 1 || doc.Items[0].Title != "write report" {
		t.Errorf("exported items = %+v", doc.Items)
	}
}
