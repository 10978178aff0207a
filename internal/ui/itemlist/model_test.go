package itemlist_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/ui/itemlist"
)

func pageMsg(fromCache bool, fetchedAt time.Time) itemlist.PageLoadedMsg {
	return itemlist.PageLoadedMsg{
		Page: &api.ItemPage{
			Content: []model.Item{{
				ID:         1,
				ItemNumber: 1,
				Title:      "water plants",
				Type:       model.ItemTypeTask,
				Status:     model.StatusPending,
			}},
			TotalElements: 1,
			TotalPages:    1,
		},
		FromCache: fromCache,
		FetchedAt: fetchedAt,
	}
}

func TestFooterShowsCacheAgeWhenOffline(t *testing.T) {
	m := itemlist.New(nil, nil, 1, keys.DefaultKeyMap(), 20, 80, 24)
	fetched := time.Date(2026, 8, 29, 10, 30, 0, 0, time.Local)
	m, _ = m.Update(pageMsg(true, fetched))

	view := m.View()
	if !strings.Contains(view, "offline cache from Aug 29 10:30") {
		t.Errorf("footer should show the cache fetch time, got:\n%s", view)
	}
}

func TestFooterOmitsCacheMarkerWhenFresh(t *testing.T) {
	m := itemlist.New(nil, nil, 1, keys.DefaultKeyMap(), 20, 80, 24)
	m, _ = m.Update(pageMsg(false, time.Time{}))

	view := m.View()
	if strings.Contains(view, "offline cache") {
		t.Errorf("fresh pages should not carry the cache marker, got:\n%s", view)
	}
}
