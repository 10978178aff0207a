package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sonic/sonic-task-hub/internal/model"
)

func envelopeJSON(t *testing.T, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshaling test data: %v", err)
	}
	body, err := json.Marshal(Envelope{
		Success:   true,
		Message:   "ok",
		Data:      raw,
		Timestamp: "2025-03-10T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("marshaling envelope: %v", err)
	}
	return body
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/user/1/item/42" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Write(envelopeJSON(t, model.Item{ID: 42, Title: "Buy milk"}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	item, err := client.GetItem(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item.ID != 42 || item.Title != "Buy milk" {
		t.Errorf("item = %+v", item)
	}
}

func TestErrorUsesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Envelope{
			Success:   false,
			Message:   "title must not be blank",
			ErrorCode: "VALIDATION_FAILED",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateItem(context.Background(), 1, ItemRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorMessage(err); got != "title must not be blank" {
		t.Errorf("ErrorMessage = %q", got)
	}
}

func TestNotFoundIsDetectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(Envelope{
			Success:   false,
			Message:   "item not found",
			ErrorCode: "NOT_FOUND",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetItem(context.Background(), 1, 999)
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestTransportFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL)
	_, err := client.GetItems(context.Background(), 1, ItemFilters{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnreachable(err) {
		t.Errorf("IsUnreachable(%v) = false, want true", err)
	}
	if ErrorMessage(err) == "" {
		t.Error("transport error should surface its own message")
	}
}

func TestSuccessFalseBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Envelope{
			Success: false,
			Message: "user is inactive",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "sonic", "pw")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorMessage(err); got != "user is inactive" {
		t.Errorf("ErrorMessage = %q", got)
	}
}

func TestGetItemsDecodesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "3" {
			t.Errorf("page param = %q, want 3", got)
		}
		w.Write(envelopeJSON(t, ItemPage{
			Content:       []model.Item{{ID: 1}, {ID: 2}},
			TotalElements: 57,
			TotalPages:    12,
			Number:        3,
			Size:          5,
		}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.GetItems(context.Background(), 1, ItemFilters{Page: 3, Size: 5})
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if page.TotalElements != 57 || len(page.Content) != 2 {
		t.Errorf("page = %+v", page)
	}
}
