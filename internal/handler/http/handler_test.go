package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smsinvite/invite-service/internal/domain"
	"github.com/smsinvite/invite-service/internal/quota"
	"github.com/smsinvite/invite-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStorage struct {
	sentToday int
	nextID    int
	messages  int
	log       []domain.SendLogEntry
}

func (f *fakeStorage) SaveMessage(ctx context.Context, apiID int, message string) (int, error) {
	f.nextID++
	f.messages++
	return f.nextID, nil
}

func (f *fakeStorage) AppendLogEntry(ctx context.Context, messageID int, phone string, sentAt time.Time) error {
	f.log = append(f.log, domain.SendLogEntry{
		SendDateTime:    sentAt,
		Phone:           phone,
		InviteMessageID: messageID,
	})
	return nil
}

func (f *fakeStorage) CountSentToday(ctx context.Context, apiID int, asOf time.Time) (int, error) {
	return f.sentToday, nil
}

func (f *fakeStorage) ListLogEntries(ctx context.Context, messageID int) ([]domain.SendLogEntry, error) {
	var entries []domain.SendLogEntry
	for _, e := range f.log {
		if e.InviteMessageID == messageID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *fakeStorage) CacheReceipt(ctx context.Context, receiptID, phone string, sentAt time.Time) error {
	return nil
}

type fakeCarrier struct{}

func (fakeCarrier) Send(ctx context.Context, phone, message string) (string, error) {
	return fmt.Sprintf("receipt-%s", phone), nil
}

func setupTestHandler(storage *fakeStorage) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := quota.NewTracker(storage, 128)
	dispatcher := service.NewDispatcher(storage, tracker, fakeCarrier{}, logger)
	return NewHttpHandler(":0", dispatcher)
}

func doRequest(h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reqBody = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	h.server.Handler.ServeHTTP(w, req)
	return w
}

func TestSubmitInvite_OK(t *testing.T) {
	storage := &fakeStorage{}
	h := setupTestHandler(storage)

	w := doRequest(h, http.MethodPost, "/api/invite", map[string]any{
		"apiId":   4,
		"phones":  []string{"79998887766", "75554443322"},
		"message": "Hello",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var result struct {
		Success bool                     `json:"success"`
		Data    []domain.RecipientResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success envelope")
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected two recipient results, got %d", len(result.Data))
	}
	if result.Data[0].Phone != "79998887766" || result.Data[1].Phone != "75554443322" {
		t.Fatalf("results must preserve input order: %+v", result.Data)
	}
	if storage.messages != 1 || len(storage.log) != 2 {
		t.Fatalf("expected 1 message and 2 log rows, got %d and %d", storage.messages, len(storage.log))
	}
}

func TestSubmitInvite_MissingApiId(t *testing.T) {
	h := setupTestHandler(&fakeStorage{})

	w := doRequest(h, http.MethodPost, "/api/invite", map[string]any{
		"phones":  []string{"79998887766"},
		"message": "Hello",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var result ApiResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Message != "Provide ApiId." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestSubmitInvite_ValidationError(t *testing.T) {
	storage := &fakeStorage{}
	h := setupTestHandler(storage)

	w := doRequest(h, http.MethodPost, "/api/invite", map[string]any{
		"apiId":   4,
		"phones":  []string{"123"},
		"message": "Hello",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if storage.messages != 0 || len(storage.log) != 0 {
		t.Fatal("validation failure must not write anything")
	}
}

func TestSubmitInvite_QuotaExceeded(t *testing.T) {
	storage := &fakeStorage{sentToday: 127}
	h := setupTestHandler(storage)

	w := doRequest(h, http.MethodPost, "/api/invite", map[string]any{
		"apiId":   7,
		"phones":  []string{"79998887766", "75554443322"},
		"message": "Hello",
	})

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	var result ApiResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Message != quotaExceededMessage {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if storage.messages != 0 || len(storage.log) != 0 {
		t.Fatal("quota rejection must not write anything")
	}
}

func TestSubmitInvite_MalformedBody(t *testing.T) {
	h := setupTestHandler(&fakeStorage{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invite", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	h.server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetSendLog_OK(t *testing.T) {
	storage := &fakeStorage{}
	h := setupTestHandler(storage)

	w := doRequest(h, http.MethodPost, "/api/invite", map[string]any{
		"apiId":   4,
		"phones":  []string{"79998887766"},
		"message": "Hello",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doRequest(h, http.MethodGet, "/api/invites/1/log", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var result struct {
		Success bool                  `json:"success"`
		Data    []domain.SendLogEntry `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].Phone != "79998887766" {
		t.Fatalf("unexpected log entries: %+v", result.Data)
	}
}

func TestGetSendLog_BadId(t *testing.T) {
	h := setupTestHandler(&fakeStorage{})

	w := doRequest(h, http.MethodGet, "/api/invites/abc/log", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	h := setupTestHandler(&fakeStorage{})

	w := doRequest(h, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
