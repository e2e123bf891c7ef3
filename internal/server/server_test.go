package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianolorenzi02/conferencia-compra/internal/clock"
	conferenceservice "github.com/adrianolorenzi02/conferencia-compra/internal/conference/service"
	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	"github.com/adrianolorenzi02/conferencia-compra/internal/invoice/lookup"
	"github.com/adrianolorenzi02/conferencia-compra/internal/notification"
	"github.com/adrianolorenzi02/conferencia-compra/internal/report"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, map[string]any) {}

func newTestServer(t *testing.T, scanLimit int) (*gin.Engine, *notification.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}

	buffer := notification.NewBuffer(100)
	session := conferenceservice.NewSession(conferenceservice.Params{
		Lookup:   lookup.NewFixture(node, 0),
		Notifier: buffer,
		Recorder: noopRecorder{},
		Clock:    clock.SystemClock{},
		Log:      zap.NewNop(),
	})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.HTTP.ScanRateLimit = scanLimit

	srv := NewServer(Params{
		Config:  cfg,
		Log:     zap.NewNop(),
		Session: session,
		Buffer:  buffer,
		Saver:   report.NewDiskSaver(t.TempDir(), zap.NewNop()),
		Clock:   clock.SystemClock{},
	})

	engine := gin.New()
	srv.RegisterRoutes(engine)
	return engine, buffer
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %s: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func TestFullWorkflow(t *testing.T) {
	engine, _ := newTestServer(t, 1000)

	w := do(t, engine, http.MethodPost, "/api/conference/invoice", `{"code":"any-key"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("load invoice: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, engine, http.MethodGet, "/api/conference", "")
	if data := decodeData(t, w); data["step"] != "invoice-details" {
		t.Fatalf("expected invoice-details step, got %v", data["step"])
	}

	w = do(t, engine, http.MethodPost, "/api/conference/start", "")
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d", w.Code)
	}

	w = do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":"7891234567890"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("scan: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if data := decodeData(t, w); data["status"] != "pending" || data["confirmed_qty"] != float64(1) {
		t.Fatalf("unexpected scan outcome: %v", data)
	}

	w = do(t, engine, http.MethodPost, "/api/conference/finish", "")
	if w.Code != http.StatusOK {
		t.Fatalf("finish: expected 200, got %d", w.Code)
	}

	w = do(t, engine, http.MethodGet, "/api/conference/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d", w.Code)
	}
	if disposition := w.Header().Get("Content-Disposition"); !strings.Contains(disposition, "conferencia-") {
		t.Fatalf("expected download filename, got %q", disposition)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if _, ok := doc["summary"]; !ok {
		t.Fatalf("expected report summary, got %s", w.Body.String())
	}

	w = do(t, engine, http.MethodPost, "/api/conference/reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	if data := decodeData(t, w); data["step"] != "scan-invoice" {
		t.Fatalf("expected scan-invoice after reset, got %v", data["step"])
	}
}

func TestScanUnknownProductNotFound(t *testing.T) {
	engine, _ := newTestServer(t, 1000)

	do(t, engine, http.MethodPost, "/api/conference/invoice", `{"code":"any-key"}`)
	do(t, engine, http.MethodPost, "/api/conference/start", "")

	w := do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":"999"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestWrongStepConflicts(t *testing.T) {
	engine, _ := newTestServer(t, 1000)

	w := do(t, engine, http.MethodPost, "/api/conference/start", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("start before load: expected 409, got %d", w.Code)
	}

	w = do(t, engine, http.MethodPost, "/api/conference/finish", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("finish before load: expected 409, got %d", w.Code)
	}

	w = do(t, engine, http.MethodGet, "/api/conference/report", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("report before results: expected 409, got %d", w.Code)
	}
}

func TestScanBeforeInvoiceConflict(t *testing.T) {
	engine, _ := newTestServer(t, 1000)

	w := do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":"7891234567890"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 before invoice loaded, got %d", w.Code)
	}
}

func TestScanValidation(t *testing.T) {
	engine, _ := newTestServer(t, 1000)
	do(t, engine, http.MethodPost, "/api/conference/invoice", `{"code":"any-key"}`)
	do(t, engine, http.MethodPost, "/api/conference/start", "")

	w := do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty code: expected 400, got %d", w.Code)
	}

	w = do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":"7891234567890","expiry":"31-12-2026"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed expiry: expected 400, got %d", w.Code)
	}
}

func TestScanRateLimit(t *testing.T) {
	engine, _ := newTestServer(t, 1)
	do(t, engine, http.MethodPost, "/api/conference/invoice", `{"code":"any-key"}`)
	do(t, engine, http.MethodPost, "/api/conference/start", "")

	first := do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":"7891234567890"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first scan: expected 200, got %d", first.Code)
	}
	second := do(t, engine, http.MethodPost, "/api/conference/scans", `{"code":"7891234567890"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second scan: expected 429, got %d", second.Code)
	}
}

func TestDrainNotifications(t *testing.T) {
	engine, _ := newTestServer(t, 1000)
	do(t, engine, http.MethodPost, "/api/conference/invoice", `{"code":"any-key"}`)

	w := do(t, engine, http.MethodGet, "/api/notifications", "")
	if w.Code != http.StatusOK {
		t.Fatalf("drain: expected 200, got %d", w.Code)
	}
	var envelope struct {
		Data []notification.Notification `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatalf("expected buffered notifications after invoice load")
	}

	w = do(t, engine, http.MethodGet, "/api/notifications", "")
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode second drain: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected empty buffer after drain, got %d", len(envelope.Data))
	}
}

func TestReportSaveFlag(t *testing.T) {
	engine, _ := newTestServer(t, 1000)
	do(t, engine, http.MethodPost, "/api/conference/invoice", `{"code":"any-key"}`)
	do(t, engine, http.MethodPost, "/api/conference/start", "")
	do(t, engine, http.MethodPost, "/api/conference/finish", "")

	w := do(t, engine, http.MethodGet, "/api/conference/report?save=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("report save: expected 200, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestServer(t, 1000)
	w := do(t, engine, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}
}
