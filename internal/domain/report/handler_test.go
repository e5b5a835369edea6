package report

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func multipartUpload(t *testing.T, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/reports/simplify", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestSimplifyReportSuccess(t *testing.T) {
	h := NewHandler(newTestService(&stubCompleter{responses: []string{sampleChunkResponse}}))
	e := echo.New()

	req, rec := multipartUpload(t, "labs.txt", []byte(sampleReportText()))
	c := e.NewContext(req, rec)

	if err := h.SimplifyReport(c); err != nil {
		t.Fatalf("SimplifyReport() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "white blood cell") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestSimplifyReportMissingFile(t *testing.T) {
	h := NewHandler(newTestService(&stubCompleter{responses: []string{sampleChunkResponse}}))
	e := echo.New()

	req, rec := multipartUpload(t, "", nil)
	c := e.NewContext(req, rec)

	err := h.SimplifyReport(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("SimplifyReport() = %v, want 400", err)
	}
}

func TestSimplifyReportUnsupportedTypeListsAcceptedFormats(t *testing.T) {
	h := NewHandler(newTestService(&stubCompleter{responses: []string{sampleChunkResponse}}))
	e := echo.New()

	req, rec := multipartUpload(t, "scan.pdf", []byte("%PDF-1.7"))
	c := e.NewContext(req, rec)

	err := h.SimplifyReport(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("SimplifyReport() = %v, want 415", err)
	}
	// The message must only promise formats extraction actually handles.
	msg, _ := httpErr.Message.(string)
	if !strings.Contains(msg, ".txt") {
		t.Errorf("message does not name accepted formats: %q", msg)
	}
	if strings.Contains(msg, ".pdf") || strings.Contains(msg, ".docx") {
		t.Errorf("message promises unsupported formats: %q", msg)
	}
}

func TestSimplifyReportTooShort(t *testing.T) {
	h := NewHandler(newTestService(&stubCompleter{responses: []string{sampleChunkResponse}}))
	e := echo.New()

	req, rec := multipartUpload(t, "note.txt", []byte("short note"))
	c := e.NewContext(req, rec)

	err := h.SimplifyReport(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("SimplifyReport() = %v, want 400", err)
	}
}
