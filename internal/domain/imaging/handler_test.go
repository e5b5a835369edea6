package imaging

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler(vision *stubVision) *Handler {
	return NewHandler(NewService(vision, nil, zerolog.Nop()))
}

func multipartRequest(t *testing.T, filename string, content []byte, fields map[string]string) (*http.Request, *httptest.ResponseRecorder) {
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
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/imaging/prescreen", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestPrescreenImageSuccess(t *testing.T) {
	h := newTestHandler(&stubVision{response: sampleVisionResponse})
	e := echo.New()

	req, rec := multipartRequest(t, "scan.png", []byte("fake-png"), map[string]string{"image_type": "x-ray", "body_part": "chest"})
	c := e.NewContext(req, rec)

	if err := h.PrescreenImage(c); err != nil {
		t.Fatalf("PrescreenImage() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"prediction":"abnormal"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPrescreenImageMissingFile(t *testing.T) {
	h := newTestHandler(&stubVision{response: sampleVisionResponse})
	e := echo.New()

	req, rec := multipartRequest(t, "", nil, map[string]string{"image_type": "x-ray"})
	c := e.NewContext(req, rec)

	err := h.PrescreenImage(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("PrescreenImage() = %v, want 400", err)
	}
}

func TestPrescreenImageUnsupportedExtension(t *testing.T) {
	h := newTestHandler(&stubVision{response: sampleVisionResponse})
	e := echo.New()

	req, rec := multipartRequest(t, "scan.tiff", []byte("img"), map[string]string{"image_type": "x-ray"})
	c := e.NewContext(req, rec)

	err := h.PrescreenImage(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("PrescreenImage() = %v, want 415", err)
	}
}

func TestPrescreenImageInvalidType(t *testing.T) {
	h := newTestHandler(&stubVision{response: sampleVisionResponse})
	e := echo.New()

	req, rec := multipartRequest(t, "scan.png", []byte("img"), map[string]string{"image_type": "ultrasound"})
	c := e.NewContext(req, rec)

	err := h.PrescreenImage(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("PrescreenImage() = %v, want 400", err)
	}
}

func TestPrescreenImageUpstreamFailureHidesDetail(t *testing.T) {
	vision := &stubVision{err: errors.New("SECRET UPSTREAM DETAIL")}
	h := newTestHandler(vision)
	e := echo.New()

	req, rec := multipartRequest(t, "scan.png", []byte("img"), map[string]string{"image_type": "ct"})
	c := e.NewContext(req, rec)

	err := h.PrescreenImage(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("PrescreenImage() = %v, want 500", err)
	}
	msg, _ := httpErr.Message.(string)
	if strings.Contains(msg, "SECRET") {
		t.Errorf("client message leaks upstream detail: %q", msg)
	}
}
