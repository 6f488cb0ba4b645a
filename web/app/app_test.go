package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/internal/classifier"
	"github.com/JaimeStill/heritage/internal/recognition"
	"github.com/JaimeStill/heritage/pkg/routes"
	"github.com/JaimeStill/heritage/web/app"
)

var discard = slog.New(slog.DiscardHandler)

type mockRecognition struct {
	recognizeFn func(ctx context.Context, upload recognition.Upload) (*recognition.Decision, error)
	calls       int
}

func (m *mockRecognition) Recognize(ctx context.Context, upload recognition.Upload) (*recognition.Decision, error) {
	m.calls++
	return m.recognizeFn(ctx, upload)
}

func newMux(t *testing.T, rec recognition.System, maxUpload int64) *http.ServeMux {
	t.Helper()
	a, err := app.New(rec, "", maxUpload, discard)
	require.NoError(t, err)

	mux := http.NewServeMux()
	routes.Register(mux, a.Routes())
	return mux
}

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/predict", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHome(t *testing.T) {
	mux := newMux(t, &mockRecognition{}, 1<<20)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/predict"`)
	assert.Contains(t, rec.Body.String(), `name="file"`)
}

func TestPredictWithoutFile(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{
			name: "no body",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest("POST", "/predict", nil)
			},
		},
		{
			name: "wrong field",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "photo", "taj.jpg", []byte("data"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockRecognition{}
			mux := newMux(t, mock, 1<<20)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, tt.req(t))

			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "No file uploaded", body["error"])
			assert.Zero(t, mock.calls)
		})
	}
}

func TestPredictKnownSite(t *testing.T) {
	mock := &mockRecognition{
		recognizeFn: func(_ context.Context, upload recognition.Upload) (*recognition.Decision, error) {
			data, err := io.ReadAll(upload.Body)
			if err != nil {
				return nil, err
			}
			if upload.Filename != "taj.jpg" || string(data) != "jpeg bytes" {
				return nil, fmt.Errorf("unexpected upload %q", upload.Filename)
			}
			return &recognition.Decision{Known: true, Label: "Taj Mahal", Confidence: 0.93}, nil
		},
	}
	mux := newMux(t, mock, 1<<20)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, uploadRequest(t, "file", "taj.jpg", []byte("jpeg bytes")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Taj Mahal</h1>")
	assert.Contains(t, body, "Confidence 93%")
	assert.Contains(t, body, `href="/ar/Taj%20Mahal/anchor"`)
	assert.Equal(t, 1, mock.calls)
}

func TestPredictUnknownSite(t *testing.T) {
	mock := &mockRecognition{
		recognizeFn: func(context.Context, recognition.Upload) (*recognition.Decision, error) {
			return &recognition.Decision{Index: 2, Confidence: 0.80}, nil
		},
	}
	mux := newMux(t, mock, 1<<20)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, uploadRequest(t, "file", "blur.jpg", []byte("x")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Site not recognized")
}

func TestPredictFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		text   string
	}{
		{
			name:   "classifier failure",
			err:    fmt.Errorf("%w: %w", recognition.ErrClassification, classifier.ErrInference),
			status: http.StatusInternalServerError,
			text:   "We could not process this photo",
		},
		{
			name:   "undecodable image",
			err:    fmt.Errorf("%w: %w", recognition.ErrClassification, classifier.ErrDecodeImage),
			status: http.StatusBadRequest,
			text:   "not a supported image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockRecognition{
				recognizeFn: func(context.Context, recognition.Upload) (*recognition.Decision, error) {
					return nil, tt.err
				},
			}
			mux := newMux(t, mock, 1<<20)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, uploadRequest(t, "file", "a.jpg", []byte("x")))

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.text)
		})
	}
}

func TestPredictTooLarge(t *testing.T) {
	mock := &mockRecognition{}
	mux := newMux(t, mock, 64)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, uploadRequest(t, "file", "big.jpg", bytes.Repeat([]byte("x"), 1024)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, mock.calls)
}

func TestAnchor(t *testing.T) {
	mux := newMux(t, &mockRecognition{}, 1<<20)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/ar/Hampi/anchor", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `preset="hiro"`)
	assert.Contains(t, body, `value="Hampi"`)
	assert.Contains(t, body, `loadAnchor('', "Hampi")`)
}

func TestStatic(t *testing.T) {
	mux := newMux(t, &mockRecognition{}, 1<<20)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/static/scripts.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "function showInfo")
}
