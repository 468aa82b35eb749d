package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charter_backend/internal/feature/proposal/domain/entity"
	"charter_backend/internal/feature/proposal/usecase"
)

// mockProposalUsecase is a mock implementation of the ProposalUsecase interface.
type mockProposalUsecase struct {
	GenerateFunc func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error)
}

func (m *mockProposalUsecase) Generate(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req, template)
	}
	return &entity.GeneratedDocument{
		Filename:    req.Filename(),
		ContentType: entity.DocxContentType,
		Data:        []byte("docx-bytes"),
	}, nil
}

func fieldValues() map[string]string {
	return map[string]string{
		"customerName":       "Acme",
		"departureAirport":   "JFK",
		"destinationAirport": "LAX",
		"departureDate":      "2024-07-01",
		"airplaneOption1":    "G650",
		"airplaneOption2":    "Citation X",
	}
}

// multipartBody builds a multipart payload with the given text fields and,
// when template is non-nil, a "template" file part.
func multipartBody(t *testing.T, fields map[string]string, template []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if template != nil {
		fw, err := mw.CreateFormFile("template", "proposal-template.docx")
		require.NoError(t, err)
		_, err = fw.Write(template)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newTestRouter(h *ProposalHandler) *gin.Engine {
	r := gin.New()
	r.POST("/generate-proposal", h.Generate)
	return r
}

func TestProposalHandler_Generate_TemplateVariant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success streams the document with download headers", func(t *testing.T) {
		var gotTemplate []byte
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				gotTemplate = template
				assert.Equal(t, "Acme", req.CustomerName)
				assert.Equal(t, "Citation X", req.AirplaneOption2)
				return &entity.GeneratedDocument{
					Filename:    req.Filename(),
					ContentType: entity.DocxContentType,
					Data:        []byte("rendered-docx"),
				}, nil
			},
		}
		h := NewProposalHandler(mockUC, t.TempDir(), true)

		body, contentType := multipartBody(t, fieldValues(), []byte("template-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []byte("template-bytes"), gotTemplate, "uploaded template did not reach the usecase")
		assert.Equal(t, entity.DocxContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=Acme-charter-proposal.docx", w.Header().Get("Content-Disposition"))
		assert.Equal(t, "13", w.Header().Get("Content-Length"))
		assert.Equal(t, "rendered-docx", w.Body.String())
	})

	t.Run("missing template part is rejected", func(t *testing.T) {
		called := false
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				called = true
				return nil, nil
			},
		}
		h := NewProposalHandler(mockUC, t.TempDir(), true)

		body, contentType := multipartBody(t, fieldValues(), nil)
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No template file provided")
		assert.False(t, called, "usecase must not run without a template")
	})

	t.Run("missing text fields surface the field names", func(t *testing.T) {
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				return nil, &usecase.ValidationError{Fields: req.MissingFields()}
			},
		}
		h := NewProposalHandler(mockUC, t.TempDir(), true)

		fields := fieldValues()
		delete(fields, "departureDate")
		body, contentType := multipartBody(t, fields, []byte("tpl"))
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "departureDate")
	})

	t.Run("render failure returns diagnostics", func(t *testing.T) {
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				return nil, &usecase.RenderError{Diagnostics: []usecase.PlaceholderDiagnostic{
					{Placeholder: "CUSTOMR", Message: "unknown placeholder token"},
				}}
			},
		}
		h := NewProposalHandler(mockUC, t.TempDir(), true)

		body, contentType := multipartBody(t, fieldValues(), []byte("tpl"))
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Error generating document", resp["message"])
		details, ok := resp["details"].([]any)
		require.True(t, ok, "diagnostics list missing from response")
		require.Len(t, details, 1)
		diag := details[0].(map[string]any)
		assert.Equal(t, "CUSTOMR", diag["placeholder"])
	})
}

func TestProposalHandler_Generate_TempCleanup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assertTempDirEmpty := func(t *testing.T, dir string) {
		t.Helper()
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "temporary upload was not removed")
	}

	t.Run("temp file is removed after success", func(t *testing.T) {
		tempDir := t.TempDir()
		h := NewProposalHandler(&mockProposalUsecase{}, tempDir, true)

		body, contentType := multipartBody(t, fieldValues(), []byte("tpl"))
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assertTempDirEmpty(t, tempDir)
	})

	t.Run("failed save responds with an error and leaves nothing behind", func(t *testing.T) {
		// A regular file in place of the temp directory makes the save fail
		parent := t.TempDir()
		notADir := filepath.Join(parent, "occupied")
		require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o600))

		called := false
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				called = true
				return nil, nil
			},
		}
		h := NewProposalHandler(mockUC, notADir, true)

		body, contentType := multipartBody(t, fieldValues(), []byte("tpl"))
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, called, "usecase must not run when the upload was never stored")

		entries, err := os.ReadDir(parent)
		require.NoError(t, err)
		require.Len(t, entries, 1, "no stray temp files may remain")
		assert.Equal(t, "occupied", entries[0].Name())
	})

	t.Run("temp file is removed after a render failure", func(t *testing.T) {
		tempDir := t.TempDir()
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				// The temp file exists while the request is in flight
				entries, err := os.ReadDir(tempDir)
				require.NoError(t, err)
				require.Len(t, entries, 1)
				return nil, errors.New("render exploded")
			},
		}
		h := NewProposalHandler(mockUC, tempDir, true)

		body, contentType := multipartBody(t, fieldValues(), []byte("tpl"))
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assertTempDirEmpty(t, tempDir)
	})
}

func TestProposalHandler_Generate_JSONVariant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	postJSON := func(t *testing.T, h *ProposalHandler, payload any) *httptest.ResponseRecorder {
		t.Helper()
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newTestRouter(h).ServeHTTP(w, req)
		return w
	}

	t.Run("success uses the synthesize strategy", func(t *testing.T) {
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				assert.Nil(t, template, "JSON variant must not carry a template")
				return &entity.GeneratedDocument{
					Filename:    req.Filename(),
					ContentType: entity.DocxContentType,
					Data:        []byte("synthesized-docx"),
				}, nil
			},
		}
		h := NewProposalHandler(mockUC, t.TempDir(), true)

		w := postJSON(t, h, fieldValues())

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "attachment; filename=Acme-charter-proposal.docx", w.Header().Get("Content-Disposition"))
		assert.Equal(t, "synthesized-docx", w.Body.String())
	})

	t.Run("missing field returns 400 with no document bytes", func(t *testing.T) {
		called := false
		mockUC := &mockProposalUsecase{
			GenerateFunc: func(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
				called = true
				return nil, nil
			},
		}
		h := NewProposalHandler(mockUC, t.TempDir(), true)

		fields := fieldValues()
		delete(fields, "airplaneOption1")
		w := postJSON(t, h, fields)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing required fields")
		assert.NotContains(t, w.Header().Get("Content-Type"), "officedocument")
		assert.False(t, called, "usecase must not run on validation failure")
	})
}
