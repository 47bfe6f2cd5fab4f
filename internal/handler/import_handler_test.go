package handler

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecrest/camp-roster-api/internal/models"
	"github.com/pinecrest/camp-roster-api/internal/service"
	"github.com/pinecrest/camp-roster-api/internal/workbook"
)

type importStoreMock struct {
	results map[string]*models.ImportResult
}

func (m *importStoreMock) Save(ctx context.Context, result *models.ImportResult) error {
	if m.results == nil {
		m.results = make(map[string]*models.ImportResult)
	}
	m.results[result.ID] = result
	return nil
}

func (m *importStoreMock) Get(ctx context.Context, id string) (*models.ImportResult, error) {
	if result, ok := m.results[id]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("not found")
}

func newImportHandler(store *importStoreMock) *ImportHandler {
	svc := service.NewImportService(store, nil, nil)
	return NewImportHandler(svc, workbook.DefaultImportSchema(), 0)
}

func TestImportHandlerUploadMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newImportHandler(&importStoreMock{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req

	handler.Upload(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportHandlerUploadRejectsNonXLSX(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newImportHandler(&importStoreMock{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "registrations.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("not,a,workbook"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/imports", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req

	handler.Upload(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportHandlerGetUnknownID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newImportHandler(&importStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/imports/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportHandlerGetStoredImport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &importStoreMock{results: map[string]*models.ImportResult{
		"imp-1": {
			ID:             "imp-1",
			EventName:      "Summer Retreat",
			AttendeeCount:  3,
			SelectionCount: 5,
			CreatedAt:      time.Now().UTC(),
		},
	}}
	handler := newImportHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/imports/imp-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "imp-1"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Summer Retreat")
}
