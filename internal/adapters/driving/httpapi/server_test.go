package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

// mockDocService backs document handlers with an in-memory map.
type mockDocService struct {
	docs map[string]*domain.Document
}

var _ driving.DocumentService = (*mockDocService)(nil)

func newMockDocService() *mockDocService {
	return &mockDocService{docs: make(map[string]*domain.Document)}
}

func (m *mockDocService) Ingest(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	docType, ok := domain.DocumentTypeForFilename(raw.Filename)
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	doc := &domain.Document{
		ID:        "doc-" + raw.Filename,
		Filename:  raw.Filename,
		Type:      docType,
		Size:      int64(len(raw.Content)),
		Content:   string(raw.Content),
		CreatedAt: time.Now(),
	}
	m.docs[doc.ID] = doc
	return doc, nil
}

func (m *mockDocService) List(context.Context) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDocService) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockDocService) GetContent(_ context.Context, id string) (string, error) {
	doc, ok := m.docs[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return doc.Content, nil
}

func (m *mockDocService) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// mockComparisonService backs comparison handlers.
type mockComparisonService struct {
	cmps map[string]*domain.Comparison
}

var _ driving.ComparisonService = (*mockComparisonService)(nil)

func newMockComparisonService() *mockComparisonService {
	return &mockComparisonService{cmps: make(map[string]*domain.Comparison)}
}

func (m *mockComparisonService) Create(_ context.Context, originalID, modifiedID string, level domain.ComparisonLevel) (*domain.Comparison, error) {
	if !level.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if originalID == "missing" || modifiedID == "missing" {
		return nil, domain.ErrNotFound
	}
	cmp := &domain.Comparison{
		ID:                 "cmp-1",
		OriginalDocumentID: originalID,
		ModifiedDocumentID: modifiedID,
		Level:              level,
		State:              domain.StateQueued,
		CreatedAt:          time.Now(),
	}
	m.cmps[cmp.ID] = cmp
	return cmp, nil
}

func (m *mockComparisonService) Status(_ context.Context, id string) (*domain.Comparison, error) {
	cmp, ok := m.cmps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cmp, nil
}

func (m *mockComparisonService) Result(_ context.Context, id string) (*domain.Result, error) {
	cmp, ok := m.cmps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if cmp.State != domain.StateCompleted || cmp.Result == nil {
		return nil, domain.ErrComparisonIncomplete
	}
	return cmp.Result, nil
}

func (m *mockComparisonService) List(context.Context) ([]domain.Comparison, error) {
	out := make([]domain.Comparison, 0, len(m.cmps))
	for _, c := range m.cmps {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockComparisonService) Execute(context.Context, string, string, domain.ComparisonLevel) (*domain.Result, error) {
	return nil, nil
}

func (m *mockComparisonService) Start(context.Context) error { return nil }
func (m *mockComparisonService) Stop() error                 { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *mockDocService, *mockComparisonService) {
	t.Helper()
	docs := newMockDocService()
	cmps := newMockComparisonService()

	srv, err := New("", docs, cmps)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, docs, cmps
}

func uploadFile(t *testing.T, ts *httptest.Server, filename, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/documents/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestServer_Welcome(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Welcome to Contract Comparison AI API", body["message"])
}

func TestServer_UploadDocument(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := uploadFile(t, ts, "contract.txt", "The parties agree.")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body uploadResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "contract.txt", body.Filename)
	assert.Equal(t, "text", body.DocumentType)
	assert.Equal(t, "uploaded", body.Status)
	assert.NotEmpty(t, body.FileID)
}

func TestServer_UploadUnsupportedExtension(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := uploadFile(t, ts, "malware.exe", "x")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_UploadMissingFileField(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "contract"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/documents/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_GetDocument(t *testing.T) {
	ts, docs, _ := newTestServer(t)
	docs.docs["doc-1"] = &domain.Document{ID: "doc-1", Filename: "a.txt", Type: domain.DocumentTypeText, Size: 10}

	resp, err := http.Get(ts.URL + "/api/v1/documents/doc-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body documentResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "doc-1", body.FileID)
	assert.Equal(t, "a.txt", body.Filename)
}

func TestServer_GetDocumentNotFound(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/documents/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_GetDocumentContent(t *testing.T) {
	ts, docs, _ := newTestServer(t)
	docs.docs["doc-1"] = &domain.Document{ID: "doc-1", Content: "Extracted text."}

	resp, err := http.Get(ts.URL + "/api/v1/documents/doc-1/content")
	require.NoError(t, err)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "doc-1", body["file_id"])
	assert.Equal(t, "Extracted text.", body["content"])
}

func TestServer_DeleteDocument(t *testing.T) {
	ts, docs, _ := newTestServer(t)
	docs.docs["doc-1"] = &domain.Document{ID: "doc-1"}

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/documents/doc-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, docs.docs)
}

func TestServer_CreateComparison(t *testing.T) {
	ts, _, _ := newTestServer(t)

	payload := `{"original_document_id":"doc-a","modified_document_id":"doc-b","comparison_level":"ai"}`
	resp, err := http.Post(ts.URL+"/api/v1/comparison", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body comparisonStatusResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "cmp-1", body.ComparisonID)
	assert.Equal(t, "queued", body.Status)
	assert.Equal(t, "ai", body.ComparisonLevel)
}

func TestServer_CreateComparisonInvalidLevel(t *testing.T) {
	ts, _, _ := newTestServer(t)

	payload := `{"original_document_id":"doc-a","modified_document_id":"doc-b","comparison_level":"extreme"}`
	resp, err := http.Post(ts.URL+"/api/v1/comparison", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_CreateComparisonUnknownDocument(t *testing.T) {
	ts, _, _ := newTestServer(t)

	payload := `{"original_document_id":"missing","modified_document_id":"doc-b","comparison_level":"basic"}`
	resp, err := http.Post(ts.URL+"/api/v1/comparison", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ComparisonStatus(t *testing.T) {
	ts, _, cmps := newTestServer(t)
	cmps.cmps["cmp-1"] = &domain.Comparison{
		ID:       "cmp-1",
		State:    domain.StateProcessing,
		Progress: 0.6,
		Message:  "running semantic comparison",
	}

	resp, err := http.Get(ts.URL + "/api/v1/comparison/status/cmp-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body comparisonStatusResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "processing", body.Status)
	assert.InDelta(t, 0.6, body.Progress, 1e-9)
}

func TestServer_ComparisonResultIncomplete(t *testing.T) {
	ts, _, cmps := newTestServer(t)
	cmps.cmps["cmp-1"] = &domain.Comparison{ID: "cmp-1", State: domain.StateProcessing}

	resp, err := http.Get(ts.URL + "/api/v1/comparison/result/cmp-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestServer_ComparisonResult(t *testing.T) {
	ts, _, cmps := newTestServer(t)
	cmps.cmps["cmp-1"] = &domain.Comparison{
		ID:    "cmp-1",
		State: domain.StateCompleted,
		Result: &domain.Result{
			Differences: []domain.Difference{
				{
					Type:            domain.DifferenceModification,
					OriginalContent: "within 30 days",
					ModifiedContent: "within 60 days",
					Importance:      domain.ImportanceHigh,
					Confidence:      0.9,
				},
			},
			UnifiedDiff:     "-within 30 days\n+within 60 days\n",
			SimilarityScore: 0.87,
			Summary:         &domain.Summary{Text: "1 modification", Total: 1, Modifications: 1, High: 1},
		},
	}

	resp, err := http.Get(ts.URL + "/api/v1/comparison/result/cmp-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body resultResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "cmp-1", body.ComparisonID)
	require.Len(t, body.Differences, 1)
	assert.Equal(t, "modification", body.Differences[0].Type)
	assert.Equal(t, "high", body.Differences[0].Importance)
	assert.InDelta(t, 0.87, body.SimilarityScore, 1e-9)
	require.NotNil(t, body.Summary)
	assert.Equal(t, "1 modification", body.Summary.Text)
}

func TestServer_ComparisonResultNotFound(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/comparison/result/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ComparisonReport(t *testing.T) {
	ts, docs, cmps := newTestServer(t)
	docs.docs["doc-a"] = &domain.Document{ID: "doc-a", Filename: "original.docx"}
	docs.docs["doc-b"] = &domain.Document{ID: "doc-b", Filename: "revised.docx"}
	cmps.cmps["cmp-1"] = &domain.Comparison{
		ID:                 "cmp-1",
		OriginalDocumentID: "doc-a",
		ModifiedDocumentID: "doc-b",
		Level:              domain.LevelBasic,
		State:              domain.StateCompleted,
		Result: &domain.Result{
			UnifiedDiff:     "-a\n+b\n",
			SimilarityScore: 0.5,
		},
	}

	resp, err := http.Get(ts.URL + "/api/v1/comparison/report/cmp-1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "original.docx")
	assert.Contains(t, buf.String(), "revised.docx")
}

func TestServer_ComparisonReportIncomplete(t *testing.T) {
	ts, _, cmps := newTestServer(t)
	cmps.cmps["cmp-1"] = &domain.Comparison{ID: "cmp-1", State: domain.StateQueued}

	resp, err := http.Get(ts.URL + "/api/v1/comparison/report/cmp-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestServer_CORSPreflight(t *testing.T) {
	ts, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/documents", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
