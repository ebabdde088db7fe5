package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/dto"
	"github.com/GlebRadaev/loanboard/internal/service/uploadservice"
)

func NewMock(t *testing.T) (*UploadHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, 1<<20)
	defer ctrl.Finish()
	return handler, service
}

type errorReader struct{}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, errors.New("simulated read error")
}

const csv = "wallet,amount,term,due_date\n0xA,1,30,2024-01-10\n"

var batch = &domain.UploadBatch{
	ID:             uuid.MustParse("5f1c2d9e-7b0a-4d1f-9a52-3c6e8b7d0a11"),
	SourceFileName: "loans.csv",
	UploadedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	RecordCount:    1,
}

func multipartBody(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func ingestOK(expectedName string) func(context.Context, uploadservice.Upload, uploadservice.ProgressSink) (*uploadservice.Result, error) {
	return func(_ context.Context, upload uploadservice.Upload, sink uploadservice.ProgressSink) (*uploadservice.Result, error) {
		if upload.FileName != expectedName || string(upload.Data) != csv {
			return nil, fmt.Errorf("unexpected upload %q", upload.FileName)
		}
		sink.Report(0, "reading file")
		sink.Report(65, "upload batch recorded")
		sink.Report(100, "done")
		return &uploadservice.Result{
			Batch:    batch,
			Loans:    []domain.Loan{{WalletID: "0xA", UploadBatchID: batch.ID}},
			Rejected: []int{4},
			Warnings: []string{"1 rows skipped: missing wallet id"},
		}, nil
	}
}

func TestUploadHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		request       func() *http.Request
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Multipart upload",
			request: func() *http.Request {
				body, ct := multipartBody(t, "file", "loans.csv", csv)
				r := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
				r.Header.Set("Content-Type", ct)
				return r
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(ingestOK("loans.csv"))
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Raw body with file name",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/api/uploads?filename=loans.csv", strings.NewReader(csv))
				r.Header.Set("Content-Type", "text/csv")
				return r
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(ingestOK("loans.csv"))
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Raw body without file name",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(csv))
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(ingestOK("upload.csv"))
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Multipart without file field",
			request: func() *http.Request {
				body, ct := multipartBody(t, "attachment", "loans.csv", csv)
				r := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
				r.Header.Set("Content-Type", ct)
				return r
			},
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: `multipart field \"file\" is required`,
		},
		{
			name: "Failed to read request body",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", &errorReader{})
			},
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Failed to read request body",
		},
		{
			name: "File too large",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(strings.Repeat("x", 2<<20)))
			},
			prepareMock:   func() {},
			expectedCode:  http.StatusRequestEntityTooLarge,
			expectedError: "File exceeds 1048576 bytes",
		},
		{
			name: "Empty file",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(""))
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, uploadservice.ErrEmptyFile)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: uploadservice.ErrEmptyFile.Error(),
		},
		{
			name: "No valid rows",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(csv))
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: 3 rows rejected for missing wallet id", uploadservice.ErrNoValidRows))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "no valid rows: 3 rows rejected for missing wallet id",
		},
		{
			name: "Timeout",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(csv))
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w after 30s", uploadservice.ErrTimeout))
			},
			expectedCode:  http.StatusGatewayTimeout,
			expectedError: "ingestion timed out after 30s",
		},
		{
			name: "Internal server error",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(csv))
			},
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("can't save loans: boom"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.Upload(w, tt.request())

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusCreated {
				var body dto.UploadResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, batch.ID.String(), body.BatchID)
				assert.Equal(t, 1, body.RecordCount)
				assert.Equal(t, []int{4}, body.RejectedLines)
				assert.Equal(t, []string{"1 rows skipped: missing wallet id"}, body.Warnings)
				require.Len(t, body.Progress, 3)
				assert.Equal(t, 100, body.Progress[2].Percent)
			}
		})
	}
}

func TestUploadStreamHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name           string
		prepareMock    func()
		expectedEvents []string
		expectedText   string
	}{
		{
			name: "Progress then result",
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(ingestOK("loans.csv"))
			},
			expectedEvents: []string{"progress", "progress", "progress", "result"},
			expectedText:   `"batch_id":"5f1c2d9e-7b0a-4d1f-9a52-3c6e8b7d0a11"`,
		},
		{
			name: "Progress then error",
			prepareMock: func() {
				service.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ uploadservice.Upload, sink uploadservice.ProgressSink) (*uploadservice.Result, error) {
						sink.Report(0, "reading file")
						return nil, uploadservice.ErrRequiredHeadersMissing
					})
			},
			expectedEvents: []string{"progress", "error"},
			expectedText:   `"status":400`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/uploads/stream?filename=loans.csv", strings.NewReader(csv))
			w := httptest.NewRecorder()
			handler.UploadStream(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

			var events []string
			for _, line := range strings.Split(w.Body.String(), "\n") {
				if name, ok := strings.CutPrefix(line, "event: "); ok {
					events = append(events, name)
				}
			}
			assert.Equal(t, tt.expectedEvents, events)
			assert.Contains(t, w.Body.String(), tt.expectedText)
		})
	}
}

func TestUploadStreamHandler_ReadError(t *testing.T) {
	handler, _ := NewMock(t)

	w := httptest.NewRecorder()
	handler.UploadStream(w, httptest.NewRequest(http.MethodPost, "/api/uploads/stream", &errorReader{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to read request body")
}

func TestLatestBatchHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Batch found",
			prepareMock: func() {
				service.EXPECT().LatestBatch(gomock.Any()).Return(batch, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No uploads yet",
			prepareMock: func() {
				service.EXPECT().LatestBatch(gomock.Any()).Return(nil, nil)
			},
			expectedCode:  http.StatusNoContent,
			expectedError: "No data available",
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().LatestBatch(gomock.Any()).Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.LatestBatch(w, httptest.NewRequest(http.MethodGet, "/api/uploads/latest", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.BatchDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, dto.BatchDTO{
					BatchID:        "5f1c2d9e-7b0a-4d1f-9a52-3c6e8b7d0a11",
					SourceFileName: "loans.csv",
					UploadedAt:     "2024-01-01T12:00:00Z",
					RecordCount:    1,
				}, body)
			}
		})
	}
}
