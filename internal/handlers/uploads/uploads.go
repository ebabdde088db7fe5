package uploads

//go:generate mockgen -source=uploads.go -destination=mock.go -package=uploads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/dto"
	"github.com/GlebRadaev/loanboard/internal/service/uploadservice"
	"github.com/GlebRadaev/loanboard/pkg/utils"
)

const (
	DefaultMaxBytes = 32 << 20
	defaultFileName = "upload.csv"
	formField       = "file"
)

type Service interface {
	Ingest(ctx context.Context, upload uploadservice.Upload, sink uploadservice.ProgressSink) (*uploadservice.Result, error)
	LatestBatch(ctx context.Context) (*domain.UploadBatch, error)
}

type UploadHandler struct {
	uploadService Service
	maxBytes      int64
}

func New(uploadService Service, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &UploadHandler{
		uploadService: uploadService,
		maxBytes:      maxBytes,
	}
}

var errMissingFile = errors.New("multipart field \"file\" is required")

// readUpload accepts either a multipart form with a "file" field or the raw file as the body.
func (h *UploadHandler) readUpload(w http.ResponseWriter, r *http.Request) (uploadservice.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(h.maxBytes); err != nil {
			return uploadservice.Upload{}, err
		}
		file, header, err := r.FormFile(formField)
		if err != nil {
			return uploadservice.Upload{}, errMissingFile
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return uploadservice.Upload{}, err
		}
		return uploadservice.Upload{FileName: header.Filename, Data: data}, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return uploadservice.Upload{}, err
	}
	name := strings.TrimSpace(r.URL.Query().Get("filename"))
	if name == "" {
		name = defaultFileName
	}
	return uploadservice.Upload{FileName: name, Data: data}, nil
}

func (h *UploadHandler) respondReadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RespondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d bytes", tooLarge.Limit))
		return
	}
	if errors.Is(err, errMissingFile) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
}

func statusFor(err error) (int, string) {
	switch {
	case uploadservice.IsInputError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, uploadservice.ErrTimeout):
		return http.StatusGatewayTimeout, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func newUploadResponse(res *uploadservice.Result, events []uploadservice.Event) dto.UploadResponseDTO {
	resp := dto.UploadResponseDTO{
		BatchDTO:      *dto.NewBatchDTO(res.Batch),
		RejectedLines: res.Rejected,
		Warnings:      res.Warnings,
		Progress:      make([]dto.ProgressDTO, 0, len(events)),
	}
	if resp.RejectedLines == nil {
		resp.RejectedLines = []int{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	for _, e := range events {
		resp.Progress = append(resp.Progress, dto.ProgressDTO{Percent: e.Percent, Message: e.Message})
	}
	return resp
}

// Upload godoc
//
//	@Summary		Upload a loan file
//	@Description	Ingest a comma-delimited text file or an xlsx workbook, either as multipart field "file" or as the raw body.
//	@Tags			Uploads
//	@Accept			multipart/form-data
//	@Accept			text/csv
//	@Produce		json
//	@Param			file		formData	file	false	"Loan file"
//	@Param			filename	query		string	false	"File name when the body is sent raw"
//	@Success		201	{object}	dto.UploadResponseDTO	"Upload stored"
//	@Failure		400	{object}	utils.Response			"File rejected"
//	@Failure		413	{object}	utils.Response			"File too large"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Failure		504	{object}	utils.Response			"Ingestion timed out"
//	@Router			/api/uploads [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	if err != nil {
		h.respondReadError(w, err)
		return
	}

	rec := &uploadservice.Recorder{}
	res, err := h.uploadService.Ingest(r.Context(), upload, rec)
	if err != nil {
		code, msg := statusFor(err)
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to ingest upload", zap.String("file", upload.FileName), zap.Error(err))
		}
		utils.RespondWithError(w, code, msg)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, newUploadResponse(res, rec.Events()))
}

func writeEvent(w io.Writer, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

// UploadStream godoc
//
//	@Summary		Upload a loan file with live progress
//	@Description	Same input as /api/uploads. Responds with server-sent events: "progress" events, then one "result" or "error" event.
//	@Tags			Uploads
//	@Accept			multipart/form-data
//	@Produce		text/event-stream
//	@Param			file		formData	file	false	"Loan file"
//	@Param			filename	query		string	false	"File name when the body is sent raw"
//	@Success		200	{string}	string			"Event stream"
//	@Failure		400	{object}	utils.Response	"Body could not be read"
//	@Failure		500	{object}	utils.Response	"Streaming unsupported"
//	@Router			/api/uploads/stream [post]
func (h *UploadHandler) UploadStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	upload, err := h.readUpload(w, r)
	if err != nil {
		h.respondReadError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := make(chan uploadservice.Event, 16)
	type outcome struct {
		res *uploadservice.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := h.uploadService.Ingest(r.Context(), upload, uploadservice.ChanSink(events))
		close(events)
		done <- outcome{res: res, err: err}
	}()

	var trail []uploadservice.Event
	for e := range events {
		trail = append(trail, e)
		if err := writeEvent(w, "progress", dto.ProgressDTO{Percent: e.Percent, Message: e.Message}); err != nil {
			zap.L().Debug("Client went away during upload stream", zap.Error(err))
			continue
		}
		flusher.Flush()
	}

	out := <-done
	if out.err != nil {
		code, msg := statusFor(out.err)
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to ingest upload", zap.String("file", upload.FileName), zap.Error(out.err))
		}
		_ = writeEvent(w, "error", utils.Response{Status: code, Message: msg})
	} else {
		_ = writeEvent(w, "result", newUploadResponse(out.res, trail))
	}
	flusher.Flush()
}

// LatestBatch godoc
//
//	@Summary		Latest upload
//	@Description	Describe the most recent upload batch
//	@Tags			Uploads
//	@Produce		json
//	@Success		200	{object}	dto.BatchDTO
//	@Success		204	{object}	utils.Response	"No uploads yet"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/uploads/latest [get]
func (h *UploadHandler) LatestBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.uploadService.LatestBatch(r.Context())
	if err != nil {
		zap.L().Error("Failed to load latest batch", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if batch == nil {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBatchDTO(batch))
}
