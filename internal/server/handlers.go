package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/CodePeacock/pdf-parser/internal/ingestion"
	"github.com/CodePeacock/pdf-parser/internal/reference"
	"github.com/CodePeacock/pdf-parser/internal/schemas"
	"github.com/CodePeacock/pdf-parser/internal/types"
)

// maxDocumentBytes bounds the request body of /extract.
const maxDocumentBytes = 4 << 20

// ExtractRequest is the JSON body of POST /extract. A text/plain body is
// treated as Text with the default format.
type ExtractRequest struct {
	DocumentID string `json:"document_id,omitempty" validate:"omitempty,max=200"`
	Text       string `json:"text" validate:"required"`
	Format     string `json:"format,omitempty" validate:"omitempty,oneof=text html"`
}

// ExtractResponse is the response of POST /extract.
type ExtractResponse struct {
	DocumentID string                 `json:"document_id"`
	RequestID  string                 `json:"request_id"`
	Record     *types.ExtractedRecord `json:"record"`
}

// ListStatus describes one reference list after a sync.
type ListStatus struct {
	State     string `json:"state"`
	Entries   int    `json:"entries"`
	Skipped   int    `json:"skipped"`
	FromCache bool   `json:"from_cache"`
	Written   bool   `json:"written"`
	Error     string `json:"error,omitempty"`
}

// SyncResponse is the response of POST /references/sync.
type SyncResponse struct {
	Complete     bool        `json:"complete"`
	Skills       *ListStatus `json:"skills,omitempty"`
	Designations *ListStatus `json:"designations,omitempty"`
}

// handleExtract extracts a record from the posted document.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeExtractRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	text := ingestion.NormalizeLines(req.Text)
	format := ingestion.FormatText
	if req.Format == string(ingestion.FormatHTML) {
		format = ingestion.FormatHTML
		if text, err = ingestion.FromHTML(req.Text); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid HTML document: "+err.Error())
			return
		}
	}

	metadata := ingestion.NewMetadata(text, "", format)
	if req.DocumentID != "" {
		metadata.DocumentID = req.DocumentID
	}

	record := s.extractor.Extract(r.Context(), text)

	if s.validate {
		if err := schemas.ValidateRecord(record); err != nil {
			s.logger.Error("record failed validation", "document_id", metadata.DocumentID, "error", err)
			s.errorResponse(w, http.StatusInternalServerError, "extracted record failed validation")
			return
		}
	}

	if s.sink != nil {
		if err := s.sink.SaveExtraction(r.Context(), metadata, record); err != nil {
			s.logger.Warn("failed to persist record", "document_id", metadata.DocumentID, "error", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, ExtractResponse{
		DocumentID: metadata.DocumentID,
		RequestID:  requestID(r.Context()),
		Record:     record,
	})
}

func (s *Server) decodeExtractRequest(w http.ResponseWriter, r *http.Request) (*ExtractRequest, error) {
	body := http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	defer body.Close()

	var req ExtractRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return nil, requestBodyError(err)
		}
	case "", "text/plain":
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, requestBodyError(err)
		}
		req.Text = string(data)
	case "text/html":
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, requestBodyError(err)
		}
		req.Text = string(data)
		req.Format = string(ingestion.FormatHTML)
	default:
		return nil, &ErrUnsupportedMediaType{MediaType: mediaType}
	}

	if id := r.URL.Query().Get("document_id"); id != "" && req.DocumentID == "" {
		req.DocumentID = id
	}
	if strings.TrimSpace(req.Text) == "" {
		req.Text = ""
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func requestBodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrTooLarge{Limit: tooLarge.Limit}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// validationError reports the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: strings.ToLower(fe.Field()), Message: "failed " + fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// handleReferenceSync refreshes both reference lists.
func (s *Server) handleReferenceSync(w http.ResponseWriter, r *http.Request) {
	if s.refs == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "reference sync is not configured")
		return
	}

	report, err := s.refs.Refresh(r.Context())
	resp := SyncResponse{
		Complete:     err == nil,
		Skills:       listStatus(report.Skills),
		Designations: listStatus(report.Designations),
	}
	if err != nil {
		s.logger.Warn("reference sync incomplete", "request_id", requestID(r.Context()), "error", err)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func listStatus(res *reference.Result) *ListStatus {
	if res == nil {
		return nil
	}
	st := &ListStatus{
		State:     res.State.String(),
		Entries:   res.List.Len(),
		FromCache: res.FromCache,
		Written:   res.Written,
	}
	if res.List != nil {
		st.Skipped = res.List.Skipped
	}
	if res.Err != nil {
		st.Error = res.Err.Error()
	}
	return st
}
