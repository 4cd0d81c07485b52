package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	CodeMissingCredential     ErrorCode = "MISSING_CREDENTIAL"
	CodeEmptyTranscript       ErrorCode = "EMPTY_TRANSCRIPT"
	CodeModelInvocation       ErrorCode = "MODEL_INVOCATION_FAILED"
	CodeResponseParseDegraded ErrorCode = "RESPONSE_PARSE_DEGRADED"
	CodeEnrichment            ErrorCode = "ENRICHMENT_FAILED"
	CodeInvalidArgument       ErrorCode = "INVALID_ARGUMENT"
	CodeUnsupportedAudio      ErrorCode = "UNSUPPORTED_AUDIO_FORMAT"
	CodeAudioTooLarge         ErrorCode = "AUDIO_TOO_LARGE"
	CodeTranscription         ErrorCode = "TRANSCRIPTION_FAILED"
	CodeReportNotFound        ErrorCode = "REPORT_NOT_FOUND"
	CodeExport                ErrorCode = "EXPORT_FAILED"
	CodeInternal              ErrorCode = "INTERNAL"
)

// Pipeline errors
var (
	ErrMissingCredential     = errors.New("model credential is not configured")
	ErrEmptyTranscript       = errors.New("transcript is empty")
	ErrModelInvocation       = errors.New("model invocation failed")
	ErrResponseParseDegraded = errors.New("model response could not be parsed strictly")
	ErrEnrichment            = errors.New("local metric computation failed")
)

// Service errors
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupportedAudio = errors.New("unsupported audio format")
	ErrAudioTooLarge    = errors.New("audio file too large")
	ErrTranscription    = errors.New("transcription failed")
	ErrReportNotFound   = errors.New("report not found")
	ErrExport           = errors.New("report export failed")
	ErrInternal         = errors.New("internal error")
)

// AppError carries a taxonomy kind, the underlying cause and the HTTP
// mapping. errors.Is matches both Kind and anything wrapped by Raw.
type AppError struct {
	Kind     error             `json:"-"`
	Raw      error             `json:"-"`
	HTTPCode int               `json:"-"`
	Code     ErrorCode         `json:"code"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Raw != nil {
		errs = append(errs, e.Raw)
	}
	return errs
}

// WithDetail returns a copy with the detail added.
func (e *AppError) WithDetail(key, value string) *AppError {
	cp := *e
	cp.Details = make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps any error to a response status.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}

func MissingCredential(variable string) *AppError {
	return &AppError{
		Kind:     ErrMissingCredential,
		HTTPCode: http.StatusInternalServerError,
		Code:     CodeMissingCredential,
		Message:  fmt.Sprintf("%s is not set", variable),
	}
}

func EmptyTranscript() *AppError {
	return &AppError{
		Kind:     ErrEmptyTranscript,
		HTTPCode: http.StatusBadRequest,
		Code:     CodeEmptyTranscript,
		Message:  "Transcript must not be empty",
	}
}

func ModelInvocation(err error) *AppError {
	return &AppError{
		Kind:     ErrModelInvocation,
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     CodeModelInvocation,
		Message:  "Model invocation failed",
	}
}

func ResponseParseDegraded(err error) *AppError {
	return &AppError{
		Kind:     ErrResponseParseDegraded,
		Raw:      err,
		HTTPCode: http.StatusOK,
		Code:     CodeResponseParseDegraded,
		Message:  "Model response was not valid JSON; partial analysis returned",
	}
}

func Enrichment(participant, field string, err error) *AppError {
	return (&AppError{
		Kind:     ErrEnrichment,
		Raw:      err,
		HTTPCode: http.StatusOK,
		Code:     CodeEnrichment,
		Message:  fmt.Sprintf("Could not compute %s", field),
	}).WithDetail("participant", participant)
}

func InvalidArgument(message string) *AppError {
	return &AppError{
		Kind:     ErrInvalidArgument,
		HTTPCode: http.StatusBadRequest,
		Code:     CodeInvalidArgument,
		Message:  message,
	}
}

func UnsupportedAudio(ext string) *AppError {
	return (&AppError{
		Kind:     ErrUnsupportedAudio,
		HTTPCode: http.StatusUnsupportedMediaType,
		Code:     CodeUnsupportedAudio,
		Message:  "Unsupported audio format",
	}).WithDetail("extension", ext)
}

func AudioTooLarge(size, limit int64) *AppError {
	return &AppError{
		Kind:     ErrAudioTooLarge,
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     CodeAudioTooLarge,
		Message:  fmt.Sprintf("Audio file is %d bytes, limit is %d", size, limit),
	}
}

func Transcription(err error) *AppError {
	return &AppError{
		Kind:     ErrTranscription,
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     CodeTranscription,
		Message:  "Transcription failed",
	}
}

func ReportNotFound(id string) *AppError {
	return (&AppError{
		Kind:     ErrReportNotFound,
		HTTPCode: http.StatusNotFound,
		Code:     CodeReportNotFound,
		Message:  "Report not found",
	}).WithDetail("id", id)
}

func Export(err error) *AppError {
	return &AppError{
		Kind:     ErrExport,
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     CodeExport,
		Message:  "Report export failed",
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:     ErrInternal,
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     CodeInternal,
		Message:  "Internal server error",
	}
}
