package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/types"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", apperror.InvalidArgument(fmt.Sprintf("unsupported export format %q", s))
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Render encodes a report in the requested format.
func Render(r types.Report, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, apperror.Export(err)
		}
		if err := enc.Close(); err != nil {
			return nil, apperror.Export(err)
		}
		return buf.Bytes(), nil
	case FormatXLSX:
		return RenderXLSX(r)
	default:
		return nil, apperror.InvalidArgument(fmt.Sprintf("unsupported export format %q", f))
	}
}

// ArtifactName builds a collision-free file name:
// interview_report_YYYYmmdd_HHMMSS_<8 hex>.<ext>. The suffix comes from the
// report id, or a fresh UUID when the report has none.
func ArtifactName(r types.Report, f Format, at time.Time) string {
	suffix := strings.ReplaceAll(r.ID, "-", "")
	if len(suffix) < 8 {
		suffix = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return fmt.Sprintf("interview_report_%s_%s.%s", at.Format("20060102_150405"), suffix[:8], f)
}
