package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/aretw0/devconsole/pkg/domain"
)

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Each input line is either a JSON string or plain text; each report is one
// JSON object.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// JSONReport is the wire form of a Report.
type JSONReport struct {
	Line        string              `json:"line,omitempty"`
	LineID      string              `json:"line_id,omitempty"`
	Outcome     domain.Outcome      `json:"outcome,omitempty"`
	Output      string              `json:"output,omitempty"`
	Suggestions *domain.Suggestions `json:"suggestions,omitempty"`
	Error       string              `json:"error,omitempty"`
	ErrorKind   string              `json:"error_kind,omitempty"`
	Position    int                 `json:"position,omitempty"`
	DidYouMean  string              `json:"did_you_mean,omitempty"`
	System      string              `json:"system,omitempty"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := h.Reader.ReadString('\n')
	if err != nil && (text == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}

func (h *JSONHandler) Output(ctx context.Context, report Report) error {
	return h.Encoder.Encode(NewJSONReport(report))
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(JSONReport{System: msg})
}

// NewJSONReport flattens a report for encoding.
func NewJSONReport(report Report) JSONReport {
	out := JSONReport{
		Line:   report.Line,
		Output: report.Output,
	}
	if report.Result != nil {
		out.LineID = report.Result.LineID
		out.Outcome = report.Result.Outcome
		out.Suggestions = report.Result.Suggestions
	}
	if report.Err != nil {
		out.Error = report.Err.Error()
		out.ErrorKind = domain.ErrorKind(report.Err)
		var unresolved *domain.UnresolvedTokenError
		if errors.As(report.Err, &unresolved) {
			out.Position = unresolved.Position
			out.DidYouMean = unresolved.Suggestion
		}
	}
	return out
}
