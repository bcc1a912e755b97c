package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"ContentDesk/internal/describe"
	"ContentDesk/internal/domain"
	"ContentDesk/internal/guard"
	"ContentDesk/internal/usecase"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type decisionView struct {
	RequestID string    `json:"requestId"`
	Origin    string    `json:"origin,omitempty"`
	UserID    int64     `json:"userId"`
	User      string    `json:"user"`
	Role      string    `json:"role"`
	Kind      string    `json:"kind,omitempty"`
	Status    string    `json:"status"`
	Verdict   string    `json:"verdict"`
	Reason    string    `json:"reason,omitempty"`
	Message   string    `json:"message"`
	DecidedAt time.Time `json:"decidedAt"`
}

func viewOf(d domain.Decision) decisionView {
	return decisionView{
		RequestID: d.RequestID,
		Origin:    d.Origin,
		UserID:    d.UserID,
		User:      d.UserName,
		Role:      string(d.Role),
		Kind:      string(d.Kind),
		Status:    string(d.Status),
		Verdict:   string(d.Verdict),
		Reason:    string(d.Reason),
		Message:   d.Message,
		DecidedAt: d.DecidedAt,
	}
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
	}
}

// outcomeLine renders a decision the way its outcome prints.
func outcomeLine(d domain.Decision) string {
	text := d.Message
	if d.Verdict == domain.VerdictRejected {
		text = domain.Rejected{Reason: d.Reason, Detail: d.Message}.String()
	}
	return fmt.Sprintf("%-8s %s: %s", d.Verdict, d.RequestID, text)
}

func writeJSON(w io.Writer, decisions []domain.Decision) error {
	views := make([]decisionView, 0, len(decisions))
	for _, d := range decisions {
		views = append(views, viewOf(d))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func writeSummary(w io.Writer, format string, summary usecase.Summary) error {
	if format == formatJSON {
		return writeJSON(w, summary.Decisions)
	}
	for _, d := range summary.Decisions {
		fmt.Fprintln(w, outcomeLine(d))
	}
	fmt.Fprintf(w, "%d requests: %d allowed, %d rejected\n", summary.Total(), summary.Allowed, summary.Rejected)
	return nil
}

// writeDetails prints the describer view of an allowed request. Rejected
// requests carry no resolved content and only get the user line.
func writeDetails(w io.Writer, desc describe.Describer, req domain.Request, d domain.Decision) {
	fmt.Fprintf(w, "  user:    %s\n", desc.User(req.User))
	if d.Kind == "" {
		return
	}
	shape := req.Content
	shape.Kind = d.Kind
	content, err := guard.DefaultSet().Resolve(shape)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "  content: %s\n", desc.Content(content))
	fmt.Fprintf(w, "  status:  %s\n", desc.Status(req.Status))
	fmt.Fprintf(w, "  display: %s\n", desc.DisplayInfo(content, req.Status))
}
