// Package output renders command results as aligned text or as a json/yaml
// envelope.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format represents command output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates format values.
func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, json or yaml)", v)
	}
}

// Meta describes one command run.
type Meta struct {
	RequestID   string `json:"request_id" yaml:"request_id"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Profile     string `json:"profile" yaml:"profile"`
	BaseURL     string `json:"base_url" yaml:"base_url"`
}

// Failure is the machine-readable error of a failed command.
type Failure struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Envelope is the machine-output payload.
type Envelope struct {
	Meta     Meta     `json:"meta" yaml:"meta"`
	Data     any      `json:"data" yaml:"data"`
	Warnings []string `json:"warnings" yaml:"warnings"`
	Error    *Failure `json:"error,omitempty" yaml:"error,omitempty"`
}

// BuildEnvelope wraps data for profile and backend baseURL. Warnings are
// always encoded as a list.
func BuildEnvelope(profile, baseURL string, data any, warnings []string) Envelope {
	if warnings == nil {
		warnings = []string{}
	}
	return Envelope{
		Meta: Meta{
			RequestID:   "req_" + uuid.NewString(),
			GeneratedAt: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
			Profile:     profile,
			BaseURL:     baseURL,
		},
		Data:     data,
		Warnings: warnings,
	}
}

// BuildErrorEnvelope is an envelope without data carrying code and message.
func BuildErrorEnvelope(profile, baseURL, code, message string) Envelope {
	env := BuildEnvelope(profile, baseURL, nil, nil)
	env.Error = &Failure{Code: code, Message: message}
	return env
}

// RenderPayload renders payload in json/yaml format.
func RenderPayload(payload Envelope, format Format) (string, error) {
	var (
		raw []byte
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = json.MarshalIndent(payload, "", "  ")
	case FormatYAML:
		raw, err = yaml.Marshal(payload)
	default:
		return "", fmt.Errorf("render payload only supports json/yaml, got %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", format, err)
	}
	return strings.TrimRight(string(raw), "\n"), nil
}

// WriteOutput prints text and, when outputPath is set, also saves it there.
func WriteOutput(w io.Writer, text string, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// RenderTable renders a titled, column-aligned text table.
func RenderTable(title string, headers []string, rows [][]string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// JoinBlocks joins rendered blocks with one blank line, skipping empty ones.
func JoinBlocks(blocks ...string) string {
	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if strings.TrimSpace(block) != "" {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n")
}
