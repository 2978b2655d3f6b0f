package output_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mekedron/yemek-cli/internal/service/output"
)

func TestBuildEnvelope(t *testing.T) {
	env := output.BuildEnvelope("ev", "http://localhost:5000", map[string]any{"ok": true}, nil)
	if env.Meta.Profile != "ev" {
		t.Fatalf("expected profile ev, got %v", env.Meta.Profile)
	}
	if env.Meta.BaseURL != "http://localhost:5000" {
		t.Fatalf("expected base_url, got %v", env.Meta.BaseURL)
	}
	requestID := env.Meta.RequestID
	if !strings.HasPrefix(requestID, "req_") {
		t.Fatalf("expected request_id prefix req_, got %q", requestID)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(requestID, "req_")); err != nil {
		t.Fatalf("expected uuid request id, got %q: %v", requestID, err)
	}
	generatedAt := env.Meta.GeneratedAt
	if !strings.HasSuffix(generatedAt, "Z") {
		t.Fatalf("expected generated_at to end with Z, got %q", generatedAt)
	}
	if env.Warnings == nil || len(env.Warnings) != 0 {
		t.Fatalf("expected empty warnings, got %v", env.Warnings)
	}
	if env.Error != nil {
		t.Fatalf("expected no error, got %+v", env.Error)
	}
}

func TestErrorEnvelopeRendersFailure(t *testing.T) {
	env := output.BuildErrorEnvelope("ev", "http://localhost:5000", "YEMEK_ORDER_REJECTED", "Adres gerekli")

	jsonPayload, err := output.RenderPayload(env, output.FormatJSON)
	if err != nil {
		t.Fatalf("render json failed: %v", err)
	}
	for _, want := range []string{`"code": "YEMEK_ORDER_REJECTED"`, `"message": "Adres gerekli"`, `"data": null`} {
		if !strings.Contains(jsonPayload, want) {
			t.Fatalf("expected %s in %s", want, jsonPayload)
		}
	}
}

func TestRenderPayload(t *testing.T) {
	env := output.BuildEnvelope("ev", "", map[string]any{"ok": true}, []string{"warn"})

	jsonPayload, err := output.RenderPayload(env, output.FormatJSON)
	if err != nil {
		t.Fatalf("render json failed: %v", err)
	}
	if !strings.Contains(jsonPayload, "\"ok\": true") {
		t.Fatalf("expected json payload to include data, got %s", jsonPayload)
	}

	yamlPayload, err := output.RenderPayload(env, output.FormatYAML)
	if err != nil {
		t.Fatalf("render yaml failed: %v", err)
	}
	if !strings.Contains(yamlPayload, "profile: ev") || strings.Contains(yamlPayload, "error:") {
		t.Fatalf("expected yaml payload to include profile, got %s", yamlPayload)
	}

	if _, err := output.RenderPayload(env, output.FormatTable); err == nil {
		t.Fatalf("expected table format to be rejected")
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	text := output.RenderTable("Menü", []string{"ID", "Ürün"}, [][]string{{"1", "Margherita"}, {"12", "Ayran"}})
	lines := strings.Split(text, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and two rows, got %q", text)
	}
	if lines[0] != "Menü" {
		t.Fatalf("unexpected title line %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1   Margherita") {
		t.Fatalf("expected aligned row, got %q", lines[2])
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]output.Format{"": output.FormatTable, "JSON": output.FormatJSON, " yaml ": output.FormatYAML} {
		got, err := output.ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := output.ParseFormat("xml"); err == nil {
		t.Fatalf("expected xml to be rejected")
	}
}

func TestJoinBlocksSkipsEmpty(t *testing.T) {
	if got := output.JoinBlocks("a", " ", "b"); got != "a\n\nb" {
		t.Fatalf("unexpected join %q", got)
	}
}
