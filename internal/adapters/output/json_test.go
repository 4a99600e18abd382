// internal/adapters/output/json_test.go
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"webenum/internal/core/domain"
	"webenum/internal/core/ports"
)

var (
	_ ports.WriterExporter = (*JSONExporter)(nil)
	_ ports.WriterExporter = (*MarkdownExporter)(nil)
)

func testSummary() domain.Summary {
	return domain.Summary{
		Target:    "example.com",
		Timestamp: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Stages: []domain.StageCount{
			{Name: "subfinder", Count: 12, Sample: []string{"a.example.com", "b.example.com"}},
			{Name: "dnsx", Count: 1, Sample: []string{"a.example.com"}},
			{Name: "naabu", Count: 0},
			{Name: "httpx", Count: 1, Sample: []string{"https://a.example.com"}},
		},
	}
}

func TestJSONExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	exp := NewJSONExporter(true)

	path, err := exp.Export(testSummary(), dir)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if path != filepath.Join(dir, "summary.json") {
		t.Errorf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	var decoded struct {
		Target     string              `json:"target"`
		Timestamp  string              `json:"timestamp"`
		Statistics map[string]int      `json:"statistics"`
		Findings   map[string][]string `json:"findings"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Target != "example.com" {
		t.Errorf("target = %q", decoded.Target)
	}
	if decoded.Timestamp != "2026-03-01T12:30:00Z" {
		t.Errorf("timestamp = %q", decoded.Timestamp)
	}
	if decoded.Statistics["subfinder"] != 12 || decoded.Statistics["naabu"] != 0 {
		t.Errorf("statistics = %v", decoded.Statistics)
	}
	if got := decoded.Findings["naabu"]; got == nil || len(got) != 0 {
		t.Errorf("empty sample should encode as [], got %v", got)
	}
	if len(decoded.Findings["subfinder"]) != 2 {
		t.Errorf("findings = %v", decoded.Findings)
	}

	// key order survives indentation
	text := string(data)
	order := []string{`"target"`, `"timestamp"`, `"statistics"`, `"findings"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx <= last {
			t.Fatalf("key %s out of order in\n%s", key, text)
		}
		last = idx
	}
	if strings.Index(text, `"subfinder": 12`) > strings.Index(text, `"dnsx": 1`) {
		t.Errorf("stage keys not in pipeline order:\n%s", text)
	}
	if !strings.Contains(text, "\n  \"statistics\": {") {
		t.Errorf("expected two-space indentation:\n%s", text)
	}
}

func TestJSONExporter_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.json")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewJSONExporter(false).Export(testSummary(), dir); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !json.Valid(data) {
		t.Fatalf("stale content left behind: %q", data)
	}
}

func TestJSONExporter_ExportToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).ExportToWriter(domain.Summary{Target: "example.com"}, &buf); err != nil {
		t.Fatalf("ExportToWriter() failed: %v", err)
	}

	want := `{"target":"example.com","timestamp":"0001-01-01T00:00:00Z","statistics":{},"findings":{}}` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONExporter_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewJSONExporter(true).Export(testSummary(), filepath.Join(file, "sub")); err == nil {
		t.Fatal("expected error when the output dir is a file")
	}
}

func TestJSONExporter_QueryStringsUnescaped(t *testing.T) {
	summary := testSummary()
	summary.Stages = append(summary.Stages, domain.StageCount{
		Name:   "katana",
		Count:  1,
		Sample: []string{"https://a.example.com/?x=1&y=<2>"},
	})

	for _, pretty := range []bool{true, false} {
		var buf bytes.Buffer
		if err := NewJSONExporter(pretty).ExportToWriter(summary, &buf); err != nil {
			t.Fatalf("ExportToWriter(pretty=%v): %v", pretty, err)
		}

		out := buf.String()
		if !strings.Contains(out, `"https://a.example.com/?x=1&y=<2>"`) {
			t.Errorf("pretty=%v: URL was escaped: %s", pretty, out)
		}
		if strings.Contains(out, `\u0026`) || strings.Contains(out, `\u003c`) {
			t.Errorf("pretty=%v: unexpected unicode escape in %s", pretty, out)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("pretty=%v: output is not valid JSON: %v", pretty, err)
		}
	}
}
