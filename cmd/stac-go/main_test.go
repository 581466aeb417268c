package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRunConvertJSONToNDJSON(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "catalog.json")
	outputPath := filepath.Join(dir, "catalog.ndjson")

	input := `{"type":"Catalog","stac_version":"1.1.0","id":"root","description":"a test catalog","links":[]}`
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	code := run([]string{"convert", "file://" + inputPath, "file://" + outputPath})
	if code != ExitOK {
		t.Fatalf("run(convert) = %d, want %d", code, ExitOK)
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["id"] != "root" {
		t.Errorf("id = %v, want root", decoded["id"])
	}
}

func TestRunConvertMissingArgsReturnsUsage(t *testing.T) {
	if code := run([]string{"convert"}); code != ExitUsage {
		t.Errorf("run(convert) with no hrefs = %d, want %d", code, ExitUsage)
	}
}

func TestRunUnknownCommandReturnsUsage(t *testing.T) {
	if code := run([]string{"bogus"}); code != ExitUsage {
		t.Errorf("run(bogus) = %d, want %d", code, ExitUsage)
	}
}

func TestRunConvertInvalidEntityReturnsValidationExitCode(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "bad.json")
	outputPath := filepath.Join(dir, "out.json")

	if err := os.WriteFile(inputPath, []byte(`{"type":"Catalog"}`), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	code := run([]string{"convert", "file://" + inputPath, "file://" + outputPath})
	if code != ExitValidation {
		t.Errorf("run(convert) on invalid entity = %d, want %d", code, ExitValidation)
	}
}
