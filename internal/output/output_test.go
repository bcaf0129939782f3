package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	if err := printer.Success(map[string]any{"message": "done", "count": 2}); err != nil {
		t.Fatalf("Success: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["message"] != "done" {
		t.Errorf("message = %v", got["message"])
	}
}

func TestPrinter_SuccessHumanUsesMessage(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "done", "extra": "hidden"}); err != nil {
		t.Fatalf("Success: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "done" {
		t.Errorf("output = %q, want %q", got, "done")
	}
}

func TestPrinter_ErrorJSONCarriesCode(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewAuthError("login required"))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["error"] != "login required" {
		t.Errorf("error = %v", got["error"])
	}
	if int(got["code"].(float64)) != ExitAuthError {
		t.Errorf("code = %v, want %d", got["code"], ExitAuthError)
	}
}

func TestPrinter_ErrorHumanGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(errors.New("boom"))

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr = %q, want error text", errOut.String())
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"Alias", "ID"}, [][]string{
		{"prompts", "sheet-1"},
		{"inbox", "folder-1"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], "prompts") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestIsTTY_NonFileWriter(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
}
