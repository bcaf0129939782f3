package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDoctorCommand_JSON(t *testing.T) {
	isolateEnv(t)

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"doctor", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}

	if len(result.Candidates) < 4 {
		t.Fatalf("Candidates = %d, want at least 4 search rules", len(result.Candidates))
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Location.Rank <= result.Candidates[i-1].Location.Rank {
			t.Errorf("candidate ranks not ascending: %d then %d",
				result.Candidates[i-1].Location.Rank, result.Candidates[i].Location.Rank)
		}
	}

	if result.Selected != nil {
		t.Errorf("Selected = %+v, want nil with no credential file present", result.Selected)
	}
	if result.ConfigFound {
		t.Error("ConfigFound = true, want false in an empty environment")
	}
	if result.Token.HasToken {
		t.Error("Token.HasToken = true, want false in an empty environment")
	}
	if result.Token.Profile != "default" {
		t.Errorf("Token.Profile = %q, want %q", result.Token.Profile, "default")
	}
}

func TestDoctorCommand_SelectsCredentialFile(t *testing.T) {
	isolateEnv(t)

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "gsheet-mcp")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(path, []byte(`{"installed":{}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"doctor", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var result doctorResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}

	if result.Selected == nil {
		t.Fatal("Selected = nil, want the XDG credential file")
	}
	if result.Selected.Path != path {
		t.Errorf("Selected.Path = %q, want %q", result.Selected.Path, path)
	}
	if result.Selected.Rank != 2 {
		t.Errorf("Selected.Rank = %d, want 2", result.Selected.Rank)
	}
}

func TestDoctorCommand_InvalidProfile(t *testing.T) {
	isolateEnv(t)

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"doctor", "--profile", "../escape"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for a profile containing a path separator")
	}
}
