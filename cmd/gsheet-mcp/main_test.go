package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// isolateEnv points every discovery path at temp directories so tests
// never see the developer's real credentials or config.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GSHEET_MCP_CONFIG_HOME", t.TempDir())
	t.Setenv("GSHEET_MCP_CREDENTIALS", "")
	t.Setenv("GSHEET_MCP_VERBOSE", "")
	t.Chdir(t.TempDir())
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "1.2.3") {
		t.Errorf("--version output should contain version: %q", output)
	}
	if !strings.Contains(output, "gsheet-mcp") {
		t.Errorf("--version output should contain 'gsheet-mcp': %q", output)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()

	expectations := []string{
		"gsheet-mcp",
		"Usage:",
		"--json",
		"serve",
		"sheets",
		"drive",
		"auth",
		"doctor",
	}

	for _, expected := range expectations {
		if !strings.Contains(output, expected) {
			t.Errorf("--help output should contain %q: %q", expected, output)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	isolateEnv(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, buf.String())
	}

	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", buf.String())
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", buf.String())
	}
}

func TestRootCommand_JSONFlag_Persistence(t *testing.T) {
	cmd := newRootCmd()

	flag := cmd.PersistentFlags().Lookup("json")
	if flag == nil {
		t.Fatal("--json flag should be a persistent flag")
	}
}

func TestBuildVersion(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})

	version, commit, date = "0.3.0", "none", "unknown"
	if got := buildVersion(); got != "0.3.0" {
		t.Errorf("buildVersion() = %q, want %q", got, "0.3.0")
	}

	version, commit, date = "0.3.0", "abcdef1234567890", "2025-01-01"
	got := buildVersion()
	if !strings.Contains(got, "abcdef1") || strings.Contains(got, "abcdef12") {
		t.Errorf("buildVersion() should shorten commit to 7 chars: %q", got)
	}
}
