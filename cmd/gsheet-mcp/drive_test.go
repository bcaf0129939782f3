package main

import (
	"strings"
	"testing"
)

func TestNewDriveCmd_Subcommands(t *testing.T) {
	cmd := newDriveCmd()

	want := []string{"ls", "ls-all", "upload", "get", "rm"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("drive command missing subcommand %q", name)
		}
	}
}

func TestDriveLs_UnknownAlias(t *testing.T) {
	isolateEnv(t)

	out, err := runCommand(t, "drive", "ls", "nope", "--json")
	if err == nil {
		t.Fatal("expected error for unconfigured alias")
	}
	if !strings.Contains(out, "access denied") {
		t.Errorf("output should report the denied alias: %q", out)
	}
}

func TestDriveLsAll_NoCredentials(t *testing.T) {
	isolateEnv(t)

	_, err := runCommand(t, "drive", "ls-all", "--json")
	if err == nil {
		t.Fatal("expected error without cached credentials")
	}
}
