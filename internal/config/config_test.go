package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingFileYieldsEmptyConfig(t *testing.T) {
	mgr, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mgr.ListSheets("")) != 0 || len(mgr.ListFolders("")) != 0 {
		t.Error("missing file should produce empty alias maps")
	}
}

func TestLoad_ParsesAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `sheets:
  prompts:
    id: sheet-id-1
    profile: work
    description: prompt library
drive_folders:
  inbox:
    id: folder-id-1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	mgr, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sheet, err := mgr.SheetResource("prompts")
	if err != nil {
		t.Fatalf("SheetResource: %v", err)
	}
	if sheet.ID != "sheet-id-1" || sheet.Profile != "work" {
		t.Errorf("sheet = %+v", sheet)
	}

	folder, err := mgr.FolderResource("inbox")
	if err != nil {
		t.Fatalf("FolderResource: %v", err)
	}
	if folder.Profile != DefaultProfile {
		t.Errorf("Profile = %q, want default applied", folder.Profile)
	}
}

func TestSheetResource_UnknownAliasDenied(t *testing.T) {
	mgr, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = mgr.SheetResource("nope")
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("err = %v, want access denied", err)
	}
}

func TestAllowedFolderIDs_FiltersByProfile(t *testing.T) {
	mgr, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mgr.AddFolder("a", Resource{ID: "id-a", Profile: "work"})
	mgr.AddFolder("b", Resource{ID: "id-b"})
	mgr.AddFolder("c", Resource{ID: "id-c", Profile: "work"})

	if got := mgr.AllowedFolderIDs("work"); !reflect.DeepEqual(got, []string{"id-a", "id-c"}) {
		t.Errorf("AllowedFolderIDs(work) = %v", got)
	}
	if got := mgr.AllowedFolderIDs(""); len(got) != 3 {
		t.Errorf("AllowedFolderIDs(\"\") = %v, want all three", got)
	}
	if got := mgr.AllowedFolderIDs("default"); !reflect.DeepEqual(got, []string{"id-b"}) {
		t.Errorf("AllowedFolderIDs(default) = %v", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	mgr, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mgr.AddSheet("prompts", Resource{ID: "sheet-1", Description: "library"})
	if err := mgr.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	sheet, err := reloaded.SheetResource("prompts")
	if err != nil {
		t.Fatalf("SheetResource after reload: %v", err)
	}
	if sheet.ID != "sheet-1" || sheet.Description != "library" {
		t.Errorf("sheet = %+v", sheet)
	}
}

func TestSortedAliases(t *testing.T) {
	resources := map[string]Resource{"b": {}, "a": {}, "c": {}}
	if got := SortedAliases(resources); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("SortedAliases = %v", got)
	}
}
