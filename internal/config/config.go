package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name under Dir().
const FileName = "config.yaml"

// DefaultProfile is the credential profile used when a resource omits one.
const DefaultProfile = "default"

// Resource maps an alias to a Google resource ID and the credential
// profile used to access it.
type Resource struct {
	ID          string `yaml:"id" json:"id"`
	Profile     string `yaml:"profile,omitempty" json:"profile"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Config is the on-disk configuration: alias maps for spreadsheets and
// Drive folders. Aliases are the only way tools name resources, so an
// agent can never reach an unconfigured spreadsheet or folder.
type Config struct {
	Sheets       map[string]Resource `yaml:"sheets"`
	DriveFolders map[string]Resource `yaml:"drive_folders"`
}

// Manager loads, queries, and saves the configuration file.
type Manager struct {
	path string
	cfg  Config
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields an empty configuration, not an error.
func Load(path string) (*Manager, error) {
	if path == "" {
		path = filepath.Join(Dir(), FileName)
	}

	mgr := &Manager{path: path, cfg: emptyConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return mgr, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &mgr.cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if mgr.cfg.Sheets == nil {
		mgr.cfg.Sheets = map[string]Resource{}
	}
	if mgr.cfg.DriveFolders == nil {
		mgr.cfg.DriveFolders = map[string]Resource{}
	}
	return mgr, nil
}

func emptyConfig() Config {
	return Config{
		Sheets:       map[string]Resource{},
		DriveFolders: map[string]Resource{},
	}
}

// Path returns the config file path backing this manager.
func (m *Manager) Path() string {
	return m.path
}

// Save writes the configuration back to disk, creating parent directories.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(m.cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", m.path, err)
	}
	return nil
}

// SheetResource looks up a spreadsheet alias.
func (m *Manager) SheetResource(alias string) (Resource, error) {
	res, ok := m.cfg.Sheets[alias]
	if !ok {
		return Resource{}, fmt.Errorf("access denied: sheet alias %q not found in configuration", alias)
	}
	return withDefaultProfile(res), nil
}

// FolderResource looks up a Drive folder alias.
func (m *Manager) FolderResource(alias string) (Resource, error) {
	res, ok := m.cfg.DriveFolders[alias]
	if !ok {
		return Resource{}, fmt.Errorf("access denied: folder alias %q not found in configuration", alias)
	}
	return withDefaultProfile(res), nil
}

// AllowedFolderIDs returns the folder IDs configured for a profile, or all
// folder IDs when profile is empty. This list bounds every Drive operation.
func (m *Manager) AllowedFolderIDs(profile string) []string {
	ids := make([]string, 0, len(m.cfg.DriveFolders))
	for _, res := range m.cfg.DriveFolders {
		if profile == "" || withDefaultProfile(res).Profile == profile {
			ids = append(ids, res.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// AddSheet registers or replaces a spreadsheet alias.
func (m *Manager) AddSheet(alias string, res Resource) {
	m.cfg.Sheets[alias] = res
}

// AddFolder registers or replaces a Drive folder alias.
func (m *Manager) AddFolder(alias string, res Resource) {
	m.cfg.DriveFolders[alias] = res
}

// ListSheets returns sheet aliases for a profile in sorted order, or all
// when profile is empty.
func (m *Manager) ListSheets(profile string) map[string]Resource {
	return filterByProfile(m.cfg.Sheets, profile)
}

// ListFolders returns folder aliases for a profile in sorted order, or all
// when profile is empty.
func (m *Manager) ListFolders(profile string) map[string]Resource {
	return filterByProfile(m.cfg.DriveFolders, profile)
}

// SortedAliases returns the keys of a resource map in sorted order.
func SortedAliases(resources map[string]Resource) []string {
	aliases := make([]string, 0, len(resources))
	for alias := range resources {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func filterByProfile(resources map[string]Resource, profile string) map[string]Resource {
	out := make(map[string]Resource, len(resources))
	for alias, res := range resources {
		res = withDefaultProfile(res)
		if profile == "" || res.Profile == profile {
			out[alias] = res
		}
	}
	return out
}

func withDefaultProfile(res Resource) Resource {
	if res.Profile == "" {
		res.Profile = DefaultProfile
	}
	return res
}
