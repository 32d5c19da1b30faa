package configstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/naton1/taskforge/internal/config"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects the serialization of a stored profile.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Profile is one named training configuration: the four sections the training
// pipeline consumes. The ambient tool configuration (logger, paths) is not
// part of a profile.
type Profile struct {
	Agent       config.AgentConfig       `json:"agent" yaml:"agent" mapstructure:"agent"`
	Environment config.EnvironmentConfig `json:"environment" yaml:"environment" mapstructure:"environment"`
	Training    config.TrainingConfig    `json:"training" yaml:"training" mapstructure:"training"`
	Server      config.ServerConfig      `json:"server" yaml:"server" mapstructure:"server"`
}

// DefaultProfile returns a profile populated with the application defaults.
func DefaultProfile() *Profile {
	cfg := config.NewDefaultConfig()
	return &Profile{
		Agent:       cfg.Agent,
		Environment: cfg.Environment,
		Training:    cfg.Training,
		Server:      cfg.Server,
	}
}

// Store keeps named training profiles on disk, JSON or YAML, one file per
// profile, with an in-memory cache of everything touched this session.
//
// Loading never fails from the caller's perspective: a missing or unreadable
// file is logged and degrades to the default profile. Saving does return an
// error, so the surface layer can report write failures to the operator.
type Store struct {
	dir string
	mu  sync.Mutex
	// cache holds profiles by name, populated by Load/Save/Update.
	cache map[string]*Profile
	log   *zap.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return &Store{
		dir:   dir,
		cache: map[string]*Profile{},
		log:   logger.Named("configstore"),
	}, nil
}

// Load reads the named profile in the given format. A missing file writes and
// returns the defaults; a corrupt file is logged and also degrades to the
// defaults. The result is always usable.
func (s *Store) Load(name string, format Format) *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(name, format)
}

func (s *Store) loadLocked(name string, format Format) *Profile {
	path := s.path(name, format)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Warn("Configuration file not found, creating defaults", zap.String("path", path))
		profile := DefaultProfile()
		if saveErr := s.saveLocked(name, profile, format); saveErr != nil {
			s.log.Error("Failed to persist default configuration", zap.String("name", name), zap.Error(saveErr))
		}
		return profile
	}
	if err != nil {
		s.log.Error("Failed to read configuration", zap.String("path", path), zap.Error(err))
		return DefaultProfile()
	}

	var profile Profile
	if format == FormatJSON {
		err = json.Unmarshal(data, &profile)
	} else {
		err = yaml.Unmarshal(data, &profile)
	}
	if err != nil {
		s.log.Error("Failed to parse configuration, using defaults",
			zap.String("path", path), zap.Error(err))
		return DefaultProfile()
	}

	s.cache[name] = &profile
	s.log.Info("Loaded configuration", zap.String("name", name))
	return &profile
}

// Save writes the profile under the given name and caches it.
func (s *Store) Save(name string, profile *Profile, format Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(name, profile, format)
}

func (s *Store) saveLocked(name string, profile *Profile, format Format) error {
	path := s.path(name, format)

	var data []byte
	var err error
	if format == FormatJSON {
		data, err = json.MarshalIndent(profile, "", "  ")
	} else {
		data, err = yaml.Marshal(profile)
	}
	if err != nil {
		return fmt.Errorf("failed to encode configuration %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration %s: %w", name, err)
	}

	s.cache[name] = profile
	s.log.Info("Saved configuration", zap.String("name", name), zap.String("format", string(format)))
	return nil
}

// Get returns a cached profile by name, or nil when the name has not been
// loaded or saved this session.
func (s *Store) Get(name string) *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[name]
}

// Update applies a nested override map onto the named profile and returns the
// re-materialized result. Scalar values overwrite, nested maps merge
// key-by-key recursively. The profile is loaded (or defaulted) on demand.
func (s *Store) Update(name string, overrides map[string]any) *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.cache[name]
	if profile == nil {
		profile = s.loadLocked(name, FormatYAML)
	}

	merged := ToMap(profile)
	MergeMaps(merged, overrides)
	updated, err := FromMap(merged)
	if err != nil {
		s.log.Error("Failed to apply configuration overrides, keeping base",
			zap.String("name", name), zap.Error(err))
		return profile
	}

	s.cache[name] = updated
	s.log.Info("Updated configuration", zap.String("name", name))
	return updated
}

// List returns every known profile name: the session cache plus any profile
// files on disk, deduplicated and sorted.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]struct{}{}
	for name := range s.cache {
		seen[name] = struct{}{}
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("Failed to list configuration directory", zap.String("dir", s.dir), zap.Error(err))
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".json" && ext != ".yaml" {
			continue
		}
		seen[strings.TrimSuffix(entry.Name(), ext)] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete removes a profile from the cache and deletes its files in every
// format. Deleting an unknown name is a no-op.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, name)
	for _, format := range []Format{FormatJSON, FormatYAML} {
		path := s.path(name, format)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Error("Failed to remove configuration file", zap.String("path", path), zap.Error(err))
		}
	}
	s.log.Info("Deleted configuration", zap.String("name", name))
}

func (s *Store) path(name string, format Format) string {
	return filepath.Join(s.dir, name+"."+string(format))
}

// ToMap converts a profile to its nested dict form, the shape override merges
// operate on.
func ToMap(profile *Profile) map[string]any {
	data, err := json.Marshal(profile)
	if err != nil {
		// Profile is a plain struct; this cannot fail at runtime.
		panic(fmt.Sprintf("failed to encode profile: %v", err))
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("failed to decode profile map: %v", err))
	}
	return out
}

// FromMap re-materializes a profile from its nested dict form.
func FromMap(m map[string]any) (*Profile, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config map: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode config map: %w", err)
	}
	return &profile, nil
}

// MergeMaps recursively merges src into dst: nested maps merge key-by-key,
// anything else overwrites.
func MergeMaps(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			MergeMaps(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}
