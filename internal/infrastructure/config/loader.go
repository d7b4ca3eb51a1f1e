package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Character *CharacterConfig
	Stage     *StageConfig
}

// StageDecoder reads a stage file in a format the loader does not know natively
type StageDecoder func(fsys fs.FS, name string) (*StageConfig, error)

// Loader loads configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
	decoders map[string]StageDecoder
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return NewFSLoader(os.DirFS(basePath), basePath)
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
		decoders: make(map[string]StageDecoder),
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// RegisterStageFormat adds a stage decoder for a file extension such as ".tmx"
func (l *Loader) RegisterStageFormat(ext string, dec StageDecoder) {
	l.decoders[strings.ToLower(ext)] = dec
}

// LoadCharacter loads character.json, character.yaml or character.yml.
// Missing fields keep their DefaultCharacterConfig values.
func (l *Loader) LoadCharacter() (*CharacterConfig, error) {
	name, data, err := l.readFirst("character.json", "character.yaml", "character.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to read character config: %w", err)
	}

	cfg := DefaultCharacterConfig()
	if err := decode(name, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}

// LoadStage loads stages/<name> with any supported extension
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	base := path.Join("stages", name)

	candidates := []string{base + ".json", base + ".yaml", base + ".yml"}
	for ext := range l.decoders {
		candidates = append(candidates, base+ext)
	}

	file, data, err := l.readFirst(candidates...)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg *StageConfig
	if dec, ok := l.decoders[strings.ToLower(path.Ext(file))]; ok {
		cfg, err = dec(l.fsys, file)
	} else {
		cfg = &StageConfig{}
		err = decode(file, data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	if cfg.Name == "" {
		cfg.Name = name
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stage %s: %w", name, err)
	}

	return cfg, nil
}

// LoadAll loads the character config and the named stage
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	character, err := l.LoadCharacter()
	if err != nil {
		return nil, err
	}

	st, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Character: character,
		Stage:     st,
	}, nil
}

// readFirst returns the first of names that exists
func (l *Loader) readFirst(names ...string) (string, []byte, error) {
	for _, name := range names {
		data, err := fs.ReadFile(l.fsys, name)
		if err == nil {
			return name, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("none of %s: %w", strings.Join(names, ", "), fs.ErrNotExist)
}

// decode unmarshals JSON or YAML depending on the file extension
func decode(name string, data []byte, v any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}
