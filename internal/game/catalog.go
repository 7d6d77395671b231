package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	MinCatalogChoices = 3
	MaxCatalogChoices = 12
)

// ErrEmptyCatalog - конфигурационная ошибка, фатальная на старте.
var ErrEmptyCatalog = errors.New("scenario catalog is empty")

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog - фиксированный упорядоченный список сценариев. После создания
// не изменяется и безопасен для конкурентного чтения.
type Catalog struct {
	scenarios []Scenario
}

type catalogFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// NewCatalog проверяет сценарии и собирает каталог.
func NewCatalog(scenarios []Scenario) (*Catalog, error) {
	if len(scenarios) == 0 {
		return nil, ErrEmptyCatalog
	}
	owned := make([]Scenario, 0, len(scenarios))
	for i, sc := range scenarios {
		if err := validateCatalogScenario(sc); err != nil {
			return nil, fmt.Errorf("scenario #%d (%q): %w", i+1, sc.ID, err)
		}
		owned = append(owned, sc.Clone())
	}
	return &Catalog{scenarios: owned}, nil
}

// LoadCatalog разбирает YAML-документ с ключом scenarios.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(file.Scenarios)
}

// LoadCatalogFile читает каталог с диска.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return LoadCatalog(data)
}

// DefaultCatalog возвращает встроенный каталог.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
}

// Len - количество сценариев.
func (c *Catalog) Len() int {
	return len(c.scenarios)
}

// Scenarios возвращает копию всех сценариев.
func (c *Catalog) Scenarios() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	for i, sc := range c.scenarios {
		out[i] = sc.Clone()
	}
	return out
}

func validateCatalogScenario(sc Scenario) error {
	if sc.Situation == "" {
		return errors.New("situation is empty")
	}
	if n := len(sc.Choices); n < MinCatalogChoices || n > MaxCatalogChoices {
		return fmt.Errorf("expected %d-%d choices, got %d", MinCatalogChoices, MaxCatalogChoices, n)
	}
	seen := make(map[string]struct{}, len(sc.Choices))
	for _, ch := range sc.Choices {
		if ch.ID == "" || ch.Label == "" {
			return errors.New("choice id and label must be set")
		}
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("duplicate choice id %q", ch.ID)
		}
		seen[ch.ID] = struct{}{}
	}
	return nil
}
