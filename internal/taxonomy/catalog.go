package taxonomy

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ItemType is one entry of the item-type legend printed under the
// specification table.
type ItemType struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// catalogFile is the on-disk YAML shape for descriptor overrides.
type catalogFile struct {
	LevelNames map[string]string `yaml:"level_names"`
	ItemTypes  []ItemType        `yaml:"item_types"`
}

// Catalog holds the descriptive names for level codes and the item-type
// legend. Institutions override the defaults with a YAML file.
type Catalog struct {
	levelNames map[string]string
	itemTypes  []ItemType
	mu         sync.RWMutex
}

// NewCatalog creates a catalog from the YAML file at path, or from the
// built-in defaults when path is empty.
func NewCatalog(path string) (*Catalog, error) {
	c := &Catalog{
		levelNames: defaultLevelNames(),
		itemTypes:  defaultItemTypes(),
	}

	if path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, fmt.Errorf("loading taxonomy catalog: %w", err)
		}
	}

	slog.Info("taxonomy catalog ready", "levels", len(c.levelNames), "item_types", len(c.itemTypes))
	return c, nil
}

func (c *Catalog) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for code, name := range file.LevelNames {
		c.levelNames[code] = name
	}
	if len(file.ItemTypes) > 0 {
		c.itemTypes = file.ItemTypes
	}
	return nil
}

// LevelName returns the descriptive name for a level code, e.g. C1 → Remember.
func (c *Catalog) LevelName(code string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.levelNames[code]
	return name, ok
}

// ItemTypes returns the item-type legend in display order.
func (c *Catalog) ItemTypes() []ItemType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ItemType, len(c.itemTypes))
	copy(out, c.itemTypes)
	return out
}

func defaultLevelNames() map[string]string {
	return map[string]string{
		"C1": "Remember",
		"C2": "Understand",
		"C3": "Apply",
		"C4": "Analyse",
		"C5": "Evaluate",
		"C6": "Create",
		"P1": "Perception",
		"P2": "Set",
		"P3": "Guided Response",
		"P4": "Mechanism",
		"P5": "Complex Overt Response",
		"P6": "Adaptation",
		"P7": "Origination",
		"A1": "Receiving",
		"A2": "Responding",
		"A3": "Valuing",
		"A4": "Organisation",
		"A5": "Characterisation",
	}
}

func defaultItemTypes() []ItemType {
	return []ItemType{
		{Symbol: "P", Name: "Padanan (Matching)"},
		{Symbol: "R", Name: "Respons Terhad (Restricted Response)"},
		{Symbol: "A", Name: "Aneka Pilihan (Multiple Choice)"},
		{Symbol: "O", Name: "Objektif (Objective)"},
		{Symbol: "S", Name: "Subjektif (Subjective)"},
	}
}
