package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed tax_rules_2024.yaml
var defaultTaxRulesYAML []byte

var loadDefaultTaxRules = sync.OnceValues(func() (domain.TaxRules, error) {
	return ParseTaxRules(defaultTaxRulesYAML)
})

// DefaultTaxRules returns the built-in 2024 NYC snapshot.
// The returned tables are shared and must not be modified.
func DefaultTaxRules() domain.TaxRules {
	rules, err := loadDefaultTaxRules()
	if err != nil {
		panic(fmt.Sprintf("embedded tax rules are invalid: %v", err))
	}
	return rules
}

// LoadTaxRules reads and validates a tax rules snapshot from a YAML file
func LoadTaxRules(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read tax rules %s: %w", filename, err)
	}
	rules, err := ParseTaxRules(data)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("tax rules %s: %w", filename, err)
	}
	return rules, nil
}

// ParseTaxRules decodes and validates a YAML tax rules snapshot
func ParseTaxRules(data []byte) (domain.TaxRules, error) {
	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return domain.TaxRules{}, fmt.Errorf("tax rules validation failed: %w", err)
	}
	return rules, nil
}

// ResolveTaxRules loads the snapshot at path, or the built-in one when path is empty
func ResolveTaxRules(path string) (domain.TaxRules, error) {
	if path == "" {
		return DefaultTaxRules(), nil
	}
	return LoadTaxRules(path)
}
