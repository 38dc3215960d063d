package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/kentontilford/hfsrb-final/internal/detect"
	"github.com/kentontilford/hfsrb-final/internal/model"
)

// Config holds all runtime configuration for a surveyload run.
type Config struct {
	DSN          string
	DataDir      string
	Year         int
	FacilityType string
	LogFormat    string // "text" or "json"
	RulesFile    string
	DryRun       bool

	// Geocoder settings (see cmd geocode).
	GeocoderUserAgent string
	GeocoderEmail     string
	GeocoderRateMS    int
	GeocoderLimit     int

	Rules DetectorRules
}

// DetectorRules bundles the three column-classification rule sets used by
// every batch. Defaults come from the detect package; a YAML rules file can
// replace category token tables and basis patterns wholesale.
type DetectorRules struct {
	Race      detect.RuleSet
	Ethnicity detect.RuleSet
	Payer     detect.RuleSet
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() DetectorRules {
	return DetectorRules{
		Race:      detect.RaceRules(),
		Ethnicity: detect.EthnicityRules(),
		Payer:     detect.PayerRules(),
	}
}

// yamlRules is the on-disk YAML structure. Every section is optional; an
// absent section keeps the built-in table.
type yamlRules struct {
	Basis          map[string]string `yaml:"basis"`
	Race           []yamlCategory    `yaml:"race"`
	Ethnicity      []yamlCategory    `yaml:"ethnicity"`
	Payer          []yamlCategory    `yaml:"payer"`
	PayerQualifier string            `yaml:"payer_qualifier"`
}

type yamlCategory struct {
	Name   string   `yaml:"name"`
	Tokens []string `yaml:"tokens"`
}

// LoadRulesFromFile reads a YAML rules file and merges it over the defaults.
func (c *Config) LoadRulesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}
	var yr yamlRules
	if err := yaml.Unmarshal(data, &yr); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}

	rules := DefaultRules()

	if len(yr.Basis) > 0 {
		bases, err := compileBases(yr.Basis)
		if err != nil {
			return err
		}
		rules.Race.Bases = bases
		rules.Ethnicity.Bases = bases
		rules.Payer.Bases = bases
	}
	if err := applyCategories(&rules.Race, yr.Race); err != nil {
		return err
	}
	if err := applyCategories(&rules.Ethnicity, yr.Ethnicity); err != nil {
		return err
	}
	if err := applyCategories(&rules.Payer, yr.Payer); err != nil {
		return err
	}
	if yr.PayerQualifier != "" {
		q, err := regexp.Compile("(?i)" + yr.PayerQualifier)
		if err != nil {
			return fmt.Errorf("compile payer_qualifier: %w", err)
		}
		rules.Payer.Qualifier = q
	}

	c.Rules = rules
	return nil
}

func compileBases(raw map[string]string) (map[detect.Basis]*regexp.Regexp, error) {
	out := make(map[detect.Basis]*regexp.Regexp, len(raw))
	for name, expr := range raw {
		switch detect.Basis(name) {
		case detect.Admissions, detect.PatientDays:
		default:
			return nil, fmt.Errorf("unknown basis %q in rules file", name)
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compile basis %q: %w", name, err)
		}
		out[detect.Basis(name)] = re
	}
	// A partial basis map would silently drop a basis from detection.
	if len(out) != len(detect.AllBases) {
		return nil, fmt.Errorf("rules file must define all %d bases", len(detect.AllBases))
	}
	return out, nil
}

func applyCategories(rs *detect.RuleSet, cats []yamlCategory) error {
	if len(cats) == 0 {
		return nil
	}
	replaced := make([]detect.Category, 0, len(cats))
	for _, c := range cats {
		if c.Name == "" || len(c.Tokens) == 0 {
			return fmt.Errorf("rule set %s: every category needs a name and tokens", rs.Name)
		}
		replaced = append(replaced, detect.Category{Name: c.Name, Tokens: c.Tokens})
	}
	rs.Categories = replaced
	return nil
}

// Validate checks required fields for a batch load.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("--data-dir or SURVEY_DATA_DIR is required")
	}
	if c.Year == 0 {
		return fmt.Errorf("--year is required")
	}
	if _, ok := model.ParseFacilityType(c.FacilityType); !ok {
		return fmt.Errorf("unknown facility type %q", c.FacilityType)
	}
	return nil
}

// ValidateWithDSN checks batch fields plus store connectivity config.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
