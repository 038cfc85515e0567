package crs

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of an injectable rule table.
type ruleFile struct {
	Rules            []Rule `yaml:"rules"`
	FallbackCategory *int   `yaml:"fallback_category"`
}

// LoadRules reads a YAML rule table and returns a validated Classifier.
//
// File shape:
//
//	rules:
//	  - min_gap: 0.5
//	    min_r: 5
//	    category: 0
//	fallback_category: 3
func LoadRules(path string) (*Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "crs: read rules file")
	}

	var rf ruleFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, eris.Wrap(err, "crs: parse rules file")
	}

	fallback := Fallback
	if rf.FallbackCategory != nil {
		fallback = *rf.FallbackCategory
	}
	return New(rf.Rules, fallback)
}

func validationError(errs []string) error {
	return eris.Errorf("crs: rule validation failed: %s", strings.Join(errs, "; "))
}
