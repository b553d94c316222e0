// Package security implements the deterministic risk classifier.
//
// Commands are evaluated against an ordered table of regex rules. Severity
// resolves as the maximum over all matches; the surfaced reasons are the
// ones at the resolved tier, in table order, deduplicated by reason text.
package security

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/termgenie/termgenie/internal/domain"
	"github.com/termgenie/termgenie/internal/ports"
)

// Classifier implements the RiskClassifier port. The compiled table is
// immutable after construction; reloading rules means building a new value.
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	re       *regexp.Regexp
	severity domain.RiskLevel
	reason   string
}

// NewClassifier loads the rule table from a YAML file, falling back to the
// built-in table when the file is absent or names no rules.
func NewClassifier(path string) (*Classifier, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return compile(rules)
}

// NewDefaultClassifier builds a classifier from the built-in table only.
func NewDefaultClassifier() *Classifier {
	c, err := compile(defaultRules())
	if err != nil {
		// The built-in table is compiled in tests; this is unreachable with
		// a healthy build.
		panic(err)
	}
	return c
}

func compile(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, domain.WrapError(err, domain.ErrConfig, "invalid risk rule pattern").
				WithDetails(rule.Pattern)
		}
		severity := rule.Severity
		if severity != domain.RiskDangerous {
			severity = domain.RiskWarning
		}
		compiled = append(compiled, compiledRule{
			re:       re,
			severity: severity,
			reason:   rule.Reason,
		})
	}
	return &Classifier{rules: compiled}, nil
}

// Classify implements ports.RiskClassifier. It is total: empty or unmatched
// input yields the safe verdict with no reasons.
func (c *Classifier) Classify(command string) domain.RiskResult {
	if c == nil || strings.TrimSpace(command) == "" {
		return domain.RiskResult{Level: domain.RiskSafe}
	}

	type match struct {
		severity domain.RiskLevel
		reason   string
	}

	level := domain.RiskSafe
	var matches []match
	for _, rule := range c.rules {
		if !rule.re.MatchString(command) {
			continue
		}
		matches = append(matches, match{severity: rule.severity, reason: rule.reason})
		if rule.severity.MoreSevere(level) {
			level = rule.severity
		}
	}

	if level == domain.RiskSafe {
		return domain.RiskResult{Level: domain.RiskSafe}
	}

	// Only reasons at the resolved tier are surfaced; lower-tier matches
	// would dilute the signal.
	seen := make(map[string]bool)
	var reasons []string
	for _, m := range matches {
		if m.severity != level || seen[m.reason] {
			continue
		}
		seen[m.reason] = true
		reasons = append(reasons, m.reason)
	}
	return domain.RiskResult{Level: level, Reasons: reasons}
}

func loadRules(path string) ([]Rule, error) {
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to defaults
		return defaultRules(), nil
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.WrapError(err, domain.ErrConfig, "invalid risk rules file").
			WithDetails(path)
	}
	if len(file.Rules.Patterns) == 0 {
		return defaultRules(), nil
	}
	return file.Rules.Patterns, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(userHomeDir(), ".termgenie", "rules.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Join(userHomeDir(), path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.RiskClassifier = (*Classifier)(nil)
