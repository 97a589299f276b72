package injection

import "regexp"

// Rule defines a prompt injection detection pattern.
type Rule struct {
	Name     string
	Regex    *regexp.Regexp
	Severity float64 // 0.0 to 1.0
	Category string  // "instruction_bypass", "role_override", "envelope_tamper", "output_steering"
}

// DefaultRules returns the built-in rules. Source code is full of words like
// "system" and "mode", so rules anchor on whole phrases rather than keywords.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "ignore_previous",
			Regex:    regexp.MustCompile(`(?i)ignore\s+(all\s+)?(the\s+)?previous\s+instructions`),
			Severity: 0.95,
			Category: "instruction_bypass",
		},
		{
			Name:     "disregard_prior",
			Regex:    regexp.MustCompile(`(?i)disregard\s+(all\s+)?(the\s+)?(prior|above)\s+(instructions|context|rules)`),
			Severity: 0.95,
			Category: "instruction_bypass",
		},
		{
			Name:     "new_instructions",
			Regex:    regexp.MustCompile(`(?i)(new|updated|revised)\s+instructions?\s*:`),
			Severity: 0.8,
			Category: "instruction_bypass",
		},
		{
			Name:     "you_are_now",
			Regex:    regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|the)\s+`),
			Severity: 0.7,
			Category: "role_override",
		},
		{
			Name:     "code_block_system",
			Regex:    regexp.MustCompile("(?i)```system"),
			Severity: 0.9,
			Category: "role_override",
		},
		{
			Name:     "envelope_tag",
			Regex:    regexp.MustCompile(`(?i)</?\s*(TypeScriptCode|Summary)\s*>`),
			Severity: 0.75,
			Category: "envelope_tamper",
		},
		{
			Name:     "response_prefix",
			Regex:    regexp.MustCompile(`(?i)respond\s+with\s*:\s*(sure|absolutely|of course)`),
			Severity: 0.75,
			Category: "output_steering",
		},
	}
}
