package security

import "regexp"

// Deny-list heuristics for obviously hostile input. These are a last-resort
// filter layered over parameterized queries and template escaping, not a
// replacement for either.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<\s*script\b`),
	regexp.MustCompile(`(?is)<\s*iframe\b`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?is)<\s*object\b`),
	regexp.MustCompile(`(?is)<\s*embed\b`),
}

var sqliPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union\s+(all\s+)?select|insert\s+into|delete\s+from|drop\s+table|truncate\s+table|update\s+\w+\s+set)\b`),
	regexp.MustCompile(`(?i)\b(exec|execute)\s*\(`),
	regexp.MustCompile(`--\s`),
	regexp.MustCompile(`/\*.*\*/`),
	regexp.MustCompile(`(?i)\bor\s+['"]?\d+['"]?\s*=\s*['"]?\d+`),
	regexp.MustCompile(`(?i)\band\s+['"]?\d+['"]?\s*=\s*['"]?\d+`),
	regexp.MustCompile(`(?i);\s*(select|insert|update|delete|drop)\b`),
}

// ContainsXSS reports whether input matches a known script-injection pattern.
func ContainsXSS(input string) bool {
	for _, re := range xssPatterns {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}

// ContainsSQLi reports whether input matches a known SQL-injection pattern.
func ContainsSQLi(input string) bool {
	for _, re := range sqliPatterns {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}

// IsSuspicious reports whether input trips any injection heuristic.
func IsSuspicious(input string) bool {
	return ContainsXSS(input) || ContainsSQLi(input)
}
