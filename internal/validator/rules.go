package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateData applies a declarative rule set to a field map and returns the
// first violated rule's message per field. Supported rules: required, email,
// min:<n>, max:<n>, min_length:<n>, max_length:<n>, in:<a,b,c>. Rules are
// separated by '|'.
func ValidateData(data map[string]string, rules map[string]string) map[string]string {
	violations := make(map[string]string)
	for field, ruleSpec := range rules {
		value := strings.TrimSpace(data[field])
		for _, rule := range strings.Split(ruleSpec, "|") {
			if msg := applyRule(field, value, rule); msg != "" {
				violations[field] = msg
				break
			}
		}
	}
	return violations
}

func applyRule(field, value, rule string) string {
	name, arg := rule, ""
	if i := strings.IndexByte(rule, ':'); i >= 0 {
		name, arg = rule[:i], rule[i+1:]
	}

	// only "required" fires on empty values
	if value == "" && name != "required" {
		return ""
	}

	switch name {
	case "required":
		if value == "" {
			return fmt.Sprintf("%s is required.", fieldLabel(field))
		}
	case "email":
		if err := ValidateEmail(value); err != nil {
			return err.Error()
		}
	case "min":
		limit, _ := strconv.ParseFloat(arg, 64)
		if val, err := strconv.ParseFloat(value, 64); err != nil || val < limit {
			return fmt.Sprintf("%s must be at least %s.", fieldLabel(field), arg)
		}
	case "max":
		limit, _ := strconv.ParseFloat(arg, 64)
		if val, err := strconv.ParseFloat(value, 64); err != nil || val > limit {
			return fmt.Sprintf("%s must be at most %s.", fieldLabel(field), arg)
		}
	case "min_length":
		limit, _ := strconv.Atoi(arg)
		if len(value) < limit {
			return fmt.Sprintf("%s must be at least %d characters.", fieldLabel(field), limit)
		}
	case "max_length":
		limit, _ := strconv.Atoi(arg)
		if len(value) > limit {
			return fmt.Sprintf("%s must be at most %d characters.", fieldLabel(field), limit)
		}
	case "in":
		if !OneOf(value, strings.Split(arg, ",")...) {
			return fmt.Sprintf("%s has an invalid value.", fieldLabel(field))
		}
	}
	return ""
}

func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
