package html

import "strings"

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, "camgen-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func joinClasses(classes ...string) string {
	seen := make(map[string]struct{}, len(classes))
	keep := make([]string, 0, len(classes))
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, exists := seen[token]; exists {
				continue
			}
			seen[token] = struct{}{}
			keep = append(keep, token)
		}
	}
	return strings.Join(keep, " ")
}

func chromeClass(override, fallback string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	return fallback
}
