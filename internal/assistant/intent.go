package assistant

import "strings"

// IsListRequest performs simple heuristics for menu-listing questions, so
// "what's on the menu" never burns a completion call.
func IsListRequest(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	if m == "" {
		return false
	}
	return containsAny(m, []string{
		"list the items", "list items", "list the menu", "list everything",
		"how many items", "how many things", "what items", "what do you have",
		"what do you sell", "what's on the menu", "whats on the menu",
		"show me the menu", "show the menu", "the whole menu", "full menu",
	})
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
