package jobpress

import "strings"

// TitleKeyMaxLen bounds the normalized title key. The key is a
// comparison form, not display text; truncation keeps store search
// queries short while leaving enough prefix for containment checks.
const TitleKeyMaxLen = 80

// NormalizeTitleKey converts a display title into its dedup key:
// case-folded, whitespace-collapsed, and truncated to TitleKeyMaxLen
// runes. Two titles are considered the same logical item when either
// key contains the other.
func NormalizeTitleKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	key = strings.Join(strings.Fields(key), " ")

	runes := []rune(key)
	if len(runes) > TitleKeyMaxLen {
		key = strings.TrimSpace(string(runes[:TitleKeyMaxLen]))
	}
	return key
}
