package leaderboarddomain

import "strings"

// MaskString replaces the middle of a username.
const MaskString = "*****"

// hiddenNames are placeholders the affiliate API returns for players who opted out of display.
var hiddenNames = map[string]struct{}{
	"hidden":    {},
	"anonymous": {},
	"unknown":   {},
}

// NormalizeUsername is the merge key for a username.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsHiddenUsername reports whether name is empty or an opt-out placeholder.
func IsHiddenUsername(name string) bool {
	n := NormalizeUsername(name)
	if n == "" {
		return true
	}
	_, ok := hiddenNames[n]
	return ok
}

// MaskUsername keeps the first and last two runes of a trimmed name. Names of four runes
// or fewer are returned trimmed but otherwise unchanged.
func MaskUsername(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) <= 4 {
		return string(runes)
	}
	return string(runes[:2]) + MaskString + string(runes[len(runes)-2:])
}
