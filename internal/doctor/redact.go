package doctor

import "strings"

// SecretKeyPatterns contains substrings that indicate a key likely contains
// sensitive data. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
}

// TokenPrefixes contains known GitHub API token prefixes that indicate
// sensitive values regardless of key name.
var TokenPrefixes = []string{
	"ghp_", // personal access token
	"gho_", // OAuth token
	"ghu_", // user-to-server token
	"ghs_", // server-to-server token
	"ghr_", // refresh token
	"github_pat_",
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(v string) string {
	if len(v) <= 4 {
		return "********"
	}
	return "****" + v[len(v)-4:]
}

// ShouldMask reports whether the key name suggests a sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether the value starts with a known token prefix.
func ContainsTokenPrefix(v string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}
