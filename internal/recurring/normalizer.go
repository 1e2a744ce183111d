package recurring

import (
	"strings"
	"unicode"
)

// MerchantKey produces the stable grouping key for a raw merchant
// label: lowercased, punctuation stripped, whitespace collapsed, with
// the card-descriptor noise tokens "www" and "com" trimmed from the
// ends so "Netflix" and "NETFLIX.COM" land in the same group.
//
// An empty result means the transaction cannot be grouped meaningfully
// and is excluded from detection. The function is total: it never
// errors for any input string.
func MerchantKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			// punctuation and whitespace both act as separators
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 0 && tokens[0] == "www" {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1] == "com" {
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, " ")
}
