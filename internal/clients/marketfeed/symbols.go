package marketfeed

import (
	"strings"
)

// SymbolFormatter converts a human-entered ticker into the provider's
// expected format. Exchange suffix handling is a pluggable strategy, not
// per-market logic baked into the client.
type SymbolFormatter func(symbol string) string

// PassthroughFormatter sends symbols to the provider unchanged.
func PassthroughFormatter(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewSuffixFormatter builds a formatter that appends the default
// exchange suffix to bare tickers ("BHP" -> "BHP.AU") and maps known
// exchange aliases to provider suffixes ("BHP.ASX" -> "BHP.AU").
func NewSuffixFormatter(defaultExchange string, aliases map[string]string) SymbolFormatter {
	return func(symbol string) string {
		s := strings.ToUpper(strings.TrimSpace(symbol))
		if s == "" {
			return s
		}

		if i := strings.LastIndex(s, "."); i >= 0 {
			code, suffix := s[:i], s[i+1:]
			if mapped, ok := aliases[suffix]; ok {
				return code + "." + mapped
			}
			return s
		}

		if defaultExchange == "" {
			return s
		}
		return s + "." + defaultExchange
	}
}
