package matching

import "strings"

// Street-type and region words carry no matching signal and are stripped
// from addresses as whole words before comparison.
var addressStopwords = map[string]bool{
	"street": true, "st": true,
	"avenue": true, "ave": true,
	"road": true, "rd": true,
	"drive": true, "dr": true,
	"lane": true, "ln": true,
	"court": true, "ct": true,
	"boulevard": true, "blvd": true,
	"way": true,
	"circle": true, "cir": true,
	"place": true, "pl": true,
	"county": true,
	"usa":    true,
}

var stateAbbreviations = []string{
	"al", "ak", "az", "ar", "ca", "co", "de", "fl", "ga", "hi",
	"id", "il", "ia", "ks", "ky", "la", "me", "md", "ma", "mi",
	"mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj", "nm", "ny",
	"nc", "nd", "oh", "ok", "or", "pa", "ri", "sc", "sd", "tn",
	"tx", "ut", "vt", "va", "wa", "wv", "wi", "wy", "ct", "in",
}

func init() {
	for _, abbr := range stateAbbreviations {
		addressStopwords[abbr] = true
	}
}

var addressPunctuation = strings.NewReplacer(",", " ", ".", " ", "-", " ", "#", " ")

// NormalizeAddress canonicalizes a free-text address for comparison.
// Empty input normalizes to the empty string, which never matches.
func NormalizeAddress(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return ""
	}

	cleaned := addressPunctuation.Replace(lowered)

	var kept []string
	for _, token := range strings.Fields(cleaned) {
		if addressStopwords[token] {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// Prefix tokens partners prepend to job codes, stripped before comparison.
// Longest prefixes first so "jobid" wins over a bare "job" style token.
var jobCodePrefixes = []string{"jobid", "ap-", "ap"}

// NormalizeJobCode canonicalizes a job code or invoice number identifier.
// Empty input normalizes to the empty string, which never matches.
func NormalizeJobCode(text string) string {
	code := strings.ToLower(strings.TrimSpace(text))

	for _, prefix := range jobCodePrefixes {
		if strings.HasPrefix(code, prefix) {
			code = strings.TrimPrefix(code, prefix)
			code = strings.TrimLeft(code, " -")
		}
	}

	return strings.TrimSpace(code)
}
