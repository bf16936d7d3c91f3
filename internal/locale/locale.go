package locale

import "strings"

// Locale is a supported language code. The set is closed: content and URL
// handling only ever deal with members of Supported().
type Locale string

const (
	English    Locale = "en"
	Vietnamese Locale = "vi"
	Japanese   Locale = "ja"
)

// Default is the locale every unrecognized or missing input resolves to.
const Default = English

var supported = []Locale{English, Vietnamese, Japanese}

// Supported returns the closed set of locales, default first.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Codes returns the supported locale codes as plain strings.
func Codes() []string {
	out := make([]string, len(supported))
	for i, l := range supported {
		out[i] = string(l)
	}
	return out
}

// IsSupported reports whether code names a member of the supported set.
func IsSupported(code string) bool {
	normalized := normalize(code)
	for _, l := range supported {
		if string(l) == normalized {
			return true
		}
	}
	return false
}

// Resolve maps an arbitrary code onto the supported set. Unrecognized or
// empty input resolves to Default; Resolve never errors.
func Resolve(code string) Locale {
	normalized := normalize(code)
	for _, l := range supported {
		if string(l) == normalized {
			return l
		}
	}
	return Default
}

// ResolvePath derives the active locale from a request path. The first path
// segment selects the locale when it names a supported code; every other
// shape of path resolves to Default. Pure function of the path string.
func ResolvePath(path string) Locale {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return Default
	}
	segment := trimmed
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		segment = trimmed[:idx]
	}
	return Resolve(segment)
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
