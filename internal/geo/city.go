package geo

import "strings"

// Suffixes stripped from extracted city segments. US-centric on purpose;
// the system operates on one US region at a time.
var stateSuffixes = []string{" NY", " CA", " TX", " State"}

// ExtractCity pulls a normalized city token out of a free-text location
// string like "377 River St, Troy, NY". With two or more comma-separated
// segments the second-to-last is taken as the city; otherwise the whole
// string is returned lowercased. This is a heuristic and will over- or
// under-extract for non-US or single-token addresses.
func ExtractCity(location string) string {
	if location == "" {
		return ""
	}

	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) >= 2 {
		city := parts[len(parts)-2]
		for _, suffix := range stateSuffixes {
			city = strings.ReplaceAll(city, suffix, "")
		}
		return strings.ToLower(strings.TrimSpace(city))
	}

	return strings.ToLower(location)
}

// CitiesMatch reports whether two lowercased city names match exactly or
// one occurs inside the other at word boundaries (start/end of string or a
// space). "troy" matches "downtown troy" but not "troyan". Note "albany"
// matches "new albany"; within a single region that collision is accepted.
func CitiesMatch(a, b string) bool {
	if a == b {
		return true
	}
	return containsWord(b, a) || containsWord(a, b)
}

// containsWord reports whether sub occurs in s bounded by spaces or the
// ends of s. Only the first occurrence is considered.
func containsWord(s, sub string) bool {
	idx := strings.Index(s, sub)
	if idx < 0 {
		return false
	}
	end := idx + len(sub)
	beforeOK := idx == 0 || s[idx-1] == ' '
	afterOK := end == len(s) || s[end] == ' '
	return beforeOK && afterOK
}
