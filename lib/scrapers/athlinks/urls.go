package athlinks

import (
	"regexp"
	"strings"
)

var (
	specificEventRegex = regexp.MustCompile(`Event/(\d+)`)
	looseEventRegex    = regexp.MustCompile(`(?i)event/(\d+)`)
	masterEventRegex   = regexp.MustCompile(`(?i)athlinks\.com/event/(\d+)`)
)

// ResolveEventID pulls a specific (single-year) event id out of an athlinks
// URL. The capitalized "Event/{id}" path segment always names a specific
// event. The lowercase "event/{id}" segment normally carries a master id
// instead, so it only counts when the URL looks like a results page.
func ResolveEventID(url string) (string, bool) {
	if m := specificEventRegex.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if strings.Contains(strings.ToLower(url), "results") {
		if m := looseEventRegex.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ResolveMasterID pulls a master (recurring series) event id out of an
// athlinks URL of the form athlinks.com/event/{id}.
func ResolveMasterID(url string) (string, bool) {
	if m := masterEventRegex.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}
