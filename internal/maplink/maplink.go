// Package maplink extracts coordinates from pasted Google Maps URLs.  The
// dashboard lets partners paste a share link instead of typing latitude and
// longitude by hand; when a link matches, the extracted pair overrides any
// manually entered coordinates.
package maplink

import "regexp"

// The two shapes seen in shared map links, tried in this order.  The query
// form ("?q=lat,lng") wins over the path form ("@lat,lng") when both occur.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`q=(-?\d+\.\d+),(-?\d+\.\d+)`),
	regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`),
}

// Extract returns the latitude and longitude embedded in a map URL.  The
// first pattern to match wins.  A URL matching neither pattern returns
// ok=false and callers must leave existing coordinates untouched: a paste
// that cannot be parsed is a silent no-op, not an error.
func Extract(url string) (lat, lng string, ok bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], m[2], true
		}
	}
	return "", "", false
}
