package common

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PageURL builds the URL of the n-th index page. Page 1 is the base URL
// itself; later pages substitute a page-number path segment.
func PageURL(baseURL string, page int) string {
	if page <= 1 {
		return baseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return fmt.Sprintf("%spage/%d/", baseURL, page)
}

// ResolveURL resolves href against base, returning an absolute URL.
// Unresolvable references return an empty string.
func ResolveURL(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// Slug returns the last non-empty path segment of an identifier, for use
// in artifact filenames.
func Slug(id string) string {
	u, err := url.Parse(id)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

var (
	// numeric date tokens: 2024-01-02, 2024/01/02, 2024-01
	numericDateRe = regexp.MustCompile(`(20\d{2})[-/](\d{1,2})(?:[-/](\d{1,2}))?`)
	// month-name tokens: january-2-2024
	namedDateRe = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)[-_](\d{1,2})[-_](20\d{2})`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// DateToken derives a date from an item identifier's URL path. Used for
// chronological ordering; ids without a derivable token keep discovery
// order.
func DateToken(id string) (time.Time, bool) {
	u, err := url.Parse(id)
	if err != nil {
		return time.Time{}, false
	}
	path := u.Path

	if m := namedDateRe.FindStringSubmatch(path); m != nil {
		month := monthsByName[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	if m := numericDateRe.FindStringSubmatch(path); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day := 1
		if m[3] != "" {
			day, _ = strconv.Atoi(m[3])
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// SortByDateToken orders ids ascending by their date tokens. When any id
// lacks a token the slice is left in discovery order.
func SortByDateToken(ids []string) {
	tokens := make(map[string]time.Time, len(ids))
	for _, id := range ids {
		t, ok := DateToken(id)
		if !ok {
			return
		}
		tokens[id] = t
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return tokens[ids[i]].Before(tokens[ids[j]])
	})
}
