package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageURL(t *testing.T) {
	base := "https://example.com/current-affairs/"

	assert.Equal(t, base, PageURL(base, 1))
	assert.Equal(t, "https://example.com/current-affairs/page/2/", PageURL(base, 2))
	assert.Equal(t, "https://example.com/current-affairs/page/3/", PageURL("https://example.com/current-affairs", 3))
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{
			name: "absolute href unchanged",
			base: "https://example.com/list/",
			href: "https://other.com/item/",
			want: "https://other.com/item/",
		},
		{
			name: "relative path resolved",
			base: "https://example.com/list/",
			href: "item-one/",
			want: "https://example.com/list/item-one/",
		},
		{
			name: "root-relative path resolved",
			base: "https://example.com/list/page/2/",
			href: "/item-two/",
			want: "https://example.com/item-two/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(tt.base, tt.href))
		})
	}
}

func TestDateToken(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want time.Time
		ok   bool
	}{
		{
			name: "month name token",
			id:   "https://example.com/daily-quiz-january-2-2024/",
			want: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "numeric full date",
			id:   "https://example.com/2024/03/15/some-article/",
			want: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "numeric year-month only",
			id:   "https://example.com/archive-2024-07/",
			want: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "no token",
			id:   "https://example.com/some-article/",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateToken(tt.id)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSortByDateToken(t *testing.T) {
	ids := []string{
		"https://example.com/quiz-january-10-2024/",
		"https://example.com/quiz-january-2-2024/",
		"https://example.com/quiz-january-5-2024/",
	}

	SortByDateToken(ids)

	assert.Equal(t, []string{
		"https://example.com/quiz-january-2-2024/",
		"https://example.com/quiz-january-5-2024/",
		"https://example.com/quiz-january-10-2024/",
	}, ids)
}

func TestSortByDateTokenKeepsDiscoveryOrderWithoutTokens(t *testing.T) {
	ids := []string{
		"https://example.com/quiz-january-10-2024/",
		"https://example.com/no-date-here/",
		"https://example.com/quiz-january-2-2024/",
	}
	original := append([]string(nil), ids...)

	SortByDateToken(ids)

	assert.Equal(t, original, ids)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "quiz-january-2-2024", Slug("https://example.com/quiz-january-2-2024/"))
	assert.Equal(t, "article", Slug("https://example.com/a/b/article"))
	assert.Equal(t, "", Slug("https://example.com/"))
}
