package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into [a-z0-9-], strips diacritics, collapses
// hyphens and enforces maxLen (100 when <= 0). Empty input yields "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// EnsureUniqueSlug returns baseSlug or baseSlug-N so that no other row in
// table has it in slugCol (case-insensitive). excludeID skips the row being
// updated, matched on idCol.
func EnsureUniqueSlug(
	ctx context.Context,
	db *gorm.DB,
	table, slugCol, idCol string,
	baseSlug string,
	excludeID any,
	maxLen int,
) (string, error) {
	if maxLen <= 0 {
		maxLen = 100
	}
	slug := baseSlug

	for i := 0; i < 25; i++ {
		q := db.WithContext(ctx).Table(table).Where(fmt.Sprintf("LOWER(%s) = ?", slugCol), strings.ToLower(slug))
		if excludeID != nil {
			q = q.Where(fmt.Sprintf("%s <> ?", idCol), excludeID)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		suffix := fmt.Sprintf("-%d", i+2)
		slug = trimForSuffix(baseSlug, suffix, maxLen) + suffix
	}

	r := fmt.Sprintf("-%x", time.Now().UnixNano()&0xffff)
	return trimForSuffix(baseSlug, r, maxLen) + r, nil
}

func trimForSuffix(base, suffix string, maxLen int) string {
	keep := maxLen - len(suffix)
	if keep < 1 {
		return "x"
	}
	rs := []rune(base)
	if len(rs) > keep {
		rs = rs[:keep]
	}
	out := strings.Trim(string(rs), "-")
	if out == "" {
		return "x"
	}
	return out
}
