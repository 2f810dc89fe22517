// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming derives a display title and a canonical date from a note's
// raw title and creation timestamp. Everything here is pure string and time
// manipulation; nothing touches the filesystem.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/enex-convert/pkg/types"
)

const (
	// DateLayout is the canonical date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// TimestampLayout is the ENEX timestamp format, always UTC.
	TimestampLayout = "20060102T150405Z"
)

// titleDatePattern matches day.month.year tokens such as 3.4.2022 or 03.04.2022.
var titleDatePattern = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)

// unsafeChars are replaced by a space when cleaning a title.
var unsafeChars = strings.NewReplacer(
	"-", " ", "_", " ", ",", " ",
	"<", " ", ">", " ", ":", " ", `"`, " ",
	"/", " ", `\`, " ", "|", " ", "?", " ", "*", " ",
)

// Normalized is the result of normalizing a note: the cleaned title and
// the canonical date used for its destination.
type Normalized struct {
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date" yaml:"date"`

	// FromTitle reports whether Date came from a token in the title rather
	// than the created timestamp.
	FromTitle bool `json:"from_title" yaml:"from_title"`
}

// Year returns the YYYY part of the canonical date.
func (n Normalized) Year() string { return n.Date[:4] }

// Month returns the MM part of the canonical date.
func (n Normalized) Month() string { return n.Date[5:7] }

// Normalize cleans title and resolves the note date. A valid date token in
// the title wins over created; otherwise created is parsed as an ENEX UTC
// timestamp. An error is returned only when no token is present and created
// does not parse.
func Normalize(title, created string) (Normalized, error) {
	info := ExtractTitleDate(title)
	if info.Date != "" {
		date, err := CanonicalDate(info.Date)
		if err == nil {
			return Normalized{Title: info.Title, Date: date, FromTitle: true}, nil
		}
	}

	date, err := CreatedDate(created)
	if err != nil {
		return Normalized{}, err
	}
	return Normalized{Title: info.Title, Date: date}, nil
}

// ExtractTitleDate finds the first day.month.year token in title that forms
// a real calendar date, removes it, and cleans the remainder. Tokens such as
// 31.02.2022 are left in place and not reported.
func ExtractTitleDate(title string) types.ExtractedInfo {
	for _, loc := range titleDatePattern.FindAllStringIndex(title, -1) {
		token := title[loc[0]:loc[1]]
		if _, err := CanonicalDate(token); err != nil {
			continue
		}
		return types.ExtractedInfo{
			Title: CleanTitle(title[:loc[0]] + " " + title[loc[1]:]),
			Date:  token,
		}
	}
	return types.ExtractedInfo{Title: CleanTitle(title)}
}

// CleanTitle replaces filesystem-unsafe and separator characters with a
// space, collapses whitespace runs, and trims the result.
func CleanTitle(title string) string {
	return strings.Join(strings.Fields(unsafeChars.Replace(title)), " ")
}

// CanonicalDate converts a D.M.YYYY or DD.MM.YYYY token to YYYY-MM-DD.
func CanonicalDate(token string) (string, error) {
	m := titleDatePattern.FindStringSubmatch(token)
	if m == nil || m[0] != token {
		return "", fmt.Errorf("not a day.month.year date: %q", token)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return "", fmt.Errorf("invalid calendar date: %q", token)
	}
	return t.Format(DateLayout), nil
}

// CreatedDate parses an ENEX timestamp (YYYYMMDDTHHMMSSZ) and returns its
// UTC calendar date as YYYY-MM-DD.
func CreatedDate(created string) (string, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(created))
	if err != nil {
		return "", fmt.Errorf("parsing created timestamp %q: %w", created, err)
	}
	return t.UTC().Format(DateLayout), nil
}
