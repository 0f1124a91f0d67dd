package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// MaxSearchQueryLength is the longest accepted search query, in bytes.
const MaxSearchQueryLength = 100

// Search query errors.
var (
	ErrQueryTooLong     = errors.New("search query too long")
	ErrQueryInvalidChar = errors.New("search query contains invalid characters")
)

// suspiciousPatterns are rejected even though queries are always bound as
// parameters; a query matching one is never a real name or email.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(--|/\*|\*/)`),
	regexp.MustCompile(`(?i)(<script|javascript:|onload=|onerror=)`),
}

// ValidateSearchQuery trims query and rejects it when it is too long or looks
// like an injection attempt. An empty query is valid and means "no filter".
func ValidateSearchQuery(query string) (string, error) {
	if len(query) > MaxSearchQueryLength {
		return "", ErrQueryTooLong
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	for _, char := range query {
		if !isValidSearchChar(char) {
			return "", ErrQueryInvalidChar
		}
	}

	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(query) {
			return "", ErrQueryInvalidChar
		}
	}

	return query, nil
}

// isValidSearchChar reports whether char may appear in a name or email search.
func isValidSearchChar(char rune) bool {
	if unicode.IsLetter(char) || unicode.IsNumber(char) {
		return true
	}
	switch char {
	case ' ', '-', '_', '.', '@', '+', '%', '\'':
		return true
	}
	return false
}

// EscapeLike escapes LIKE metacharacters so query matches literally.
// The escape character is a backslash; callers must use ESCAPE '\'.
func EscapeLike(query string) string {
	if query == "" {
		return ""
	}
	return likeEscaper.Replace(query)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
