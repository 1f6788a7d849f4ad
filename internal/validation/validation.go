package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// ProhibitedUsernames are reserved words that can never be used as a
// username, compared case-insensitively. "me" collides with the
// /users/me endpoint.
var ProhibitedUsernames = []string{"me"}

const UsernameMaxLength = 32

// Username checks the signup/profile username rules: not blacklisted,
// not too long, and only letters, digits and @ . + - _ characters.
// The returned error names the first offending character.
func Username(value string) error {
	if value == "" {
		return fmt.Errorf("username must not be empty")
	}
	if len(value) > UsernameMaxLength {
		return fmt.Errorf("username must be at most %d characters", UsernameMaxLength)
	}
	lower := strings.ToLower(value)
	for _, prohibited := range ProhibitedUsernames {
		if lower == prohibited {
			return fmt.Errorf("username %q is not allowed", value)
		}
	}
	for _, r := range value {
		if !usernameRune(r) {
			return fmt.Errorf("character %q is not allowed in username: "+
				"only letters, digits and @ . + - _ may be used", r)
		}
	}
	return nil
}

func usernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '@' || r == '+' || r == '-':
		return true
	}
	return false
}

// Year rejects release years later than the current calendar year.
func Year(value int) error {
	current := time.Now().Year()
	if value > current {
		return fmt.Errorf("year %d is in the future", value)
	}
	return nil
}

// Slug checks that the value is a well-formed URL slug of at most max
// characters. An empty value is allowed; callers generate one from the
// name instead.
func Slug(value string, max int) error {
	if value == "" {
		return nil
	}
	if len(value) > max {
		return fmt.Errorf("slug must be at most %d characters", max)
	}
	if !slug.IsSlug(value) {
		return fmt.Errorf("slug %q is not URL-safe", value)
	}
	return nil
}

// MakeSlug derives a URL slug from a display name.
func MakeSlug(name string) string {
	return slug.Make(name)
}
