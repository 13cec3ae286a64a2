package tokens

import (
	"fmt"
	"strconv"

	"github.com/sahilm/fuzzy"
)

// scaleSource adapts a Scale to fuzzy.Source.
type scaleSource []Token

func (s scaleSource) String(i int) string { return s[i].Name }
func (s scaleSource) Len() int            { return len(s) }

// Find resolves a user-supplied token reference to an index. It accepts an
// exact name, a numeric index, a pixel value ("12px", matched exactly), or
// a fuzzy name ("xxl" -> spacingXXL). Duplicate names resolve to the first
// occurrence; use a pixel value to pick one of several "custom" tokens.
func (s Scale) Find(query string) (int, error) {
	if query == "" {
		return -1, fmt.Errorf("%s: empty token reference", s.Name)
	}
	if i := s.IndexOf(query); i >= 0 {
		return i, nil
	}
	if n, err := strconv.Atoi(query); err == nil {
		if n < 0 || n >= s.Len() {
			return -1, fmt.Errorf("%s: index %d out of range [0,%d)", s.Name, n, s.Len())
		}
		return n, nil
	}
	if v, err := ParsePx(query); err == nil {
		for i, t := range s.Tokens {
			if t.Value == v {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%s: no token with value %s", s.Name, Format(v))
	}

	matches := fuzzy.FindFrom(query, scaleSource(s.Tokens))
	if len(matches) == 0 {
		return -1, fmt.Errorf("%s: no token matches %q", s.Name, query)
	}
	return matches[0].Index, nil
}
