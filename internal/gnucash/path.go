package gnucash

import "strings"

// DefaultSeparator separates account path segments in full names.
const DefaultSeparator = ":"

// AccountPath is an account's name segments, top-level account first.
type AccountPath []string

// ParsePath splits s on sep. Empty segments are dropped.
func ParsePath(s, sep string) AccountPath {
	if sep == "" {
		sep = DefaultSeparator
	}
	var p AccountPath
	for _, seg := range strings.Split(s, sep) {
		if seg = strings.TrimSpace(seg); seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// ParseRequestPath parses an account named by the user. Segments may be
// separated by "." as well as by sep, so "Assets.Checking" and
// "Assets:Checking" name the same account.
func ParseRequestPath(s, sep string) AccountPath {
	if sep == "" {
		sep = DefaultSeparator
	}
	return ParsePath(strings.ReplaceAll(s, ".", sep), sep)
}

// Len returns the number of segments.
func (p AccountPath) Len() int { return len(p) }

// Segment returns the i-th segment.
func (p AccountPath) Segment(i int) (string, error) {
	if i < 0 || i >= len(p) {
		return "", &PathTooShortError{Path: p, Index: i}
	}
	return p[i], nil
}

// Last returns the leaf segment.
func (p AccountPath) Last() (string, error) {
	return p.Segment(len(p) - 1)
}

// Join returns the segments joined with sep.
func (p AccountPath) Join(sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Join(p, sep)
}

func (p AccountPath) String() string {
	return p.Join(DefaultSeparator)
}
