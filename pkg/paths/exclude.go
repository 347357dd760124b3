package paths

import (
	"path"
	"strings"
)

type patternKind int

const (
	// matches any single segment
	kindSegment patternKind = iota
	// matches the whole path
	kindWhole
	// prefix/**/suffix
	kindDeep
)

type pattern struct {
	kind   patternKind
	glob   string
	prefix string
	suffix string
}

// Matcher tests logical paths against gitignore-flavoured patterns:
// a bare name matches any segment, a pattern with a slash matches the
// whole path, and ** spans any number of segments.
type Matcher struct {
	patterns []pattern
}

func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, raw := range patterns {
		raw = strings.TrimSuffix(raw, "/")
		if raw == "" {
			continue
		}
		m.patterns = append(m.patterns, compile(raw))
	}
	return m
}

func compile(raw string) pattern {
	if before, after, ok := strings.Cut(raw, "**"); ok &&
		!strings.Contains(after, "**") {
		return pattern{
			kind:   kindDeep,
			prefix: strings.TrimSuffix(before, "/"),
			suffix: strings.TrimPrefix(after, "/"),
		}
	}
	if strings.Contains(raw, "/") {
		return pattern{kind: kindWhole, glob: raw}
	}
	return pattern{kind: kindSegment, glob: raw}
}

func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

func (m *Matcher) Match(p string) bool {
	if m.Empty() {
		return false
	}
	for _, pat := range m.patterns {
		if pat.match(p) {
			return true
		}
	}
	return false
}

func (pat pattern) match(p string) bool {
	switch pat.kind {
	case kindSegment:
		for _, seg := range strings.Split(p, "/") {
			if ok, _ := path.Match(pat.glob, seg); ok {
				return true
			}
		}
		return false
	case kindWhole:
		ok, _ := path.Match(pat.glob, p)
		return ok
	}

	rest := p
	if pat.prefix != "" {
		if p == pat.prefix {
			return pat.suffix == ""
		}
		if !strings.HasPrefix(p, pat.prefix+"/") {
			return false
		}
		rest = strings.TrimPrefix(p, pat.prefix+"/")
	}
	if pat.suffix == "" {
		return true
	}
	segs := strings.Split(rest, "/")
	for i := range segs {
		tail := strings.Join(segs[i:], "/")
		if ok, _ := path.Match(pat.suffix, tail); ok {
			return true
		}
	}
	return false
}
