package ignore

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/fs"
)

// Matcher decides which working tree paths are never tracked.
type Matcher struct {
	static  map[string]bool
	pattern []string
}

// New returns a matcher holding the default ignores plus patterns.
func New(patterns ...string) *Matcher {
	m := &Matcher{static: make(map[string]bool)}

	// Default ignored files
	for _, s := range config.DefaultIgnoredFiles {
		m.static[filepath.ToSlash(filepath.Clean(s))] = true
	}

	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		// "dir/" ignores the directory and everything below it
		if strings.HasSuffix(p, "/") {
			p = strings.TrimSuffix(p, "/") + "/**"
		}
		m.pattern = append(m.pattern, p)
	}
	return m
}

// Load reads patterns from an ignore file. A missing file yields the
// default matcher.
func Load(fsys fs.FS, path string) (*Matcher, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if fsys.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}

	var patterns []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		patterns = append(patterns, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(patterns...), nil
}

// Match returns true if the path should be ignored
func (m *Matcher) Match(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))

	// static exact match, also on the first segment so that
	// everything under .wit is covered
	if m.static[clean] {
		return true
	}
	if first, _, ok := strings.Cut(clean, "/"); ok && m.static[first] {
		return true
	}

	// pattern match
	for _, pat := range m.pattern {
		if matchPattern(pat, clean) {
			return true
		}
	}

	return false
}

// Skip adapts the matcher to fs.SkipFunc.
func (m *Matcher) Skip(rel string, _ bool) bool {
	return m.Match(rel)
}

// matchPattern handles *, ?, and ** like Git
func matchPattern(pattern, path string) bool {
	pattern = filepath.ToSlash(pattern)
	return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
}

// matchSegments matches pattern segments recursively
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return true // trailing ** matches anything
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := filepath.Match(p, parts[0])
		if !ok {
			return false
		}

		parts = parts[1:]
	}

	return len(parts) == 0
}
