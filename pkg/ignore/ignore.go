// Package ignore matches document names against gitignore-style exclude
// patterns loaded from a .promptignore file or given on the command line.
package ignore

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern is one compiled exclude line.
type Pattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Set when the line starts with '!'.
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
}

// Matcher is an ordered list of exclude patterns. The last matching pattern
// decides, so a later negation re-includes a path.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load builds a Matcher from the ignore file at path. A missing file yields
// an empty Matcher.
func Load(path string, logger *zap.Logger) (*Matcher, error) {
	m := New(logger)
	if path == "" {
		return m, nil
	}
	if err := m.CompileFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return m, nil
		}
		return nil, err
	}
	return m, nil
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// CompileLines compiles pattern lines and appends them to the Matcher.
// Blank lines and comments are skipped.
func (m *Matcher) CompileLines(lines ...string) {
	for i, line := range lines {
		re, negate, ok := parsePatternLine(line)
		if !ok {
			continue
		}
		p := &Pattern{
			Pattern: re,
			Negate:  negate,
			Line:    line,
			LineNo:  i + 1,
		}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// CompileFile reads an ignore file and compiles every line in it.
func (m *Matcher) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	m.CompileLines(lines...)
	m.logger.Debug("Compiled ignore patterns", zap.String("filePath", path), zap.Int("patternCount", len(m.patterns)))
	return nil
}

// MatchesPath reports whether path is excluded.
func (m *Matcher) MatchesPath(path string) bool {
	matches, _ := m.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern reports whether path is excluded and which pattern
// decided it.
func (m *Matcher) MatchesPathWithPattern(path string) (bool, *Pattern) {
	if m == nil {
		return false, nil
	}
	normalized := filepath.ToSlash(path)

	matches := false
	var matched *Pattern
	for _, p := range m.patterns {
		if p.Pattern.MatchString(normalized) {
			matched = p
			matches = !p.Negate
		}
	}
	return matches, matched
}

// parsePatternLine turns one ignore line into a regular expression.
// ok is false for blank lines, comments and patterns that fail to compile.
func parsePatternLine(line string) (re *regexp.Regexp, negate bool, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false
	}

	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// "\#" and "\!" match a literal leading character.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	rooted := strings.HasPrefix(trimmed, "/")
	dirOnly := strings.HasSuffix(trimmed, "/")
	body := strings.Trim(trimmed, "/")
	if body == "" {
		return nil, false, false
	}

	compiled, err := regexp.Compile(anchorPattern(globToRegex(body), rooted, dirOnly))
	if err != nil {
		return nil, false, false
	}
	return compiled, negate, true
}

// globToRegex converts '*', '**' and '?' wildcards to regex equivalents and
// quotes everything else.
func globToRegex(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '*' && strings.HasPrefix(glob[i:], "**/"):
			b.WriteString("(?:.*/)?")
			i += 2
		case c == '*' && strings.HasPrefix(glob[i:], "**"):
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}

// anchorPattern anchors pattern so it matches a whole path segment run.
// Unrooted patterns may match at any depth. Directory patterns only match
// paths below the directory.
func anchorPattern(pattern string, rooted, dirOnly bool) string {
	prefix := "^(?:.*/)?"
	if rooted {
		prefix = "^"
	}
	suffix := "(?:/.*)?$"
	if dirOnly {
		suffix = "/.*$"
	}
	return prefix + pattern + suffix
}
