package store

import (
	"strings"

	"github.com/gobwas/glob"
)

// compilePattern compiles a KEYS pattern with Redis glob semantics.
// Braces and commas are literals and a class opened with [^ is negated.
func compilePattern(pattern string) (glob.Glob, error) {
	return glob.Compile(translatePattern(pattern))
}

// translatePattern rewrites Redis glob syntax into gobwas syntax
func translatePattern(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)

	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if c == '\\' {
			b.WriteByte(c)
			if i+1 < len(pattern) {
				i++
				b.WriteByte(pattern[i])
			}
			continue
		}

		if inClass {
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
			continue
		}

		switch c {
		case '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('!')
			}
		case '{', '}', ',':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
