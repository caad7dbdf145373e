package versionsource

import (
	"fmt"
	"strings"
)

// Template placeholders.
const (
	PlaceholderCurrentVersion = "current_version"
	PlaceholderNewVersion     = "new_version"
)

// Context is the set of values templates may reference.
type Context struct {
	CurrentVersion string
	NewVersion     string
}

func (c Context) lookup(name string) (string, bool) {
	switch name {
	case PlaceholderCurrentVersion:
		return c.CurrentVersion, true
	case PlaceholderNewVersion:
		return c.NewVersion, true
	default:
		return "", false
	}
}

// Format expands {current_version} and {new_version} in template. Doubled
// braces produce literal ones; any other placeholder is an error.
func (c Context) Format(template string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template) + 16)

	for i := 0; i < len(template); i++ {
		ch := template[i]
		switch ch {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("template %q: unmatched '{'", template)
			}
			name := template[i+1 : i+1+end]
			value, ok := c.lookup(name)
			if !ok {
				return "", fmt.Errorf("template %q: unknown placeholder {%s}", template, name)
			}
			sb.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("template %q: single '}' encountered", template)
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String(), nil
}
