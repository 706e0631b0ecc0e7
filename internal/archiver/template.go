package archiver

import (
	"strings"

	"github.com/spf13/cast"
)

// ConfigValue is one template parameter value. The on-wiki configuration
// supplies everything as wikitext strings; accessors make the intended
// type, default and failure mode explicit instead of coercing implicitly.
type ConfigValue struct {
	raw string
	set bool
}

func (v ConfigValue) IsSet() bool { return v.set }

// Str returns the trimmed string value, or def when the parameter is
// absent or empty.
func (v ConfigValue) Str(def string) string {
	s := strings.TrimSpace(v.raw)
	if !v.set || s == "" {
		return def
	}
	return s
}

// Int returns the value as an integer, or def when the parameter is
// absent or empty. A present but unparsable value is a configuration
// error, never a silent default.
func (v ConfigValue) Int(param string, def int) (int, error) {
	s := strings.TrimSpace(v.raw)
	if !v.set || s == "" {
		return def, nil
	}
	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, &MalformedConfigError{Param: param, Value: s, Reason: "not an integer"}
	}
	return n, nil
}

type TemplateParam struct {
	Key   string
	Value string
}

// Template is one parsed transclusion: the parameter order and any
// parameters the archiver does not interpret are preserved verbatim so
// the rewrite keeps them intact.
type Template struct {
	Name   string
	Params []TemplateParam
	Start  int
	End    int
}

// ParseTemplate finds the first transclusion of name in text and parses
// its parameters. Template name matching is case-insensitive in the first
// letter, per wiki title rules.
func ParseTemplate(text, name string) (*Template, bool) {
	start := findTransclusion(text, name)
	if start < 0 {
		return nil, false
	}
	end := matchBraces(text, start)
	if end < 0 {
		return nil, false
	}

	inner := text[start+2 : end-2]
	parts := splitTopLevel(inner, '|')

	tpl := &Template{
		Name:  strings.TrimSpace(parts[0]),
		Start: start,
		End:   end,
	}
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		if !found {
			// Positional parameters are not part of the archiver's
			// configuration surface; preserve them as-is.
			tpl.Params = append(tpl.Params, TemplateParam{Key: "", Value: strings.TrimSpace(part)})
			continue
		}
		tpl.Params = append(tpl.Params, TemplateParam{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return tpl, true
}

// Get returns the named parameter's value.
func (t *Template) Get(key string) ConfigValue {
	for _, p := range t.Params {
		if p.Key == key {
			return ConfigValue{raw: p.Value, set: true}
		}
	}
	return ConfigValue{}
}

// Set replaces the named parameter, appending it when absent.
func (t *Template) Set(key, value string) {
	for i, p := range t.Params {
		if p.Key == key {
			t.Params[i].Value = value
			return
		}
	}
	t.Params = append(t.Params, TemplateParam{Key: key, Value: value})
}

// Render regenerates the transclusion with one parameter per line, the
// way the archiver has always rewritten its configuration.
func (t *Template) Render() string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(t.Name)
	for _, p := range t.Params {
		b.WriteString("\n|")
		if p.Key != "" {
			b.WriteString(p.Key)
			b.WriteString(" = ")
		}
		b.WriteString(p.Value)
	}
	b.WriteString("\n}}")
	return b.String()
}

// findTransclusion locates "{{name" with the first letter of name matched
// case-insensitively, skipping matches where name is only a prefix of a
// longer template name.
func findTransclusion(text, name string) int {
	if name == "" {
		return -1
	}
	for i := 0; i+2 < len(text); i++ {
		if text[i] != '{' || text[i+1] != '{' {
			continue
		}
		rest := text[i+2:]
		rest = rest[len(rest)-len(strings.TrimLeft(rest, " \t")):]
		if !hasTitleFold(rest, name) {
			continue
		}
		after := rest[len(name):]
		if after == "" {
			continue
		}
		switch after[0] {
		case '|', '}', '\n', ' ', '\t':
			return i
		}
	}
	return -1
}

// hasTitleFold reports whether s starts with name, comparing the first
// byte case-insensitively.
func hasTitleFold(s, name string) bool {
	if len(s) < len(name) {
		return false
	}
	if !strings.EqualFold(s[:1], name[:1]) {
		return false
	}
	return s[1:len(name)] == name[1:]
}

// matchBraces returns the index just past the "}}" closing the
// transclusion opening at start, honoring nesting. -1 when unbalanced.
func matchBraces(text string, start int) int {
	depth := 0
	for i := start; i+1 < len(text); i++ {
		switch {
		case text[i] == '{' && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && text[i+1] == '}':
			depth--
			i++
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// {{...}} or [[...]].
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var braces, brackets int
	last := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && s[i] == '{' && s[i+1] == '{':
			braces++
			i++
		case i+1 < len(s) && s[i] == '}' && s[i+1] == '}':
			braces--
			i++
		case i+1 < len(s) && s[i] == '[' && s[i+1] == '[':
			brackets++
			i++
		case i+1 < len(s) && s[i] == ']' && s[i+1] == ']':
			brackets--
			i++
		case s[i] == sep && braces == 0 && brackets == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	parts = append(parts, s[last:])
	return parts
}
