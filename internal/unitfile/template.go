package unitfile

import (
	"strings"
)

// TemplateContext carries the template identity derived from a unit
// file's base name. For template units (name contains "@") Instance is
// always non-empty.
type TemplateContext struct {
	IsTemplate bool
	Prefix     string
	Instance   string
}

// parseTemplateContext derives the template context from a service
// name (base name with the .service suffix already stripped).
func parseTemplateContext(name string) (TemplateContext, error) {
	if !strings.Contains(name, "@") {
		return TemplateContext{}, nil
	}

	prefix, instance, _ := strings.Cut(name, "@")
	if instance == "" {
		return TemplateContext{}, NewTemplateError(name, "template unit requires an instance name")
	}

	return TemplateContext{
		IsTemplate: true,
		Prefix:     prefix,
		Instance:   instance,
	}, nil
}

// expandSpecifiers substitutes the fixed specifier alphabet in a
// single tokenizing pass. Replacement text is never re-scanned, so a
// replacement value containing a specifier-shaped substring cannot be
// substituted a second time. Unrecognized %x pairs (including %%) pass
// through untouched.
func expandSpecifiers(text, name string, tc TemplateContext) string {
	if !tc.IsTemplate {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '%' || i+1 >= len(text) {
			b.WriteByte(text[i])
			i++
			continue
		}

		switch text[i+1] {
		case 'i', 'I':
			b.WriteString(tc.Instance)
		case 'p', 'P':
			b.WriteString(tc.Prefix)
		case 'f':
			b.WriteString("/" + tc.Instance)
		case 'u', 'U':
			b.WriteString(name)
		default:
			b.WriteByte(text[i])
			b.WriteByte(text[i+1])
		}
		i += 2
	}

	return b.String()
}
