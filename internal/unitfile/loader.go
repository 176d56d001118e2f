// Package unitfile loads systemd service unit files into an immutable
// structured document with fallback-safe typed accessors.
package unitfile

import (
	"strings"

	"gopkg.in/ini.v1"
)

const serviceSuffix = ".service"

// Load parses raw unit file text into a Document. baseName is the file
// name without directory (e.g. "nginx.service" or "getty@tty1.service").
//
// Loading preprocesses the text line by line, merging duplicate keys
// within a section by appending later values to the first occurrence
// (systemd's "repeated directive accumulates" semantics), then applies
// specifier substitution for template units and parses the result as
// section-delimited key=value pairs. A unit without a [Service]
// section is rejected.
func Load(raw []byte, baseName string) (*Document, error) {
	name := strings.TrimSuffix(baseName, serviceSuffix)

	tc, err := parseTemplateContext(name)
	if err != nil {
		return nil, err
	}

	text := preprocess(string(raw))
	text = expandSpecifiers(text, name, tc)

	// IgnoreInlineComment keeps " ; " command separators intact inside
	// directive values; systemd has no inline comments.
	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:  "=",
		IgnoreInlineComment: true,
	}, []byte(text))
	if err != nil {
		return nil, NewParseError(name, "malformed unit text", err)
	}

	if _, err := file.GetSection("Service"); err != nil {
		return nil, NewParseError(name, "missing [Service] section", nil)
	}

	return &Document{
		name:     name,
		template: tc,
		file:     file,
	}, nil
}

// preprocess rewrites the unit text so that every (section, key) pair
// appears exactly once. The first occurrence of a key is the emission
// point; values of later occurrences are appended to it separated by a
// single space, and the duplicate lines are dropped. Keys are
// lowercased; section headers keep their case as written.
func preprocess(raw string) string {
	lines := strings.Split(raw, "\n")

	out := make([]string, 0, len(lines))
	seen := make(map[string]map[string]int)
	section := ""

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
			section = stripped
			if seen[section] == nil {
				seen[section] = make(map[string]int)
			}
			out = append(out, stripped)
			continue
		}

		if section == "" || !strings.Contains(stripped, "=") ||
			strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, ";") {
			out = append(out, line)
			continue
		}

		rawKey, rawValue, _ := strings.Cut(stripped, "=")
		key := strings.ToLower(strings.TrimSpace(rawKey))
		value := strings.TrimSpace(rawValue)

		if at, ok := seen[section][key]; ok {
			out[at] += " " + value
			continue
		}

		seen[section][key] = len(out)
		out = append(out, key+"="+value)
	}

	return strings.Join(out, "\n")
}
