package unitfile

import (
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ServiceType is the supervision model a unit declares. It dictates
// how start-up completion is detected by the generated script.
type ServiceType string

// Service types understood by the generator.
const (
	TypeSimple  ServiceType = "simple"
	TypeExec    ServiceType = "exec"
	TypeNotify  ServiceType = "notify"
	TypeIdle    ServiceType = "idle"
	TypeForking ServiceType = "forking"
	TypeOneshot ServiceType = "oneshot"
)

// Command is a single entry of an Exec* directive. Directive values
// are split once at load on the literal " ; " separator; a leading "-"
// marks the command optional (its failure is ignored at script
// runtime).
type Command struct {
	Line     string
	Optional bool
}

// ConditionKind identifies a start-condition predicate.
type ConditionKind string

// Condition kinds understood by the generator.
const (
	ConditionPathExists        ConditionKind = "ConditionPathExists"
	ConditionPathExistsGlob    ConditionKind = "ConditionPathExistsGlob"
	ConditionFileNotEmpty      ConditionKind = "ConditionFileNotEmpty"
	ConditionDirectoryNotEmpty ConditionKind = "ConditionDirectoryNotEmpty"
)

// Condition is a file-system predicate guarding service start.
type Condition struct {
	Kind   ConditionKind
	Target string
}

// TimeoutSpec holds the effective start and stop timeouts in seconds.
// Zero means no timeout is configured.
type TimeoutSpec struct {
	Start int
	Stop  int
}

// RestartPolicy holds the unit's restart directive and delay.
type RestartPolicy struct {
	Mode       string
	RestartSec string
}

// Document is the parsed, immutable view of one service unit file. It
// is built once per input file and read by the dependency resolver and
// the script builder.
type Document struct {
	name     string
	template TemplateContext
	file     *ini.File
}

// Name returns the service name (base name without the .service
// suffix; template units keep the "prefix@instance" form).
func (d *Document) Name() string {
	return d.name
}

// Template returns the template context derived from the file name.
func (d *Document) Template() TemplateContext {
	return d.template
}

// Get returns the stored value for (section, key), or the empty string
// when the section or key is absent. It never errors; this is the sole
// read path for every downstream component. Keys are matched
// case-insensitively, section names as written.
func (d *Document) Get(section, key string) string {
	return d.GetDefault(section, key, "")
}

// GetDefault is Get with an explicit fallback value.
func (d *Document) GetDefault(section, key, fallback string) string {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return fallback
	}
	lower := strings.ToLower(key)
	if !sec.HasKey(lower) {
		return fallback
	}
	return sec.Key(lower).String()
}

// Has reports whether (section, key) is present with a non-empty value.
func (d *Document) Has(section, key string) bool {
	return d.Get(section, key) != ""
}

// Type returns the declared service type, defaulting to simple when
// the Type directive is absent. Unknown values behave as simple.
func (d *Document) Type() ServiceType {
	switch t := ServiceType(strings.ToLower(d.Get("Service", "Type"))); t {
	case TypeExec, TypeNotify, TypeIdle, TypeForking, TypeOneshot:
		return t
	default:
		return TypeSimple
	}
}

// Commands returns the ordered command list for an Exec* directive in
// the [Service] section. A nil slice means the directive is absent.
func (d *Document) Commands(key string) []Command {
	value := d.Get("Service", key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, " ; ")
	cmds := make([]Command, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		optional := strings.HasPrefix(line, "-")
		if optional {
			line = line[1:]
		}
		cmds = append(cmds, Command{Line: line, Optional: optional})
	}
	return cmds
}

// FullCommand returns the complete ExecStart command with arguments,
// stripped of a leading "-".
func (d *Document) FullCommand() string {
	execStart := d.Get("Service", "ExecStart")
	return strings.TrimPrefix(execStart, "-")
}

// ExecPath returns the executable path: the first whitespace-delimited
// token of ExecStart.
func (d *Document) ExecPath() string {
	fields := strings.Fields(d.FullCommand())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Timeouts resolves the effective start and stop timeouts exactly
// once: the directional value wins when positive, TimeoutSec is the
// fallback for both, and absent or zero means no timeout.
func (d *Document) Timeouts() TimeoutSpec {
	shared := positiveSeconds(d.Get("Service", "TimeoutSec"))

	spec := TimeoutSpec{Start: shared, Stop: shared}
	if start := positiveSeconds(d.Get("Service", "TimeoutStartSec")); start > 0 {
		spec.Start = start
	}
	if stop := positiveSeconds(d.Get("Service", "TimeoutStopSec")); stop > 0 {
		spec.Stop = stop
	}
	return spec
}

func positiveSeconds(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// Restart returns the unit's restart policy. Mode is empty when the
// Restart directive is absent; RestartSec defaults to "1".
func (d *Document) Restart() RestartPolicy {
	return RestartPolicy{
		Mode:       d.Get("Service", "Restart"),
		RestartSec: d.GetDefault("Service", "RestartSec", "1"),
	}
}

// Environment returns the KEY=VALUE pairs of the merged Environment
// directive. Tokens without "=" are dropped.
func (d *Document) Environment() []string {
	var pairs []string
	for _, token := range strings.Fields(d.Get("Service", "Environment")) {
		if strings.Contains(token, "=") {
			pairs = append(pairs, token)
		}
	}
	return pairs
}

// Conditions returns the start conditions present on the unit, in the
// fixed emission order.
func (d *Document) Conditions() []Condition {
	kinds := []ConditionKind{
		ConditionPathExists,
		ConditionPathExistsGlob,
		ConditionFileNotEmpty,
		ConditionDirectoryNotEmpty,
	}

	var conds []Condition
	for _, kind := range kinds {
		if target := d.Get("Unit", string(kind)); target != "" {
			conds = append(conds, Condition{Kind: kind, Target: target})
		}
	}
	return conds
}

// Description returns Unit.Description, defaulting to the service name.
func (d *Document) Description() string {
	return d.GetDefault("Unit", "Description", d.name)
}
