// Package lsb maps systemd unit dependencies onto LSB facility tokens
// and runlevels, and renders the init-script comment header.
package lsb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/initkit/sysvgen/internal/unitfile"
)

// facilityByTarget maps systemd dependency targets to LSB facility
// tokens for Required-Start/Required-Stop. Unrecognized targets are
// ignored, keeping the header forward-compatible.
var facilityByTarget = map[string]string{
	"network.target":    "$network",
	"syslog.target":     "$syslog",
	"remote-fs.target":  "$remote_fs",
	"time-sync.target":  "$time",
	"rpcbind.service":   "$portmap",
	"nss-lookup.target": "$named",
}

// shouldFacilityByTarget is the subset honored for Wants (soft
// dependencies emitted as Should-Start).
var shouldFacilityByTarget = map[string]string{
	"network.target":   "$network",
	"remote-fs.target": "$remote_fs",
}

// Set is an unordered collection of facility tokens. Emission order is
// not contractual; Sorted exists only for byte-stable output.
type Set map[string]struct{}

// Add inserts tokens into the set.
func (s Set) Add(tokens ...string) {
	for _, t := range tokens {
		s[t] = struct{}{}
	}
}

// Contains reports whether the set holds the token.
func (s Set) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in lexical order.
func (s Set) Sorted() []string {
	tokens := make([]string, 0, len(s))
	for t := range s {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// DependencySet is the resolved LSB dependency information for one
// unit: facility tokens for Required-Start/Stop and Should-Start, plus
// the default start/stop runlevels.
type DependencySet struct {
	RequiredStart Set
	RequiredStop  Set
	ShouldStart   Set
	RunlevelStart []string
	RunlevelStop  []string
}

// Resolve builds the DependencySet for a unit document.
//
// Required-Start/Stop are seeded with $syslog and $local_fs. An
// executable under /usr additionally needs $remote_fs, since /usr may
// be a separate mount not yet available at early runlevels. After and
// Requires targets map through the fixed facility table; Wants targets
// become soft Should-Start entries.
func Resolve(doc *unitfile.Document) DependencySet {
	deps := DependencySet{
		RequiredStart: Set{},
		RequiredStop:  Set{},
		ShouldStart:   Set{},
	}
	deps.RequiredStart.Add("$syslog", "$local_fs")

	if strings.HasPrefix(doc.ExecPath(), "/usr") {
		deps.RequiredStart.Add("$remote_fs")
	}

	for _, directive := range []string{"After", "Requires"} {
		for _, target := range strings.Fields(doc.Get("Unit", directive)) {
			if facility, ok := facilityByTarget[target]; ok {
				deps.RequiredStart.Add(facility)
			}
		}
	}

	for token := range deps.RequiredStart {
		deps.RequiredStop.Add(token)
	}

	for _, target := range strings.Fields(doc.Get("Unit", "Wants")) {
		if facility, ok := shouldFacilityByTarget[target]; ok {
			deps.ShouldStart.Add(facility)
		}
	}

	deps.RunlevelStart, deps.RunlevelStop = runlevels(doc.Get("Install", "WantedBy"))

	return deps
}

// runlevels maps Install.WantedBy onto default start/stop runlevels.
// Unrecognized or absent targets fall back to the multi-user set.
func runlevels(wantedBy string) (start, stop []string) {
	switch wantedBy {
	case "basic.target":
		return []string{"1"}, nil
	case "rescue.target":
		return []string{"1"}, []string{"0", "2", "3", "4", "5", "6"}
	default: // multi-user.target, graphical.target, anything else
		return []string{"2", "3", "4", "5"}, []string{"0", "1", "6"}
	}
}

// Header renders the LSB INIT INFO comment block for the unit.
func Header(doc *unitfile.Document, deps DependencySet) []string {
	required := strings.Join(deps.RequiredStart.Sorted(), " ")

	lines := []string{
		"### BEGIN INIT INFO",
		fmt.Sprintf("# Provides:          %s", doc.Name()),
		fmt.Sprintf("# Required-Start:    %s", required),
		fmt.Sprintf("# Required-Stop:     %s", strings.Join(deps.RequiredStop.Sorted(), " ")),
	}

	if len(deps.ShouldStart) > 0 {
		lines = append(lines, fmt.Sprintf("# Should-Start:      %s", strings.Join(deps.ShouldStart.Sorted(), " ")))
	}

	lines = append(lines,
		fmt.Sprintf("# Default-Start:     %s", strings.Join(deps.RunlevelStart, " ")),
		fmt.Sprintf("# Default-Stop:      %s", strings.Join(deps.RunlevelStop, " ")),
		fmt.Sprintf("# Short-Description: %s", doc.Description()),
	)

	if documentation := doc.Get("Unit", "Documentation"); documentation != "" {
		lines = append(lines, fmt.Sprintf("# Documentation:     %s", documentation))
	}

	lines = append(lines, "### END INIT INFO")
	return lines
}
