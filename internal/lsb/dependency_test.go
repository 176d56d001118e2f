package lsb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/initkit/sysvgen/internal/unitfile"
)

func mustLoad(t *testing.T, content, baseName string) *unitfile.Document {
	t.Helper()
	doc, err := unitfile.Load([]byte(content), baseName)
	require.NoError(t, err)
	return doc
}

func TestResolveSeedsRequiredFacilities(t *testing.T) {
	doc := mustLoad(t, "[Service]\nExecStart=/bin/demo\n", "demo.service")
	deps := Resolve(doc)

	assert.ElementsMatch(t, []string{"$local_fs", "$syslog"}, deps.RequiredStart.Sorted())
	assert.ElementsMatch(t, []string{"$local_fs", "$syslog"}, deps.RequiredStop.Sorted())
	assert.Empty(t, deps.ShouldStart)
}

func TestResolveUsrExecutableNeedsRemoteFS(t *testing.T) {
	doc := mustLoad(t, "[Service]\nExecStart=/usr/bin/demo\n", "demo.service")
	deps := Resolve(doc)

	assert.True(t, deps.RequiredStart.Contains("$remote_fs"))
	assert.True(t, deps.RequiredStop.Contains("$remote_fs"))
}

func TestResolveAfterAndRequiresTargets(t *testing.T) {
	content := `[Unit]
After=network.target syslog.target
Requires=rpcbind.service custom.target

[Service]
ExecStart=/bin/demo
`
	doc := mustLoad(t, content, "demo.service")
	deps := Resolve(doc)

	// Order is not contractual; compare as sets.
	assert.ElementsMatch(t,
		[]string{"$local_fs", "$network", "$portmap", "$syslog"},
		deps.RequiredStart.Sorted())
	assert.False(t, deps.RequiredStart.Contains("custom.target"))
}

func TestResolveFacilityTable(t *testing.T) {
	tests := []struct {
		target   string
		facility string
	}{
		{"network.target", "$network"},
		{"syslog.target", "$syslog"},
		{"remote-fs.target", "$remote_fs"},
		{"time-sync.target", "$time"},
		{"rpcbind.service", "$portmap"},
		{"nss-lookup.target", "$named"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			doc := mustLoad(t, "[Unit]\nAfter="+tt.target+"\n\n[Service]\nExecStart=/bin/demo\n", "demo.service")
			deps := Resolve(doc)
			assert.True(t, deps.RequiredStart.Contains(tt.facility))
		})
	}
}

func TestResolveWantsBecomeShouldStart(t *testing.T) {
	content := `[Unit]
Wants=network.target remote-fs.target time-sync.target

[Service]
ExecStart=/bin/demo
`
	doc := mustLoad(t, content, "demo.service")
	deps := Resolve(doc)

	assert.ElementsMatch(t, []string{"$network", "$remote_fs"}, deps.ShouldStart.Sorted())
	// time-sync.target is only honored for hard dependencies.
	assert.False(t, deps.RequiredStart.Contains("$time"))
}

func TestResolveRunlevels(t *testing.T) {
	tests := []struct {
		name      string
		wantedBy  string
		wantStart []string
		wantStop  []string
	}{
		{"multi-user", "multi-user.target", []string{"2", "3", "4", "5"}, []string{"0", "1", "6"}},
		{"graphical", "graphical.target", []string{"2", "3", "4", "5"}, []string{"0", "1", "6"}},
		{"basic", "basic.target", []string{"1"}, nil},
		{"rescue", "rescue.target", []string{"1"}, []string{"0", "2", "3", "4", "5", "6"}},
		{"unrecognized", "weird.target", []string{"2", "3", "4", "5"}, []string{"0", "1", "6"}},
		{"absent", "", []string{"2", "3", "4", "5"}, []string{"0", "1", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "[Service]\nExecStart=/bin/demo\n"
			if tt.wantedBy != "" {
				content += "\n[Install]\nWantedBy=" + tt.wantedBy + "\n"
			}
			deps := Resolve(mustLoad(t, content, "demo.service"))
			assert.Equal(t, tt.wantStart, deps.RunlevelStart)
			assert.Equal(t, tt.wantStop, deps.RunlevelStop)
		})
	}
}

func TestHeader(t *testing.T) {
	content := `[Unit]
Description=Demo Daemon
Documentation=man:demo(8)
Wants=network.target

[Service]
ExecStart=/bin/demo

[Install]
WantedBy=multi-user.target
`
	doc := mustLoad(t, content, "demo.service")
	header := strings.Join(Header(doc, Resolve(doc)), "\n")

	assert.Contains(t, header, "### BEGIN INIT INFO")
	assert.Contains(t, header, "### END INIT INFO")
	assert.Contains(t, header, "# Provides:          demo")
	assert.Contains(t, header, "# Should-Start:      $network")
	assert.Contains(t, header, "# Default-Start:     2 3 4 5")
	assert.Contains(t, header, "# Default-Stop:      0 1 6")
	assert.Contains(t, header, "# Short-Description: Demo Daemon")
	assert.Contains(t, header, "# Documentation:     man:demo(8)")
}

func TestHeaderOmitsOptionalFields(t *testing.T) {
	doc := mustLoad(t, "[Service]\nExecStart=/bin/demo\n", "demo.service")
	header := strings.Join(Header(doc, Resolve(doc)), "\n")

	assert.NotContains(t, header, "Should-Start")
	assert.NotContains(t, header, "Documentation")
	assert.Contains(t, header, "# Short-Description: demo")
}
