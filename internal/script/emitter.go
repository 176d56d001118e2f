package script

import (
	"strings"

	"github.com/initkit/sysvgen/internal/lsb"
)

// Render assembles the complete init script in fixed order: shebang,
// LSB header, variable/sourcing block, the action procedures, and the
// dispatch table. The result is byte-stable for identical input.
func (b *Builder) Render() string {
	var buf lineBuffer

	buf.add("#!/bin/sh")
	buf.extend(lsb.Header(b.doc, b.deps))
	buf.blank()
	buf.extend(b.variableLines())
	buf.blank()

	buf.extend(b.startLines())
	buf.blank()
	buf.extend(b.stopLines())
	buf.blank()
	buf.extend(b.statusLines())
	buf.blank()
	if reload := b.reloadLines(); reload != nil {
		buf.extend(reload)
		buf.blank()
	}
	buf.extend(b.forceReloadLines())
	buf.blank()

	buf.extend(b.dispatchLines())

	return buf.String()
}

// variableLines emits the sourcing and variable block: LSB init
// functions, program name, optional environment-file sourcing guarded
// by an existence test, the pid file variable, description, exported
// environment pairs, and the optional working-directory, user/group,
// timeout, restart and OOM variables.
func (b *Builder) variableLines() []string {
	var buf lineBuffer

	buf.add(". /lib/lsb/init-functions")
	buf.addf("prog=%s", b.doc.Name())

	// A leading "-" means "ignore if missing" in systemd; the existence
	// guard below already gives both forms that behavior.
	if envFile := b.doc.Get("Service", "EnvironmentFile"); envFile != "" {
		envFile = strings.TrimPrefix(envFile, "-")
		buf.addf("if test -f %s; then", envFile)
		buf.addf("	. %s", envFile)
		buf.add("fi")
	}

	if pidfile := b.doc.Get("Service", "PIDFile"); pidfile != "" {
		buf.addf("PIDFILE=%s", pidfile)
	} else {
		buf.add("PIDFILE=/var/run/$prog.pid")
	}

	buf.addf(`DESC="%s"`, b.doc.Description())

	if documentation := b.doc.Get("Unit", "Documentation"); documentation != "" {
		buf.addf("# Service documentation: %s", documentation)
	}

	for _, pair := range b.doc.Environment() {
		buf.addf("export %s", pair)
	}

	if workDir := b.doc.Get("Service", "WorkingDirectory"); workDir != "" {
		buf.addf("WORKDIR=%s", workDir)
	}

	if user := b.doc.Get("Service", "User"); user != "" {
		buf.addf("USER=%s", user)
	}
	if group := b.doc.Get("Service", "Group"); group != "" {
		buf.addf("GROUP=%s", group)
	}

	if b.timeouts.Start > 0 {
		buf.addf("STARTTIMEOUT=%d", b.timeouts.Start)
	}
	if b.timeouts.Stop > 0 {
		buf.addf("STOPTIMEOUT=%d", b.timeouts.Stop)
	}

	if restart := b.doc.Restart(); restart.Mode != "" && restart.Mode != "no" {
		buf.addf("RESTART_MODE=%s", restart.Mode)
		buf.addf("RESTART_SEC=%s", restart.RestartSec)
	}

	if oomScoreAdjust := b.doc.Get("Service", "OOMScoreAdjust"); oomScoreAdjust != "" {
		buf.addf("OOM_SCORE_ADJUST=%s", oomScoreAdjust)
	}

	return buf.lines
}

// dispatchLines emits the verb dispatch table. The usage line lists
// only the verbs actually available; unrecognized arguments exit 2.
func (b *Builder) dispatchLines() []string {
	hasReload := b.doc.Has("Service", "ExecReload")

	var buf lineBuffer
	buf.add(`case "$1" in`)

	for _, verb := range []struct{ name, fn string }{
		{"start", "start"},
		{"stop", "stop"},
		{"status", "status"},
		{"force-reload", "force_reload"},
	} {
		buf.addf("	%s)", verb.name)
		buf.addf("		%s", verb.fn)
		buf.add("		;;")
	}

	buf.add("	restart)")
	buf.add("		stop")
	buf.addf("		sleep %d", restartSettleSeconds)
	buf.add("		start")
	buf.add("		;;")

	usage := "{start|stop|status|force-reload|restart}"
	if hasReload {
		buf.add("	reload)")
		buf.add("		reload")
		buf.add("		;;")
		usage = "{start|stop|status|reload|force-reload|restart}"
	}

	buf.add("	*)")
	buf.addf(`		echo "Usage: $0 %s"`, usage)
	buf.add("		exit 2")
	buf.add("esac")

	return buf.lines
}
