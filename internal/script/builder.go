// Package script generates LSB SysV init scripts from parsed systemd
// service unit documents. Builder is the state-machine core: it emits
// start/stop/status/reload/force_reload procedures whose control flow
// reproduces systemd's per-Type runtime behavior without a supervising
// daemon, and Render assembles the final script text.
package script

import (
	"fmt"
	"strings"

	"github.com/initkit/sysvgen/internal/lsb"
	"github.com/initkit/sysvgen/internal/unitfile"
)

// restartSettleSeconds is the fixed delay between stop and start on
// restart and on the force-reload fallback path.
const restartSettleSeconds = 2

// Builder generates the init script for one unit document. It is pure
// and holds no mutable state beyond values resolved once at
// construction; batch conversions use one Builder per file.
type Builder struct {
	doc      *unitfile.Document
	deps     lsb.DependencySet
	timeouts unitfile.TimeoutSpec
}

// New creates a Builder for the document, resolving the dependency set
// and the effective timeouts exactly once.
func New(doc *unitfile.Document) *Builder {
	return &Builder{
		doc:      doc,
		deps:     lsb.Resolve(doc),
		timeouts: doc.Timeouts(),
	}
}

// Convert loads raw unit text and renders the equivalent init script.
func Convert(raw []byte, baseName string) (string, error) {
	doc, err := unitfile.Load(raw, baseName)
	if err != nil {
		return "", err
	}
	return New(doc).Render(), nil
}

// startLines generates the start() procedure: condition guards,
// working directory change, ExecStartPre, the Type-specific start
// dispatch, and ExecStartPost.
func (b *Builder) startLines() []string {
	var buf lineBuffer
	buf.add("start() {")
	buf.add(`	log_daemon_msg "Starting $DESC" "$prog"`)

	for _, cond := range b.doc.Conditions() {
		buf.extend(conditionGuard(cond))
	}

	if b.doc.Has("Service", "WorkingDirectory") {
		buf.add("	cd $WORKDIR || {")
		buf.add("		log_end_msg 1")
		buf.add("		exit 1")
		buf.add("	}")
	}

	for _, cmd := range b.doc.Commands("ExecStartPre") {
		buf.addf("	start_daemon %s", cmd.Line)
		if !cmd.Optional {
			buf.extend(failCheck())
		}
	}

	b.addStartDispatch(&buf)

	for _, cmd := range b.doc.Commands("ExecStartPost") {
		buf.addf("	start_daemon %s", cmd.Line)
		if !cmd.Optional {
			buf.extend(successCheck())
		}
	}

	buf.add("}")
	return buf.lines
}

// addStartDispatch emits the Type-specific start logic.
//
// oneshot runs every ExecStart command inline in the foreground with a
// single success check after the last one. forking hands the full
// command to start_daemon and trusts it to self-background. All other
// types are backgrounded by start-stop-daemon, which also creates a
// pid file when the unit does not declare one.
func (b *Builder) addStartDispatch(buf *lineBuffer) {
	if !b.doc.Has("Service", "ExecStart") {
		return
	}

	switch b.doc.Type() {
	case unitfile.TypeOneshot:
		for _, cmd := range b.doc.Commands("ExecStart") {
			buf.addf("	%s", cmd.Line)
		}
		buf.extend(successCheck())

	case unitfile.TypeForking:
		pidfileOpt := ""
		if b.doc.Has("Service", "PIDFile") {
			pidfileOpt = " -p $PIDFILE"
		}
		buf.addf("	start_daemon%s %s", pidfileOpt, b.doc.FullCommand())
		buf.extend(b.startPoll())

	default: // simple, exec, notify, idle
		execPath := b.doc.ExecPath()
		fullCmd := b.doc.FullCommand()

		pidfileOpts := "--make-pidfile --pidfile $PIDFILE"
		if b.doc.Has("Service", "PIDFile") {
			pidfileOpts = "--pidfile $PIDFILE"
		}

		if fullCmd != execPath {
			args := trimCommandArgs(fullCmd, execPath)
			buf.addf("	start-stop-daemon --start --background %s --startas %s -- %s", pidfileOpts, execPath, args)
		} else {
			buf.addf("	start-stop-daemon --start --background %s --exec %s", pidfileOpts, execPath)
		}
		buf.extend(b.startPoll())
	}
}

// stopLines generates the stop() procedure. ExecStop commands run
// as-is when present; otherwise the process is terminated through
// killproc (pid-file aware) or start-stop-daemon by name. Both paths
// end in the stop poll.
func (b *Builder) stopLines() []string {
	var buf lineBuffer
	buf.add("stop() {")
	buf.add(`	log_daemon_msg "Stopping $DESC" "$prog"`)

	if cmds := b.doc.Commands("ExecStop"); len(cmds) > 0 {
		for _, cmd := range cmds {
			buf.addf("	%s", cmd.Line)
		}
		buf.extend(b.stopPoll())
	} else {
		b.addKillDispatch(&buf)
		buf.extend(b.stopPoll())
	}

	for _, cmd := range b.doc.Commands("ExecStopPost") {
		if cmd.Optional {
			buf.addf("	%s || true", cmd.Line)
		} else {
			buf.addf("	%s", cmd.Line)
			buf.extend(successCheck())
		}
	}

	buf.add("}")
	return buf.lines
}

// addKillDispatch emits the termination logic used when ExecStop is
// absent: prefer the pid file when one is configured and present at
// runtime, fall back to a name-based stop.
func (b *Builder) addKillDispatch(buf *lineBuffer) {
	execPath := b.doc.ExecPath()
	killSignal := b.doc.Get("Service", "KillSignal")

	signalOpt := ""
	if killSignal != "" {
		signalOpt = fmt.Sprintf(" --signal %s", killSignal)
	}
	byName := fmt.Sprintf("start-stop-daemon --stop%s --name $(basename %s) --oknodo", signalOpt, execPath)

	if !b.doc.Has("Service", "PIDFile") {
		buf.addf("	%s", byName)
		return
	}

	killprocSignal := ""
	if killSignal != "" {
		killprocSignal = fmt.Sprintf(" -s %s", killSignal)
	}

	buf.add("	if [ -f $PIDFILE ]; then")
	buf.addf("		killproc -p $PIDFILE%s %s", killprocSignal, execPath)
	buf.add("	else")
	buf.addf("		%s", byName)
	buf.add("	fi")
}

// statusLines generates the status() procedure.
func (b *Builder) statusLines() []string {
	var buf lineBuffer
	buf.add("status() {")

	execPath := b.doc.ExecPath()
	if b.doc.Has("Service", "PIDFile") {
		buf.add("	if [ -f $PIDFILE ]; then")
		buf.addf(`		status_of_proc -p $PIDFILE %s "$prog"`, execPath)
		buf.add("	else")
		buf.addf(`		status_of_proc %s "$prog"`, execPath)
		buf.add("	fi")
	} else {
		buf.addf(`	status_of_proc %s "$prog"`, execPath)
	}

	buf.add("}")
	return buf.lines
}

// reloadLines generates the reload() procedure, or nil when ExecReload
// is absent (the verb is then also left out of the dispatch table).
func (b *Builder) reloadLines() []string {
	cmds := b.doc.Commands("ExecReload")
	if len(cmds) == 0 {
		return nil
	}

	var buf lineBuffer
	buf.add("reload() {")
	buf.add(`	log_daemon_msg "Reloading $DESC" "$prog"`)

	for _, cmd := range cmds {
		buf.addf("	%s", cmd.Line)
		if !cmd.Optional {
			buf.extend(successCheck())
		}
	}

	buf.add("	exit 0")
	buf.add("}")
	return buf.lines
}

// forceReloadLines generates the force_reload() procedure. reload
// terminates the script on both outcomes, so it runs in a subshell;
// a nonzero subshell status triggers the full stop/start fallback.
func (b *Builder) forceReloadLines() []string {
	var buf lineBuffer
	buf.add("force_reload() {")

	if b.doc.Has("Service", "ExecReload") {
		buf.add("	if ! ( reload ); then")
		buf.add("		stop")
		buf.addf("		sleep %d", restartSettleSeconds)
		buf.add("		start")
		buf.add("	fi")
	} else {
		buf.add("	stop")
		buf.add("	start")
	}

	buf.add("}")
	return buf.lines
}

// startPoll emits the start timeout handling. With a positive resolved
// start timeout the script polls process liveness once per second
// until the window expires; the expiry message names the same resolved
// value. Without a timeout a single immediate success check is emitted.
func (b *Builder) startPoll() []string {
	if b.timeouts.Start == 0 {
		return successCheck()
	}

	var buf lineBuffer
	buf.add("	TIMEOUT=$STARTTIMEOUT")
	buf.add("	while [ $TIMEOUT -gt 0 ]; do")
	buf.addf("		TEMPPID=$(%s)", b.pidProbe())
	buf.add(`		if [ -n "$TEMPPID" ] && /bin/kill -0 $TEMPPID 2>/dev/null; then`)
	buf.add("			log_end_msg 0")
	buf.add("			break")
	buf.add("		fi")
	buf.add("		sleep 1")
	buf.add("		TIMEOUT=$((TIMEOUT - 1))")
	buf.add("	done")
	buf.add("	if [ $TIMEOUT -eq 0 ]; then")
	buf.add("		log_end_msg 1")
	buf.add(`		echo "Timeout error occurred trying to start $prog (timeout: $STARTTIMEOUT seconds)"`)
	buf.add("		exit 1")
	buf.add("	fi")
	return buf.lines
}

// stopPoll emits the stop timeout handling. On expiry the process is
// sent SIGTERM, given a grace period, then SIGKILL; the forced kill is
// reported but never fails the action.
func (b *Builder) stopPoll() []string {
	if b.timeouts.Stop == 0 {
		return successCheck()
	}

	var buf lineBuffer
	buf.add("	TIMEOUT=$STOPTIMEOUT")
	buf.addf("	TEMPPID=$(%s)", b.pidProbe())
	buf.add("	while [ $TIMEOUT -gt 0 ]; do")
	buf.add("		if ! /bin/kill -0 $TEMPPID 2>/dev/null; then")
	buf.add("			log_end_msg 0")
	buf.add("			break")
	buf.add("		fi")
	buf.add("		sleep 1")
	buf.add("		TIMEOUT=$((TIMEOUT - 1))")
	buf.add("	done")
	buf.add("	if [ $TIMEOUT -eq 0 ]; then")
	buf.add("		kill -15 $TEMPPID 2>/dev/null")
	buf.add("		sleep 2")
	buf.add("		kill -9 $TEMPPID 2>/dev/null")
	buf.add(`		echo "$prog killed"`)
	buf.add("	fi")
	return buf.lines
}

// pidProbe returns the shell command resolving the service's PID. The
// pid file is the source whenever the script tracks one: either the
// unit declares PIDFile, or the background-start helper was told to
// create one (every type except forking and oneshot). Otherwise the
// probe falls back to the process name.
func (b *Builder) pidProbe() string {
	execPath := b.doc.ExecPath()

	if b.doc.Has("Service", "PIDFile") {
		return "pidofproc -p $PIDFILE " + execPath
	}
	switch b.doc.Type() {
	case unitfile.TypeForking, unitfile.TypeOneshot:
		return "pidofproc " + execPath
	default:
		return "pidofproc -p $PIDFILE " + execPath
	}
}

// conditionGuard emits the guard for one start condition. An unmet
// condition is a silent skip: the action logs failure but exits 0.
func conditionGuard(cond unitfile.Condition) []string {
	var test string
	switch cond.Kind {
	case unitfile.ConditionPathExists:
		test = fmt.Sprintf("if [ ! -e %s ]; then", cond.Target)
	case unitfile.ConditionPathExistsGlob:
		test = fmt.Sprintf("if ! ls %s 1> /dev/null 2>&1; then", cond.Target)
	case unitfile.ConditionFileNotEmpty:
		test = fmt.Sprintf("if [ ! -s %s ]; then", cond.Target)
	case unitfile.ConditionDirectoryNotEmpty:
		test = fmt.Sprintf(`if [ ! -d %s ] || [ -z "$(ls -A %s)" ]; then`, cond.Target, cond.Target)
	}

	return []string{
		"	" + test,
		"		log_end_msg 1",
		"		exit 0",
		"	fi",
	}
}

// failCheck aborts the running action when the previous command
// reported nonzero exit.
func failCheck() []string {
	return []string{
		"	if [ $? -ne 0 ]; then",
		"		log_end_msg 1",
		"		exit 1",
		"	fi",
	}
}

// successCheck is failCheck plus a success log for actions that
// complete at this point.
func successCheck() []string {
	return append(failCheck(), "	log_end_msg 0")
}

// trimCommandArgs returns the arguments of fullCmd after the
// executable token.
func trimCommandArgs(fullCmd, execPath string) string {
	return strings.TrimSpace(fullCmd[len(execPath):])
}
