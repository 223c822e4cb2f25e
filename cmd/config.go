package cmd

const DESCRIPTION = `
Reveil is an alarm clock daemon for machines that sleep.
It keeps your alarms in a plain JSON file, arms the nearest
one into the RTC wake register so the machine wakes up from
suspend in time, and notifies connected clients when an
alarm fires.
`

const (
	DaemonDescription = `The daemon command runs the alarm daemon in the
foreground. It loads the alarm DB, arms the RTC wake timer
and serves client connections on a unix socket until it
receives SIGTERM or SIGINT.

Example:
        reveil daemon

`
	AddDescription = `The add command registers a new enabled alarm with the
daemon. The wake instant is given either as an absolute
time (--at "2006-01-02 15:04") or as a duration from now
(--in 8h30m). Repetition is optional: --every-days N,
--days mon,tue,... or --cron "30 6 * * 1-5".

Example:
        reveil add --at "2026-09-01 06:30" --days mon,tue,wed,thu,fri --label work

`
	RemoveDescription = `The remove command deletes an alarm using its unique id
which you can retrieve by using the "reveil list" command.

Example:
        reveil remove <alarm id>

`
	EnableDescription = `The enable and disable commands toggle an alarm without
deleting it. A disabled alarm keeps its deadline and repeat
rule but never fires and never arms the RTC.

Example:
        reveil disable <alarm id>

`
	ListDescription = `The list command displays all configured alarms with their
unique ids, deadlines, repeat rules and enabled state.

Example:
        reveil list

`
	ListenDescription = `The listen command subscribes to the daemon and prints a
line for every alarm that fires, until interrupted.

Example:
        reveil listen

`
)
