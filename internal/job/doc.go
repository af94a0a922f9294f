// Package job runs external programs as supervised Jobs and captures their
// output to get it later or to have a log follow it live.
//
// A Job launches one process, drains its stdout and stderr incrementally,
// decodes the bytes per channel, and records everything the process printed
// or the job reported about it in an ordered, categorized history. Callers
// observe a run through registered listeners and the Done channel; a Job
// never blocks its caller and never raises for process-level failures.
//
// A Manager tracks Jobs by UUID so callers can look them up and stop
// everything on shutdown.
package job
