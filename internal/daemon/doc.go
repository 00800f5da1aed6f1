// Package daemon runs the background watch service: a polling loop over the
// shared record tree that fans detected changes out to in-process
// subscribers, pushes ntfy notifications, and keeps the optional SQLite
// mirror in sync. A file lock enforces one watcher per machine.
package daemon
