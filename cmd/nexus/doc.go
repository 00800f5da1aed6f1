// Command nexus is the CLI for the shared pendency registry: record CRUD,
// listings, maintenance, and the foreground watch daemon.
package main
