// Package cli implements the nycfree-sync command-line interface.
//
// Two subcommands cover the pipeline: "sync" rebuilds the target Google
// Calendar from current listings, and "fetch" is a credential-free dry run
// that prints (or exports as .ics) the drafts a sync would insert.
package cli
