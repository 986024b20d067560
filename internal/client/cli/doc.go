// Package cli implements the interactive ResourceHub client: a REPL with
// commands for logging in, typeahead search over published resources,
// uploading files (simple or chunked, by size), and publishing uploads as
// resources.
//
// The REPL loop itself (see repl.go) is decoupled from App through execIface
// so command dispatch can be tested with a stub.
package cli
