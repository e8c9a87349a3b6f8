// Package reconcile implements a two-pass approximate reconciliation engine
// for free-text name records drawn from two unrelated sources. Records are
// canonicalized into a punctuation- and space-free lowercase key, matched
// exactly through a hash index first, and the residue is then matched with a
// bounded fuzzy similarity scorer. The result is a read-only Report with one
// terminal outcome per input record.
//
// The engine is deterministic, single-threaded and fully in-memory: the
// caller materializes both record sequences up front and consumes the Report
// afterwards. Absence of a match is a normal outcome, never an error.
package reconcile
