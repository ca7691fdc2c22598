// Package dataprocessing implements the cleaning pipeline core: reading raw
// dataset fragments, normalizing their schema onto the canonical record,
// canonicalizing field values, removing duplicates, validating constraints
// and aggregating run statistics.
//
// Each dataset flows through the stages in order:
//
//	Reader -> Schema Normalizer -> Canonicalizer -> Deduplicator -> Validator
//
// Row-level failures never abort a run. They are converted to typed errors,
// counted by kind, and the offending row is skipped. The only fatal input
// condition is a dataset with no input files at all.
package dataprocessing
