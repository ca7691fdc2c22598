// Package operations orchestrates the cleaning pipeline as a sequence of
// registered steps: discover input fragments, clean each dataset, export the
// cleaned part files, and summarize the run.
//
// Steps share an OperationState. Each step transitions through pending,
// active and completed/failed, and execution stops at the first failed step.
// Independent datasets inside the clean step run concurrently; the step
// sequence itself is strictly ordered.
package operations
