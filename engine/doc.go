// Package engine drives workflow execution: a frontier queue seeded with
// the start node, conditional edge evaluation against each node's output
// and deterministic collection of results.
//
// Each frontier round invokes its entries concurrently (bounded by
// configuration) but records outputs in enqueue order, so repeated runs of
// the same graph with deterministic executors produce identical output
// sequences. A failing node never aborts the run; its failure is converted
// into an error-text message that flows through edge conditions like any
// other output.
package engine
