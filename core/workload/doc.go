// Package workload classifies judge load figures and proposes case-transfer
// suggestions. It is a heuristic classifier over externally maintained
// workload percentages, not an optimizer: suggestions are hints that the
// caller must validate against eligibility and conflicts before acting.
package workload
