// Package cycles enumerates the feedback loops of a causal graph and
// classifies each as reinforcing or balancing.
//
// Detection runs on the raw edge list, deliberately including ids that
// never appear in the variable set: the qualitative loop structure of
// a causal diagram is read independently of which variables the
// integrator actually advances. Every elementary cycle is reported
// exactly once, keyed by the lexicographically smallest rotation of
// its node sequence, in discovery order.
package cycles
