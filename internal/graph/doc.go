// Package graph defines the canonical causal-loop graph and the
// normalizer that builds one from loosely structured input.
//
// A causal graph is a set of named variables, each holding a value and
// a baseline in [0,10], plus a list of directed weighted edges between
// variable ids. Input arrives as decoded JSON or YAML of almost any
// shape; [Normalize] runs a fixed, ordered set of shape detectors and
// always produces a usable graph, falling back to the built-in
// [Template] when the input yields no variables or no edges.
package graph
