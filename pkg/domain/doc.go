// Package domain contains the pure types of the Pathwise core: the dialogue
// graph (nodes, choices, gates), the per-player session state, the skill
// evidence records produced by traversal, and the career matching outputs.
//
// Nothing in this package performs I/O. Types here are shared between the
// traversal runtime, the evidence pipeline and the adapters; they are the
// vocabulary of the whole module.
package domain
