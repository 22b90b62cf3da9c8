/*
Package pathwise is a dialogue traversal engine with evidence-based skill
inference, designed for building branching career-exploration narratives.

It separates the narrative graph (authored nodes and choices), the player's
traversal state (flags, knowledge, relationships) and the evidence pipeline
that turns choices into justified skill demonstrations and ranked career
matches. This hexagonal layout lets the engine be embedded in any interface:
CLI, HTTP server, or a custom frontend.

# Concept

Pathwise treats a story as a graph of dialogue nodes. Each choice a player
makes is applied as a pure state transition (the input state is never
mutated) and simultaneously mined for evidence: which competencies did this
decision demonstrate, and why? Evidence accumulates in a retention-bounded
store and is matched against a career catalog on demand.

# Key Features

  - Deterministic traversal: the same state and choice always produce the
    same transition, including contextual fallback for broken targets.
  - Idempotent node effects: re-entering a node through a cycle never
    double-applies its effects.
  - Evidence, not points: every skill claim carries the scene, the choice
    text and a human-readable justification.
  - Degradation over failure: persistence problems surface as warnings; the
    in-memory session always survives.

# Usage

Initialize the engine with a YAML graph file, or inject a custom loader:

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/pathwise/pathwise"
	)

	func main() {
		engine, err := pathwise.New("content/story.yaml")
		if err != nil {
			log.Fatal(err)
		}

		session, err := engine.Session(context.Background(), "player-1")
		if err != nil {
			log.Fatal(err)
		}

		runner := pathwise.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		if err := runner.Run(context.Background(), session); err != nil {
			log.Fatal(err)
		}
	}

For servers, use Engine.Session per player and Session.Apply per choice; see
the internal/adapters/http package wiring in cmd/pathwise.
*/
package pathwise
