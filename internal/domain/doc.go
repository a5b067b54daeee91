// Package domain contains the core entities of the learning engine: cards
// (per-learner spaced-repetition state), questions, answer payloads, grading
// results, responses, and users. Entities validate themselves and carry no
// persistence or transport concerns.
package domain
