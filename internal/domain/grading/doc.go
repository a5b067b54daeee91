// Package grading scores learner answers against assessment questions. It
// dispatches on the question type to a scoring strategy (multiple choice,
// cloze, matching, reorder, free writing), shares a text normalizer across
// all strategies, and consults an injected morphology resolver to recognize
// answers that use the right lemma in the wrong inflected form.
//
// Grading degrades gracefully by contract: every failure mode, including
// malformed payloads and unknown question types, is a valid zero-credit
// GradeResult, never an error.
package grading
