package srs

import (
	"math"
	"time"

	"github.com/lexago/lexago-api/internal/domain"
)

// clampQuality forces a quality rating into [0, params.MaxQuality].
// Out-of-range input is clamped rather than rejected; callers that want to
// treat it as misuse must validate before reaching the algorithm.
func clampQuality(quality int, params *Params) int {
	if quality < 0 {
		return 0
	}
	if quality > params.MaxQuality {
		return params.MaxQuality
	}
	return quality
}

// calculateNewEaseFactor applies the SM-2 ease adjustment for a successful
// review:
//
//	ef' = ef + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// A perfect rating (5) raises the ease by 0.1; the minimum passing rating (3)
// lowers it by 0.14. The result is clamped to [MinEaseFactor, MaxEaseFactor].
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	miss := float64(params.MaxQuality - quality)
	newEF := currentEF + (0.1 - miss*(0.08+miss*0.02))

	return clampEaseFactor(newEF, params)
}

// calculateFailureEaseFactor applies the failed-review penalty.
func calculateFailureEaseFactor(currentEF float64, params *Params) float64 {
	return clampEaseFactor(currentEF-params.FailureEasePenalty, params)
}

func clampEaseFactor(ef float64, params *Params) float64 {
	if ef < params.MinEaseFactor {
		return params.MinEaseFactor
	}
	if ef > params.MaxEaseFactor {
		return params.MaxEaseFactor
	}
	return ef
}

// calculateNewInterval determines the next interval after a successful review.
// The first two successes use fixed steps (1 day, then 6); afterwards the
// interval grows by the ease factor, rounded to whole days.
func calculateNewInterval(
	currentInterval int,
	repetitionCount int,
	easeFactor float64,
	params *Params,
) int {
	switch {
	case repetitionCount == 0:
		return params.FirstIntervalDays
	case repetitionCount == 1:
		return params.SecondIntervalDays
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// ApplyReview computes the card state after a review with the given quality
// rating. It follows an immutable update pattern: the input card is never
// modified, a fresh copy carrying the new state is returned.
//
// Success path (quality >= PassThreshold): the correct counter and streak
// advance, the interval follows the fixed-step-then-ease progression, the
// repetition count increments, and the ease factor is adjusted by the SM-2
// formula.
//
// Failure path: the incorrect counter advances, streak and repetition count
// reset, the interval drops back to one day, and the ease factor takes the
// failure penalty.
//
// Both paths stamp LastReviewedAt, schedule NextReviewAt interval days from
// now, and recompute maturity.
func ApplyReview(card *domain.Card, quality int, now time.Time, params *Params) *domain.Card {
	next := card.Clone()
	quality = clampQuality(quality, params)

	if quality >= params.PassThreshold {
		next.CorrectCount++
		next.Streak++
		next.IntervalDays = calculateNewInterval(
			card.IntervalDays,
			card.RepetitionCount,
			card.EaseFactor,
			params,
		)
		next.RepetitionCount++
		next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, quality, params)
	} else {
		next.IncorrectCount++
		next.Streak = 0
		next.RepetitionCount = 0
		next.IntervalDays = 1
		next.EaseFactor = calculateFailureEaseFactor(card.EaseFactor, params)
	}

	next.LastReviewedAt = now
	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	next.IsMature = next.IntervalDays >= params.MatureIntervalDays
	next.UpdatedAt = now

	return next
}
