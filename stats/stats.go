// Package stats keeps running statistics over self-play results.
package stats

import (
	"fmt"
	"math"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm).
type Statistic struct {
	totalIterations int
	last            float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
	}
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

// StandardError returns the standard error of the statistic.
func (s *Statistic) StandardError() float64 {
	if s.totalIterations == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.totalIterations))
}

func (s *Statistic) Iterations() int {
	return s.totalIterations
}

// ConfidenceInterval returns the mean plus or minus the margin for the
// given confidence level, in percent.
func (s *Statistic) ConfidenceInterval(confidence float64) (float64, float64) {
	margin := ZVal(confidence) * s.StandardError()
	return s.Mean() - margin, s.Mean() + margin
}

// Outcomes counts finished games. Each game also feeds a Statistic with
// 1 for a player 1 win, 0 for a player 2 win and 0.5 for a draw, so the
// mean is player 1's score.
type Outcomes struct {
	P1Wins int
	P2Wins int
	Draws  int
	score  Statistic
}

func (o *Outcomes) AddP1Win() {
	o.P1Wins++
	o.score.Push(1)
}

func (o *Outcomes) AddP2Win() {
	o.P2Wins++
	o.score.Push(0)
}

func (o *Outcomes) AddDraw() {
	o.Draws++
	o.score.Push(0.5)
}

func (o *Outcomes) Games() int {
	return o.score.Iterations()
}

// P1Score is player 1's mean score, counting draws as half.
func (o *Outcomes) P1Score() *Statistic {
	return &o.score
}

func (o *Outcomes) String() string {
	lo, hi := o.score.ConfidenceInterval(95)
	return fmt.Sprintf("games: %d p1: %d p2: %d draws: %d p1-score: %.3f (95%%: %.3f-%.3f)",
		o.Games(), o.P1Wins, o.P2Wins, o.Draws, o.score.Mean(), lo, hi)
}
