package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959964) < 1e-4)
	is.True(math.Abs(ZVal(99)-2.575829) < 1e-4)
}

func TestOutcomes(t *testing.T) {
	is := is.New(t)
	o := &Outcomes{}
	o.AddP1Win()
	o.AddP1Win()
	o.AddP2Win()
	o.AddDraw()
	is.Equal(o.Games(), 4)
	is.True(FuzzyEqual(o.P1Score().Mean(), 0.625))

	lo, hi := o.P1Score().ConfidenceInterval(95)
	is.True(lo < 0.625 && hi > 0.625)
	is.True(FuzzyEqual(hi-0.625, 0.625-lo))
	is.True(strings.HasPrefix(o.String(), "games: 4 p1: 2 p2: 1 draws: 1"))
}
