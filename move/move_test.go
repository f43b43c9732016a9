package move

import (
	"testing"

	"github.com/matryer/is"
)

type coordTestStruct struct {
	col    int
	row    int
	output string
}

var coordTests = []coordTestStruct{
	{0, 0, "a1"},
	{4, 4, "e5"},
	{8, 8, "i9"},
	{8, 0, "i1"},
	{2, 7, "c8"},
}

func TestToBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		calc := ToBoardGameCoords(tc.col, tc.row)
		if calc != tc.output {
			t.Errorf("For col=%v row=%v got %v, expected %v",
				tc.col, tc.row, calc, tc.output)
		}
	}
}

func TestFromBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		col, row, err := FromBoardGameCoords(tc.output)
		if err != nil {
			t.Errorf("unexpected error for %v: %v", tc.output, err)
			continue
		}
		if col != tc.col || row != tc.row {
			t.Errorf("For %v got col=%v row=%v, expected col=%v row=%v",
				tc.output, col, row, tc.col, tc.row)
		}
	}
}

func TestFromBoardGameCoordsBad(t *testing.T) {
	is := is.New(t)
	for _, c := range []string{"", "j1", "a0", "a10", "55", "e"} {
		_, _, err := FromBoardGameCoords(c)
		is.True(err != nil)
	}
}

func TestFromNumericCoords(t *testing.T) {
	is := is.New(t)
	m, err := FromNumericCoords("4", "7")
	is.NoErr(err)
	is.Equal(m, New(4, 7))

	_, err = FromNumericCoords("9", "0")
	is.True(err != nil)
	_, err = FromNumericCoords("x", "0")
	is.True(err != nil)
}

func TestWithScore(t *testing.T) {
	is := is.New(t)
	m := New(1, 2)
	s := m.WithScore(33)
	is.Equal(m.Score, 0)
	is.Equal(s.Score, 33)
	is.True(m.SameCell(s))
	is.Equal(s.ShortDescription(), "b3")
}
