package main

import (
	"strings"
	"testing"
	"time"

	"github.com/clanpj/pichu/engine"
)

func TestParseGo(t *testing.T) {
	tests := []struct {
		line     string
		expected engine.ClockState
	}{
		{"wtime 5000 btime 4000 winc 100 binc 200 movestogo 20", engine.ClockState{
			WhiteTime: 5 * time.Second, BlackTime: 4 * time.Second,
			WhiteInc: 100 * time.Millisecond, BlackInc: 200 * time.Millisecond, MovesToGo: 20}},
		{"ponder wtime 1000 btime 2000", engine.ClockState{WhiteTime: time.Second, BlackTime: 2 * time.Second}},
		{"searchmoves e2e4 d2d4 wtime 1000", engine.ClockState{WhiteTime: time.Second}},
		{"depth 6 searchmoves g1f3", engine.ClockState{Depth: 6}},
		{"movetime 250", engine.ClockState{MoveTime: 250 * time.Millisecond}},
		{"infinite", engine.ClockState{Infinite: true}},
		{"", engine.ClockState{}},
	}
	for _, test := range tests {
		clock, err := parseGo(strings.Fields(test.line))
		if err != nil {
			t.Errorf("go %s: unexpected error %v", test.line, err)
			continue
		}
		if clock != test.expected {
			t.Errorf("go %s: expected %+v, got %+v", test.line, test.expected, clock)
		}
	}
}

func TestParseGoMalformed(t *testing.T) {
	for _, line := range []string{"wtime", "wtime soon", "btime 100 winc"} {
		if _, err := parseGo(strings.Fields(line)); err == nil {
			t.Errorf("go %s: expected an error", line)
		}
	}
}

func TestUCIScore(t *testing.T) {
	tests := map[float64]string{
		1.234:                   "cp 123",
		-0.5:                    "cp -50",
		engine.MateScore - 1:    "mate 1",
		-(engine.MateScore - 2): "mate -1",
		engine.MateScore - 3:    "mate 2",
	}
	for score, expected := range tests {
		if got := uciScore(score); got != expected {
			t.Errorf("%f: expected %q, got %q", score, expected, got)
		}
	}
}
