package main

import (
	"errors"
	"testing"

	"github.com/clanpj/pichu/board"
	"github.com/clanpj/pichu/engine"
)

func TestSetupRejectsBadArguments(t *testing.T) {
	if _, _, err := setup("8/8/8 w - - 0 1", "negascout", 4); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("Expected ErrInvalidFEN, got %v", err)
	}
	if _, _, err := setup(board.Startpos, "mcts", 4); err == nil {
		t.Errorf("Expected an error for an unknown algorithm")
	}
}

func TestSetup(t *testing.T) {
	pos, cfg, err := setup(board.Startpos, "pvs", 5)
	if err != nil {
		t.Fatal(err)
	}
	if pos.FEN() != board.Startpos {
		t.Errorf("Expected the start position, got %s", pos.FEN())
	}
	if cfg.Algorithm != engine.AlgorithmNegascout || cfg.Depth != 5 || cfg.MaxDepth != 5 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}
