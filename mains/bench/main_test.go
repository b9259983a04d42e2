package main

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/clanpj/pichu/engine"
)

func TestSuitePasses(t *testing.T) {
	searchCfg := engine.DefaultSearchConfig()
	searchCfg.MaxDepth = 3
	searchCfg.StrictDrawPrevention = true
	results, err := runSuite(suite, engine.DefaultEvaluationConfig(), searchCfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if !r.passed() {
			t.Errorf("%s: played %s (pv %s)", r.problem.Name, r.move, r.info.PVString())
		}
	}
}

func TestRunSuiteRejectsBadFEN(t *testing.T) {
	problems := []problemT{{Name: "broken", FEN: "8/8/8 w - - 0 1"}}
	if _, err := runSuite(problems, engine.DefaultEvaluationConfig(), engine.DefaultSearchConfig(), zerolog.Nop()); err == nil {
		t.Errorf("Expected an error for a bad FEN")
	}
}
