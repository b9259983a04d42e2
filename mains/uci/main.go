// UCI driver for the pichu engine

package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/clanpj/pichu/board"
	"github.com/clanpj/pichu/book"
	"github.com/clanpj/pichu/engine"
)

var VersionString = "0.1 Pichu " + "CPU " + runtime.GOOS + "-" + runtime.GOARCH

type uciT struct {
	logger    zerolog.Logger
	evalCfg   engine.EvaluationConfig
	searchCfg engine.SearchConfig
	book      *book.Book

	// Rebuilt lazily after setoption
	eng   *engine.Engine
	dirty bool

	// Current game as sent by "position"; each search replays it into a fresh board
	fen   string
	moves []string
	pos   *board.Position

	// Shared with the search goroutine
	stop      atomic.Bool
	searching sync.WaitGroup
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.InfoLevel).With().Timestamp().Logger()
	u := &uciT{
		logger:    logger,
		evalCfg:   engine.DefaultEvaluationConfig(),
		searchCfg: engine.DefaultSearchConfig(),
		book:      book.Default(),
		dirty:     true,
		fen:       board.Startpos,
		pos:       board.NewPosition(),
	}
	u.loop(bufio.NewScanner(os.Stdin))
}

func (u *uciT) engine() *engine.Engine {
	if u.dirty || u.eng == nil {
		u.eng = engine.NewEngine(u.evalCfg, u.searchCfg,
			engine.WithLogger(u.logger), engine.WithBook(u.book), engine.WithInfoHandler(printInfo))
		u.eng.Reset(u.pos)
		u.dirty = false
	}
	return u.eng
}

func (u *uciT) loop(scanner *bufio.Scanner) {
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.printOptions()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.halt()
			u.fen, u.moves = board.Startpos, nil
			u.pos = board.NewPosition()
			u.engine().Reset(u.pos)
		case "quit":
			u.halt()
			return
		case "setoption":
			u.halt()
			u.setOption(tokens)
		case "position":
			u.halt()
			u.position(tokens[1:])
		case "go":
			u.halt()
			u.goSearch(tokens[1:])
		case "stop":
			u.halt()
		default:
			fmt.Println("info string Unknown command:", line)
		}
	}
}

func (u *uciT) printOptions() {
	fmt.Println("id name Pichu", VersionString)
	fmt.Println("id author Clan PJ")
	algorithms := lo.Map([]engine.Algorithm{
		engine.AlgorithmSimple, engine.AlgorithmMinimax, engine.AlgorithmNegamax, engine.AlgorithmNegascout,
		engine.AlgorithmDeepSearch, engine.AlgorithmEvaluationOnly, engine.AlgorithmRandom,
	}, func(a engine.Algorithm, _ int) string { return "var " + a.String() })
	fmt.Println("option name Algorithm type combo default", u.searchCfg.Algorithm, strings.Join(algorithms, " "))
	fmt.Println("option name Depth type spin default", u.searchCfg.Depth, "min 0 max", engine.MaxSearchDepth)
	fmt.Println("option name MaxDepth type spin default", u.searchCfg.MaxDepth, "min 0 max", engine.MaxSearchDepth)
	fmt.Println("option name QuiescenceDepth type spin default", u.searchCfg.QuiescenceDepth, "min 0 max", engine.MaxQuiescenceDepth)
	fmt.Println("option name UseQuiescence type check default", u.searchCfg.UseQuiescence)
	fmt.Println("option name UseMoveOrdering type check default", u.searchCfg.UseMoveOrdering)
	fmt.Println("option name UseBook type check default", u.searchCfg.UseBook)
	fmt.Println("option name StrictDrawPrevention type check default", u.searchCfg.StrictDrawPrevention)
	rulesets := lo.Map(engine.RulesetNames(), func(name string, _ int) string { return "var " + name })
	fmt.Println("option name Ruleset type combo default", u.evalCfg.Ruleset, strings.Join(rulesets, " "))
	for _, p := range engine.WeightParams() {
		fmt.Println("option name", p.Name, "type string default", strconv.FormatFloat(p.Get(&u.evalCfg.Weights), 'g', -1, 64))
	}
	fmt.Println("uciok")
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("not a bool: %q", s)
}

func (u *uciT) setOption(tokens []string) {
	if len(tokens) != 5 || tokens[1] != "name" || tokens[3] != "value" {
		fmt.Println("info string Malformed setoption command")
		return
	}
	name, value := strings.ToLower(tokens[2]), tokens[4]

	var err error
	setInt := func(dst *int) {
		var n int
		if n, err = strconv.Atoi(value); err == nil {
			*dst = n
		}
	}
	setBool := func(dst *bool) {
		var b bool
		if b, err = parseBool(value); err == nil {
			*dst = b
		}
	}

	switch name {
	case "algorithm":
		algorithm, ok := engine.ParseAlgorithm(value)
		if !ok {
			err = fmt.Errorf("unrecognised algorithm %q", value)
		}
		u.searchCfg.Algorithm = algorithm
	case "depth":
		setInt(&u.searchCfg.Depth)
	case "maxdepth":
		setInt(&u.searchCfg.MaxDepth)
	case "quiescencedepth":
		setInt(&u.searchCfg.QuiescenceDepth)
	case "usequiescence":
		setBool(&u.searchCfg.UseQuiescence)
	case "usemoveordering":
		setBool(&u.searchCfg.UseMoveOrdering)
	case "usebook":
		setBool(&u.searchCfg.UseBook)
	case "strictdrawprevention":
		setBool(&u.searchCfg.StrictDrawPrevention)
	case "ruleset":
		cfg, ok := engine.NewEvaluationConfig(value)
		if !ok {
			err = fmt.Errorf("unrecognised ruleset %q", value)
		}
		u.evalCfg = cfg
	default:
		var v float64
		if v, err = strconv.ParseFloat(value, 64); err == nil {
			err = u.evalCfg.Weights.Set(name, v)
		}
	}
	if err != nil {
		fmt.Println("info string Bad option", tokens[2], "(", err, ")")
		return
	}
	u.dirty = true
	fmt.Println("info string", tokens[2], "set to", value)
}

func (u *uciT) position(tokens []string) {
	if len(tokens) == 0 {
		fmt.Println("info string Malformed position command")
		return
	}
	fen := board.Startpos
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
	case "fen":
		i := lo.IndexOf(rest, "moves")
		if i < 0 {
			i = len(rest)
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		fmt.Println("info string Invalid position subcommand")
		return
	}
	var moves []string
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		moves = rest[1:]
	}
	pos, err := board.FromMoves(fen, moves)
	if err != nil {
		fmt.Println("info string Invalid position (", err, ")")
		return
	}
	u.fen, u.moves, u.pos = fen, moves, pos
}

// Subcommands of "go"; searchmoves takes every token up to the next of these
var goKeywords = []string{"searchmoves", "ponder", "wtime", "btime", "winc", "binc",
	"movestogo", "depth", "nodes", "mate", "movetime", "infinite"}

func parseGo(tokens []string) (engine.ClockState, error) {
	var clock engine.ClockState
	for i := 0; i < len(tokens); i++ {
		token := strings.ToLower(tokens[i])
		switch token {
		case "infinite":
			clock.Infinite = true
			continue
		case "ponder":
			// Pondering is not supported; search the position as given
			continue
		case "searchmoves":
			for i+1 < len(tokens) && !lo.Contains(goKeywords, strings.ToLower(tokens[i+1])) {
				i++
			}
			continue
		}
		if i+1 >= len(tokens) {
			return clock, fmt.Errorf("missing value for %s", token)
		}
		n, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return clock, fmt.Errorf("could not convert %s: %w", token, err)
		}
		i++
		ms := time.Duration(n) * time.Millisecond
		switch token {
		case "wtime":
			clock.WhiteTime = ms
		case "btime":
			clock.BlackTime = ms
		case "winc":
			clock.WhiteInc = ms
		case "binc":
			clock.BlackInc = ms
		case "movetime":
			clock.MoveTime = ms
		case "movestogo":
			clock.MovesToGo = n
		case "depth":
			clock.Depth = n
		default:
			fmt.Println("info string Unknown go subcommand", token)
		}
	}
	return clock, nil
}

func (u *uciT) goSearch(tokens []string) {
	clock, err := parseGo(tokens)
	if err != nil {
		fmt.Println("info string Malformed go command (", err, ")")
		return
	}
	eng := u.engine()
	// The search works on its own board so the loop can keep reading commands
	pos, err := board.FromMoves(u.fen, u.moves)
	if err != nil {
		fmt.Println("info string Invalid position (", err, ")")
		return
	}

	u.stop.Store(false)
	u.searching.Add(1)
	go func() {
		defer u.searching.Done()
		move := eng.SearchClock(pos, clock, u.stop.Load)
		if move == board.NoMove {
			fmt.Println("bestmove 0000")
			return
		}
		fmt.Println("bestmove", move.String())
	}()
}

// Stop any running search and wait for its bestmove
func (u *uciT) halt() {
	u.stop.Store(true)
	u.searching.Wait()
}

func uciScore(score float64) string {
	if engine.IsMateScore(score) {
		plies := int(engine.MateScore - math.Abs(score))
		moves := (plies + 1) / 2
		if score < 0 {
			moves = -moves
		}
		return fmt.Sprintf("mate %d", moves)
	}
	return fmt.Sprintf("cp %d", int(math.Round(score*100)))
}

func printInfo(info engine.SearchInfo) {
	ms := info.Elapsed.Milliseconds()
	fmt.Println("info depth", info.Depth, "score", uciScore(info.Score), "nodes", info.Nodes,
		"time", ms, "nps", info.NPS(), "pv", info.PVString())
}
