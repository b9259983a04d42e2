package engine

import (
	"github.com/rs/zerolog"

	"github.com/clanpj/pichu/board"
)

// Piece values in centipawns
const nothingVal = 0
const pawnVal = 100
const knightVal = 300
const bishopVal = 300
const rookVal = 500
const queenVal = 900
const kingVal = 0

var pieceVals = [board.NPieces]int{
	nothingVal,
	pawnVal,
	knightVal,
	bishopVal,
	rookVal,
	queenVal,
	kingVal}

func materialCp(pos *board.Position, color board.Color) int {
	cp := 0
	for piece := board.Pawn; piece < board.King; piece++ {
		cp += board.PopCount(pos.Pieces(color, piece)) * pieceVals[piece]
	}
	return cp
}

// A named evaluation term. raw computes the unweighted value for one color;
// penalties come back negative so that every weight is a positive magnitude.
type evalTerm struct {
	name string
	raw  func(s *evalState, color board.Color) float64
}

var evalTerms = []evalTerm{
	{"checkmate_bonus", checkmateTerm},
	{"mate_threat_bonus", mateThreatTerm},
	{"draw_penalty", drawTerm},
	{"stalemate_penalty", stalemateTerm},
	{"material_weight", materialTerm},
	{"king_safety_bonus", pawnShieldTerm},
	{"check_penalty", inCheckTerm},
	{"giving_check_bonus", givingCheckTerm},
	{"king_attack_bonus", kingAttackTerm},
	{"coordination_bonus", coordinationTerm},
	{"center_control_bonus", centerControlTerm},
	{"doubled_pawn_penalty", doubledPawnsTerm},
	{"isolated_pawn_penalty", isolatedPawnsTerm},
	{"backward_pawn_penalty", backwardPawnsTerm},
	{"passed_pawn_bonus", passedPawnsTerm},
	{"pawn_majority_bonus", pawnMajorityTerm},
	{"bishop_pair_bonus", bishopPairTerm},
	{"knight_pair_bonus", knightPairTerm},
	{"bishop_vision_bonus", bishopVisionTerm},
	{"rook_coordination_bonus", rookCoordinationTerm},
	{"stacked_rooks_bonus", stackedRooksTerm},
	{"rook_seventh_bonus", rookSeventhTerm},
	{"castled_bonus", castledTerm},
	{"castling_rights_lost_penalty", castlingRightsLostTerm},
	{"castling_rights_bonus", castlingRightsTerm},
	{"mobility_bonus", mobilityTerm},
	{"mobility_pawn_attack_penalty", mobilityPawnAttackTerm},
	{"undeveloped_piece_penalty", undevelopedTerm},
	{"early_queen_penalty", earlyQueenTerm},
	{"knight_outpost_bonus", knightOutpostTerm},
	{"capture_bonus", captureTerm},
	{"hanging_piece_bonus", hangingEnemyTerm},
	{"hanging_piece_penalty", hangingOwnTerm},
	{"en_passant_bonus", enPassantTerm},
	{"promotion_bonus", promotionTerm},
	{"open_file_bonus", openFileTerm},
	{"semi_open_file_bonus", semiOpenFileTerm},
	{"exposed_king_penalty", exposedKingTerm},
	{"tempo_bonus", tempoTerm},
}

type weightedTerm struct {
	weight float64
	evalTerm
}

// Evaluator scores positions with a fixed EvaluationConfig.
type Evaluator struct {
	cfg    EvaluationConfig
	terms  []weightedTerm
	logger zerolog.Logger
}

func NewEvaluator(cfg EvaluationConfig, logger zerolog.Logger) *Evaluator {
	e := &Evaluator{cfg: cfg, logger: logger}
	for _, term := range evalTerms {
		if w := cfg.Weights.Get(term.name); w != 0 {
			e.terms = append(e.terms, weightedTerm{weight: w, evalTerm: term})
		}
	}
	return e
}

func (e *Evaluator) Config() EvaluationConfig { return e.cfg }

// Per-position scratch state shared by the terms of both colors
type evalState struct {
	pos   *board.Position
	phase float64

	attacks     [board.NColors]uint64
	attacksDone [board.NColors]bool

	legalMoves []board.Move
	movesDone  bool
	inCheck    int8 // 0 unknown, 1 no, 2 yes
}

func newEvalState(pos *board.Position, phase float64) *evalState {
	return &evalState{pos: pos, phase: phase}
}

func (s *evalState) attacked(color board.Color) uint64 {
	if !s.attacksDone[color] {
		s.attacks[color] = s.pos.Attacks(color)
		s.attacksDone[color] = true
	}
	return s.attacks[color]
}

func (s *evalState) moves() []board.Move {
	if !s.movesDone {
		s.legalMoves = s.pos.LegalMoves()
		s.movesDone = true
	}
	return s.legalMoves
}

func (s *evalState) sideInCheck() bool {
	if s.inCheck == 0 {
		s.inCheck = 1
		if s.pos.InCheck() {
			s.inCheck = 2
		}
	}
	return s.inCheck == 2
}

func (s *evalState) toMove(color board.Color) bool { return s.pos.SideToMove() == color }

func (s *evalState) checkmate() bool { return len(s.moves()) == 0 && s.sideInCheck() }

func (s *evalState) stalemate() bool { return len(s.moves()) == 0 && !s.sideInCheck() }

func (s *evalState) drawn() bool {
	return s.stalemate() || s.pos.IsInsufficientMaterial() || s.pos.IsRepetition(board.DrawRepetitions)
}

func corrupt(pos *board.Position) bool {
	return pos.Pieces(board.White, board.King) == 0 || pos.Pieces(board.Black, board.King) == 0
}

// Evaluate returns the absolute score of color: positive is good for color.
func (e *Evaluator) Evaluate(pos *board.Position, color board.Color, phase float64) float64 {
	if corrupt(pos) {
		e.logger.Warn().Str("fen", pos.FEN()).Msg("corrupt-position")
		return 0.0
	}
	return e.evaluate(newEvalState(pos, phase), color)
}

func (e *Evaluator) evaluate(s *evalState, color board.Color) float64 {
	score := 0.0
	for _, term := range e.terms {
		score += term.weight * term.raw(s, color)
	}
	if e.cfg.UsePST && e.cfg.PSTWeight != 0 {
		phase := 0.0
		if e.cfg.PhaseAware {
			phase = s.phase
		}
		score += e.cfg.PSTWeight * PSTScore(s.pos, color, phase)
	}
	return score
}

// EvaluateFromPerspective returns own minus opponent score, scaled by the scoring modifier.
// It is exactly antisymmetric in player.
func (e *Evaluator) EvaluateFromPerspective(pos *board.Position, player board.Color) float64 {
	if corrupt(pos) {
		e.logger.Warn().Str("fen", pos.FEN()).Msg("corrupt-position")
		return 0.0
	}
	s := newEvalState(pos, GamePhase(pos))
	white := e.evaluate(s, board.White)
	black := e.evaluate(s, board.Black)
	if player == board.White {
		return (white - black) * e.cfg.ScoringModifier
	}
	return (black - white) * e.cfg.ScoringModifier
}

func checkmateTerm(s *evalState, color board.Color) float64 {
	if s.toMove(color.Other()) && s.checkmate() {
		return 1
	}
	return 0
}

// Drawn positions are bad for whoever was ahead on material
func drawTerm(s *evalState, color board.Color) float64 {
	if materialCp(s.pos, color) > materialCp(s.pos, color.Other()) && s.drawn() {
		return -1
	}
	return 0
}

// Penalise stalemating the opponent
func stalemateTerm(s *evalState, color board.Color) float64 {
	if s.toMove(color.Other()) && s.stalemate() {
		return -1
	}
	return 0
}

func materialTerm(s *evalState, color board.Color) float64 {
	return float64(materialCp(s.pos, color)) / 100
}

func inCheckTerm(s *evalState, color board.Color) float64 {
	if s.toMove(color) && s.sideInCheck() {
		return -1
	}
	return 0
}

func givingCheckTerm(s *evalState, color board.Color) float64 {
	if s.toMove(color.Other()) && s.sideInCheck() {
		return 1
	}
	return 0
}

func tempoTerm(s *evalState, color board.Color) float64 {
	if s.toMove(color) && len(s.moves()) > 0 {
		return 1
	}
	return 0
}
