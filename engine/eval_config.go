package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownWeight = errors.New("engine: unknown evaluation weight")

// One weight per evaluation term. A zero weight disables the term.
type EvalWeights struct {
	CheckmateBonus            float64
	MateThreatBonus           float64
	DrawPenalty               float64
	StalematePenalty          float64
	Material                  float64
	KingSafetyBonus           float64
	CheckPenalty              float64
	GivingCheckBonus          float64
	KingAttackBonus           float64
	CoordinationBonus         float64
	CenterControlBonus        float64
	DoubledPawnPenalty        float64
	IsolatedPawnPenalty       float64
	BackwardPawnPenalty       float64
	PassedPawnBonus           float64
	PawnMajorityBonus         float64
	BishopPairBonus           float64
	KnightPairBonus           float64
	BishopVisionBonus         float64
	RookCoordinationBonus     float64
	StackedRooksBonus         float64
	RookSeventhBonus          float64
	CastledBonus              float64
	CastlingRightsLostPenalty float64
	CastlingRightsBonus       float64
	MobilityBonus             float64
	MobilityPawnAttackPenalty float64
	UndevelopedPiecePenalty   float64
	EarlyQueenPenalty         float64
	KnightOutpostBonus        float64
	CaptureBonus              float64
	HangingPieceBonus         float64
	HangingPiecePenalty       float64
	EnPassantBonus            float64
	PromotionBonus            float64
	OpenFileBonus             float64
	SemiOpenFileBonus         float64
	ExposedKingPenalty        float64
	TempoBonus                float64
}

type WeightParam struct {
	Name  string
	field func(w *EvalWeights) *float64
}

func (p WeightParam) Get(w *EvalWeights) float64 { return *p.field(w) }

func (p WeightParam) Set(w *EvalWeights, val float64) { *p.field(w) = val }

var weightParams = make([]WeightParam, 0, 64)
var weightIndex = make(map[string]int)

func registerWeight(name string, field func(w *EvalWeights) *float64) {
	weightIndex[name] = len(weightParams)
	weightParams = append(weightParams, WeightParam{Name: name, field: field})
}

func init() {
	registerWeight("checkmate_bonus", func(w *EvalWeights) *float64 { return &w.CheckmateBonus })
	registerWeight("mate_threat_bonus", func(w *EvalWeights) *float64 { return &w.MateThreatBonus })
	registerWeight("draw_penalty", func(w *EvalWeights) *float64 { return &w.DrawPenalty })
	registerWeight("stalemate_penalty", func(w *EvalWeights) *float64 { return &w.StalematePenalty })
	registerWeight("material_weight", func(w *EvalWeights) *float64 { return &w.Material })
	registerWeight("king_safety_bonus", func(w *EvalWeights) *float64 { return &w.KingSafetyBonus })
	registerWeight("check_penalty", func(w *EvalWeights) *float64 { return &w.CheckPenalty })
	registerWeight("giving_check_bonus", func(w *EvalWeights) *float64 { return &w.GivingCheckBonus })
	registerWeight("king_attack_bonus", func(w *EvalWeights) *float64 { return &w.KingAttackBonus })
	registerWeight("coordination_bonus", func(w *EvalWeights) *float64 { return &w.CoordinationBonus })
	registerWeight("center_control_bonus", func(w *EvalWeights) *float64 { return &w.CenterControlBonus })
	registerWeight("doubled_pawn_penalty", func(w *EvalWeights) *float64 { return &w.DoubledPawnPenalty })
	registerWeight("isolated_pawn_penalty", func(w *EvalWeights) *float64 { return &w.IsolatedPawnPenalty })
	registerWeight("backward_pawn_penalty", func(w *EvalWeights) *float64 { return &w.BackwardPawnPenalty })
	registerWeight("passed_pawn_bonus", func(w *EvalWeights) *float64 { return &w.PassedPawnBonus })
	registerWeight("pawn_majority_bonus", func(w *EvalWeights) *float64 { return &w.PawnMajorityBonus })
	registerWeight("bishop_pair_bonus", func(w *EvalWeights) *float64 { return &w.BishopPairBonus })
	registerWeight("knight_pair_bonus", func(w *EvalWeights) *float64 { return &w.KnightPairBonus })
	registerWeight("bishop_vision_bonus", func(w *EvalWeights) *float64 { return &w.BishopVisionBonus })
	registerWeight("rook_coordination_bonus", func(w *EvalWeights) *float64 { return &w.RookCoordinationBonus })
	registerWeight("stacked_rooks_bonus", func(w *EvalWeights) *float64 { return &w.StackedRooksBonus })
	registerWeight("rook_seventh_bonus", func(w *EvalWeights) *float64 { return &w.RookSeventhBonus })
	registerWeight("castled_bonus", func(w *EvalWeights) *float64 { return &w.CastledBonus })
	registerWeight("castling_rights_lost_penalty", func(w *EvalWeights) *float64 { return &w.CastlingRightsLostPenalty })
	registerWeight("castling_rights_bonus", func(w *EvalWeights) *float64 { return &w.CastlingRightsBonus })
	registerWeight("mobility_bonus", func(w *EvalWeights) *float64 { return &w.MobilityBonus })
	registerWeight("mobility_pawn_attack_penalty", func(w *EvalWeights) *float64 { return &w.MobilityPawnAttackPenalty })
	registerWeight("undeveloped_piece_penalty", func(w *EvalWeights) *float64 { return &w.UndevelopedPiecePenalty })
	registerWeight("early_queen_penalty", func(w *EvalWeights) *float64 { return &w.EarlyQueenPenalty })
	registerWeight("knight_outpost_bonus", func(w *EvalWeights) *float64 { return &w.KnightOutpostBonus })
	registerWeight("capture_bonus", func(w *EvalWeights) *float64 { return &w.CaptureBonus })
	registerWeight("hanging_piece_bonus", func(w *EvalWeights) *float64 { return &w.HangingPieceBonus })
	registerWeight("hanging_piece_penalty", func(w *EvalWeights) *float64 { return &w.HangingPiecePenalty })
	registerWeight("en_passant_bonus", func(w *EvalWeights) *float64 { return &w.EnPassantBonus })
	registerWeight("promotion_bonus", func(w *EvalWeights) *float64 { return &w.PromotionBonus })
	registerWeight("open_file_bonus", func(w *EvalWeights) *float64 { return &w.OpenFileBonus })
	registerWeight("semi_open_file_bonus", func(w *EvalWeights) *float64 { return &w.SemiOpenFileBonus })
	registerWeight("exposed_king_penalty", func(w *EvalWeights) *float64 { return &w.ExposedKingPenalty })
	registerWeight("tempo_bonus", func(w *EvalWeights) *float64 { return &w.TempoBonus })
}

// All registered weights, in registration order
func WeightParams() []WeightParam {
	return weightParams
}

// Get returns the named weight, or 0.0 for names that are not registered.
func (w *EvalWeights) Get(name string) float64 {
	i, ok := weightIndex[strings.ToLower(name)]
	if !ok {
		return 0.0
	}
	return weightParams[i].Get(w)
}

func (w *EvalWeights) Set(name string, val float64) error {
	i, ok := weightIndex[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWeight, name)
	}
	weightParams[i].Set(w, val)
	return nil
}

const (
	DefaultRuleset      = "default_evaluation"
	SimpleRuleset       = "simple_evaluation"
	AggressiveRuleset   = "aggressive_evaluation"
	ConservativeRuleset = "conservative_evaluation"
	NullRuleset         = "null_evaluation"
)

var defaultWeights = EvalWeights{
	CheckmateBonus:            1000.0,
	MateThreatBonus:           2.0,
	DrawPenalty:               0.5,
	StalematePenalty:          5.0,
	Material:                  1.0,
	KingSafetyBonus:           0.15,
	CheckPenalty:              0.3,
	GivingCheckBonus:          0.2,
	KingAttackBonus:           0.05,
	CoordinationBonus:         0.03,
	CenterControlBonus:        0.05,
	DoubledPawnPenalty:        0.2,
	IsolatedPawnPenalty:       0.15,
	BackwardPawnPenalty:       0.1,
	PassedPawnBonus:           1.0,
	PawnMajorityBonus:         0.1,
	BishopPairBonus:           0.3,
	KnightPairBonus:           0.1,
	BishopVisionBonus:         0.1,
	RookCoordinationBonus:     0.15,
	StackedRooksBonus:         0.2,
	RookSeventhBonus:          0.25,
	CastledBonus:              0.3,
	CastlingRightsLostPenalty: 0.25,
	CastlingRightsBonus:       0.05,
	MobilityBonus:             0.02,
	MobilityPawnAttackPenalty: 0.01,
	UndevelopedPiecePenalty:   0.1,
	EarlyQueenPenalty:         0.3,
	KnightOutpostBonus:        0.2,
	CaptureBonus:              0.02,
	HangingPieceBonus:         0.1,
	HangingPiecePenalty:       0.25,
	EnPassantBonus:            0.05,
	PromotionBonus:            0.5,
	OpenFileBonus:             0.15,
	SemiOpenFileBonus:         0.08,
	ExposedKingPenalty:        0.2,
	TempoBonus:                0.1,
}

var simpleWeights = EvalWeights{
	CheckmateBonus:   1000.0,
	StalematePenalty: 5.0,
	Material:         1.0,
	PassedPawnBonus:  0.5,
	MobilityBonus:    0.01,
	TempoBonus:       0.05,
}

func aggressiveWeights() EvalWeights {
	w := defaultWeights
	w.MateThreatBonus = 3.0
	w.GivingCheckBonus = 0.4
	w.KingAttackBonus = 0.12
	w.CaptureBonus = 0.05
	w.HangingPieceBonus = 0.2
	w.MobilityBonus = 0.04
	w.RookSeventhBonus = 0.4
	w.KingSafetyBonus = 0.08
	w.DrawPenalty = 1.0
	return w
}

func conservativeWeights() EvalWeights {
	w := defaultWeights
	w.KingSafetyBonus = 0.3
	w.ExposedKingPenalty = 0.4
	w.HangingPiecePenalty = 0.4
	w.CastledBonus = 0.5
	w.CoordinationBonus = 0.06
	w.GivingCheckBonus = 0.1
	w.KingAttackBonus = 0.02
	w.DrawPenalty = 0.2
	return w
}

// RulesetWeights returns the named weight preset.
// Unknown names give the default preset and ok == false.
func RulesetWeights(name string) (EvalWeights, bool) {
	_, w, ok := lookupRuleset(name)
	return w, ok
}

func lookupRuleset(name string) (string, EvalWeights, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DefaultRuleset, "default":
		return DefaultRuleset, defaultWeights, true
	case SimpleRuleset, "simple":
		return SimpleRuleset, simpleWeights, true
	case AggressiveRuleset, "aggressive":
		return AggressiveRuleset, aggressiveWeights(), true
	case ConservativeRuleset, "conservative":
		return ConservativeRuleset, conservativeWeights(), true
	case NullRuleset, "null":
		return NullRuleset, EvalWeights{}, true
	}
	return DefaultRuleset, defaultWeights, false
}

func RulesetNames() []string {
	return []string{DefaultRuleset, SimpleRuleset, AggressiveRuleset, ConservativeRuleset, NullRuleset}
}
