package processor

import (
	"fmt"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/rs/zerolog"
)

// Evaluator decides the result once the last wave is over.
// Defined here to avoid importing the rules package.
type Evaluator interface {
	Evaluate(s *core.State) core.Outcome
}

// Kill records a unit destroyed by a damage step.
type Kill struct {
	Slot   core.Slot
	Victim core.Player
}

// Result describes what a single Apply did to the state.
type Result struct {
	Move      core.Move
	Mover     core.Player
	FromPhase core.Phase
	ToPhase   core.Phase
	FromWave  int
	ToWave    int
	Kills     []Kill

	PhaseAdvanced bool
	WaveEnded     bool
	GameEnded     bool
}

// transitionFunc applies a phase-specific option to the state.
type transitionFunc func(s *core.State, option int, r *Result)

// dispatchKey selects a transition. Every reachable (phase, player, subturn)
// combination has exactly one entry.
type dispatchKey struct {
	phase   core.Phase
	player  core.Player
	subTurn core.SubTurn
}

// PhaseController applies moves to a game state. It is the only component that
// mutates one.
type PhaseController struct {
	logger      zerolog.Logger
	evaluator   Evaluator
	transitions map[dispatchKey]transitionFunc
}

// NewPhaseController creates a phase controller
func NewPhaseController(logger zerolog.Logger, evaluator Evaluator) *PhaseController {
	pc := &PhaseController{
		logger:      logger.With().Str("component", "PhaseController").Logger(),
		evaluator:   evaluator,
		transitions: make(map[dispatchKey]transitionFunc),
	}
	pc.registerTransitions()
	return pc
}

func (pc *PhaseController) register(phase core.Phase, player core.Player, subTurn core.SubTurn, fn transitionFunc) {
	pc.transitions[dispatchKey{phase: phase, player: player, subTurn: subTurn}] = fn
}

func (pc *PhaseController) registerTransitions() {
	// Placement
	pc.register(core.PhasePlaceEscort, core.Blue, core.Declare, placeEscort)
	pc.register(core.PhasePlaceHighStrike, core.Blue, core.Declare, placeHighStrike)
	pc.register(core.PhasePlaceSEAD, core.Blue, core.Declare, placeSEAD)
	pc.register(core.PhasePlaceIntercept, core.Red, core.Declare, placeIntercept)
	pc.register(core.PhasePlaceSAM, core.Red, core.Declare, placeSAM)

	// Fighter against fighter
	pc.register(core.PhaseAirToAir, core.Blue, core.Declare, airToAirBlueDeclare)
	pc.register(core.PhaseAirToAir, core.Blue, core.Resolve, airToAirBlueResolve)
	pc.register(core.PhaseAirToAir, core.Red, core.Declare, airToAirRedDeclare)
	pc.register(core.PhaseAirToAir, core.Red, core.Resolve, airToAirRedResolve)

	// Ground against air
	pc.register(core.PhaseGroundToAir, core.Blue, core.Declare, groundToAirBlueDeclare)
	pc.register(core.PhaseGroundToAir, core.Blue, core.Resolve, groundToAirBlueResolve)
	pc.register(core.PhaseGroundToAir, core.Red, core.Declare, groundToAirRedDeclare)
	pc.register(core.PhaseGroundToAir, core.Red, core.Resolve, groundToAirRedResolve)

	// Air against ground
	pc.register(core.PhaseHighStrikeAttack, core.Blue, core.Declare, highStrikeAttack)
	pc.register(core.PhaseUAV, core.Blue, core.Declare, uavAttack)
	pc.register(core.PhaseLowStrikeAttack, core.Blue, core.Declare, lowStrikeAttack)
}

// HasTransition reports whether a phase-specific move can be applied in the
// given (phase, player, subturn) combination.
func (pc *PhaseController) HasTransition(phase core.Phase, player core.Player, subTurn core.SubTurn) bool {
	_, ok := pc.transitions[dispatchKey{phase: phase, player: player, subTurn: subTurn}]
	return ok
}

// Apply mutates s according to m. The move must come from the legal move
// generator; Apply only checks the invariants it can observe itself (the
// move ceiling and dispatch coverage).
func (pc *PhaseController) Apply(s *core.State, m core.Move) (Result, error) {
	res := Result{
		Move:      m,
		Mover:     s.CurrentPlayer,
		FromPhase: s.Phase,
		FromWave:  s.Wave,
	}
	if s.IsTerminal() {
		return res, core.ErrGameOver
	}

	switch m.Kind {
	case core.KindPassTurn:
		s.CurrentPlayer = s.CurrentPlayer.Opponent()
		s.NumMoves++
		s.SubTurn = core.Declare
		if s.NumMoves > core.MoveLimit {
			err := fmt.Errorf("%w: %d recorded moves", core.ErrMoveLimitExceeded, s.NumMoves)
			pc.logger.Error().Err(err).Str("player", s.CurrentPlayer.String()).Msg("Move ceiling exceeded")
			return res, core.NewInvariantError(s, m.ID(), err)
		}

	case core.KindAdvancePhase:
		pc.advancePhase(s, &res)

	default:
		key := dispatchKey{phase: s.Phase, player: s.CurrentPlayer, subTurn: s.SubTurn}
		fn, ok := pc.transitions[key]
		if !ok {
			return res, core.NewInvariantError(s, m.ID(), fmt.Errorf("%w: %s/%s/%s",
				core.ErrNoTransition, s.Phase, s.CurrentPlayer, s.SubTurn))
		}
		fn(s, m.Option, &res)
	}

	res.ToPhase = s.Phase
	res.ToWave = s.Wave
	if len(res.Kills) > 0 {
		pc.logger.Debug().
			Str("phase", res.FromPhase.String()).
			Int("kills", len(res.Kills)).
			Int("blue_points", s.BluePoints).
			Int("red_points", s.RedPoints).
			Msg("Damage step destroyed units")
	}
	return res, nil
}

// advancePhase closes the current phase. Attack quotas are frozen from the
// board at the phase boundaries that precede the phases reading them.
func (pc *PhaseController) advancePhase(s *core.State, r *Result) {
	switch s.Phase {
	case core.PhaseAirToAir:
		s.Quotas.LowStrike.Max = min(s.Board[core.LowStrikeAttacking], core.MaxLowStrikeQuota)
	case core.PhaseGroundToAir:
		s.Quotas.ActiveSAM.Max = s.Board.ZoneTotal(core.ZoneActiveSAM)
		s.Quotas.PassiveSAM.Max = s.Board.ZoneTotal(core.ZonePassiveSAM)
		s.Quotas.Airbase.Max = s.Board.ZoneTotal(core.ZoneAirbase)
	}

	if s.Phase == core.PhaseLowStrikeAttack {
		pc.endWave(s)
		r.WaveEnded = true
	} else {
		s.Phase++
	}
	s.SubTurn = core.Declare
	s.CurrentPlayer = core.Blue
	r.PhaseAdvanced = true

	pc.logger.Debug().
		Str("from", r.FromPhase.String()).
		Str("to", s.Phase.String()).
		Int("wave", s.Wave).
		Msg("Phase advanced")

	if s.Wave == core.NumWaves {
		s.Outcome = pc.evaluator.Evaluate(s)
		r.GameEnded = true
	}
}

// endWave rolls the state over into the next wave. Survivors become the new
// placement pools; only the evading airbase fighters stay on the board.
func (pc *PhaseController) endWave(s *core.State) {
	s.Phase = core.PhasePlaceEscort
	s.Wave++
	s.Quotas.LowStrike.Used = 0
	s.Quotas.ActiveSAM.Used = 0
	s.Quotas.PassiveSAM.Used = 0
	s.Quotas.Airbase.Used = 0

	s.RedPlaceableFighters = s.Board.ZoneTotal(core.ZoneIntercept) + s.Board[core.AirbaseAttacking]
	s.BluePlaceableFighters = s.Board.SumRange(core.EscortAttacking, core.LowStrikeEvading)
	s.RedPlaceableSAMs = s.Board.SumRange(core.ActiveSAMAttacking, core.PassiveSAMEvading)

	grounded := s.Board[core.AirbaseEvading]
	s.Board.Reset()
	s.Board[core.AirbaseAttacking] = grounded

	pc.logger.Info().
		Int("wave", s.Wave).
		Int("blue_fighters", s.BluePlaceableFighters).
		Int("red_fighters", s.RedPlaceableFighters).
		Int("red_sams", s.RedPlaceableSAMs).
		Msg("Wave ended")
}
