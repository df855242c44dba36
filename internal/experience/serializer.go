package experience

import (
	"fmt"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
	"github.com/mitchelldurbincs/counterair/internal/game/rules"
)

// ObservationSize is the length of the observation tensor.
const ObservationSize = 246

// Segment is a one-hot block of the observation tensor.
type Segment struct {
	Offset int
	Width  int
}

// Fixed segments of the observation tensor. Zone slots use per-slot segments
// computed by BlueSlotSegment and RedSlotSegment.
var (
	SegmentAAAAttacking = Segment{127, 5}
	SegmentAAAEvading   = Segment{132, 5}
	SegmentWave         = Segment{137, 5}
	SegmentPhase        = Segment{142, 11}
	SegmentBlueHits     = Segment{153, 4}
	SegmentRedHits      = Segment{157, 4}
	SegmentBluePoints   = Segment{161, 9}
	SegmentRedPoints    = Segment{170, 11}
	SegmentBlueFighters = Segment{181, 11}
	SegmentRedFighters  = Segment{192, 5}
	SegmentRedSAMs      = Segment{197, 5}
	SegmentTarget       = Segment{202, 8}
	SegmentIsAttacking  = Segment{210, 2}
	SegmentPlayer       = Segment{212, 2}
	SegmentLowStrike    = Segment{214, 4}
	SegmentLowStrikeMax = Segment{218, 4}
	SegmentActiveSAM    = Segment{222, 4}
	SegmentActiveSAMMax = Segment{226, 4}
	SegmentPassiveSAM   = Segment{230, 4}
	SegmentPassiveMax   = Segment{234, 4}
	SegmentAirbase      = Segment{238, 4}
	SegmentAirbaseMax   = Segment{242, 4}
)

// Slot segment geometry: the first seven blue slots take eleven entries each,
// the seven slots from Intercept attacking onwards take five.
const (
	blueSlotWidth = 11
	redSlotOffset = 87
	redSlotWidth  = 5
	encodedSlots  = 7
	firstRedSlot  = core.InterceptAttacking
	firstBlueSlot = core.EscortAttacking
)

// BlueSlotSegment returns the segment of the i-th blue slot, i in [0, 7).
func BlueSlotSegment(i int) Segment {
	return Segment{i * blueSlotWidth, blueSlotWidth}
}

// RedSlotSegment returns the segment of the i-th slot from Intercept
// attacking, i in [0, 7).
func RedSlotSegment(i int) Segment {
	return Segment{redSlotOffset + i*redSlotWidth, redSlotWidth}
}

// Index returns the tensor index encoding v. Values outside the segment are
// clamped into it so an encoding never spills into a neighbour.
func (seg Segment) Index(v int) int {
	switch {
	case v < 0:
		v = 0
	case v >= seg.Width:
		v = seg.Width - 1
	}
	return seg.Offset + v
}

// Serializer converts game states to tensor representations
type Serializer struct {
	legalMoves *rules.LegalMoveCalculator
}

// NewSerializer creates a new state serializer
func NewSerializer() *Serializer {
	return &Serializer{legalMoves: rules.NewLegalMoveCalculator()}
}

// StateToTensor encodes state as an ObservationSize wide one-hot tensor from
// the perspective of playerID. The game has perfect information, so the
// perspective only needs to be a valid player.
func (s *Serializer) StateToTensor(state *core.State, playerID int) ([]float32, error) {
	tensor := make([]float32, ObservationSize)
	if err := s.EncodeInto(state, playerID, tensor); err != nil {
		return nil, err
	}
	return tensor, nil
}

// EncodeInto writes the observation of state into dst, which must be exactly
// ObservationSize long. dst is zeroed first.
func (s *Serializer) EncodeInto(state *core.State, playerID int, dst []float32) error {
	if _, err := core.ValidatePlayer(playerID); err != nil {
		return err
	}
	if len(dst) != ObservationSize {
		return fmt.Errorf("observation buffer has length %d, want %d", len(dst), ObservationSize)
	}
	clear(dst)

	b := &state.Board
	for i := 0; i < encodedSlots; i++ {
		dst[BlueSlotSegment(i).Index(b[firstBlueSlot+core.Slot(i)])] = 1
		dst[RedSlotSegment(i).Index(b[firstRedSlot+core.Slot(i)])] = 1
	}
	dst[SegmentAAAAttacking.Index(b[core.AAAAttacking])] = 1
	dst[SegmentAAAEvading.Index(b[core.AAAEvading])] = 1

	dst[SegmentWave.Index(state.Wave)] = 1
	dst[SegmentPhase.Index(int(state.Phase))] = 1
	dst[SegmentBlueHits.Index(state.BlueHits)] = 1
	dst[SegmentRedHits.Index(state.RedHits)] = 1
	dst[SegmentBluePoints.Index(state.BluePoints)] = 1
	dst[SegmentRedPoints.Index(state.RedPoints)] = 1
	dst[SegmentBlueFighters.Index(state.BluePlaceableFighters)] = 1
	dst[SegmentRedFighters.Index(state.RedPlaceableFighters)] = 1
	dst[SegmentRedSAMs.Index(state.RedPlaceableSAMs)] = 1
	dst[SegmentTarget.Index(int(state.Target))] = 1

	attacking := 0
	if state.IsAttacking() {
		attacking = 1
	}
	dst[SegmentIsAttacking.Index(attacking)] = 1
	dst[SegmentPlayer.Index(int(state.CurrentPlayer))] = 1

	q := &state.Quotas
	dst[SegmentLowStrike.Index(q.LowStrike.Used)] = 1
	dst[SegmentLowStrikeMax.Index(q.LowStrike.Max)] = 1
	dst[SegmentActiveSAM.Index(q.ActiveSAM.Used)] = 1
	dst[SegmentActiveSAMMax.Index(q.ActiveSAM.Max)] = 1
	dst[SegmentPassiveSAM.Index(q.PassiveSAM.Used)] = 1
	dst[SegmentPassiveMax.Index(q.PassiveSAM.Max)] = 1
	dst[SegmentAirbase.Index(q.Airbase.Used)] = 1
	dst[SegmentAirbaseMax.Index(q.Airbase.Max)] = 1

	return nil
}

// GenerateActionMask creates a NumDistinctMoves wide mask of the legal moves
func (s *Serializer) GenerateActionMask(state *core.State) []bool {
	return s.legalMoves.GetLegalActionMask(state)
}

// ValidateAction checks if a move id is inside the action space
func (s *Serializer) ValidateAction(moveID int) bool {
	return moveID >= 0 && moveID < core.NumDistinctMoves
}
