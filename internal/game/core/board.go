package core

import "fmt"

// Zone is one of the nine named areas of the board. Every zone owns two
// consecutive slots: units that may still attack and units that have evaded.
type Zone int

const (
	ZoneEscort Zone = iota
	ZoneHighStrike
	ZoneSEAD
	ZoneLowStrike
	ZoneIntercept
	ZoneActiveSAM
	ZonePassiveSAM
	ZoneAirbase
	ZoneAAA

	NumZones = 9
	NumSlots = NumZones * 2
)

var zoneNames = [NumZones]string{
	"Escort", "HighStrike", "SEAD", "LowStrike", "Intercept",
	"ActiveSAM", "PassiveSAM", "Airbase", "AAA",
}

func (z Zone) String() string {
	if z < 0 || int(z) >= NumZones {
		return fmt.Sprintf("Zone(%d)", int(z))
	}
	return zoneNames[z]
}

// Attacking returns the slot holding the zone's attacking units.
func (z Zone) Attacking() Slot { return Slot(int(z) * 2) }

// Evading returns the slot holding the zone's evading units.
func (z Zone) Evading() Slot { return Slot(int(z)*2 + 1) }

// Owner returns the side whose units are placed in the zone.
func (z Zone) Owner() Player {
	if z <= ZoneLowStrike {
		return Blue
	}
	return Red
}

// Slot indexes one of the 18 board counters.
type Slot int

// Named slots, laid out as (attacking, evading) pairs per zone.
const (
	EscortAttacking Slot = iota
	EscortEvading
	HighStrikeAttacking
	HighStrikeEvading
	SEADAttacking
	SEADEvading
	LowStrikeAttacking
	LowStrikeEvading
	InterceptAttacking
	InterceptEvading
	ActiveSAMAttacking
	ActiveSAMEvading
	PassiveSAMAttacking
	PassiveSAMEvading
	AirbaseAttacking
	AirbaseEvading
	AAAAttacking
	AAAEvading
)

// Zone returns the zone the slot belongs to.
func (s Slot) Zone() Zone { return Zone(int(s) / 2) }

// IsEvading reports whether the slot is the evading half of its zone.
func (s Slot) IsEvading() bool { return int(s)%2 == 1 }

// Valid reports whether s indexes a board counter.
func (s Slot) Valid() bool { return s >= 0 && int(s) < NumSlots }

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	if s.IsEvading() {
		return s.Zone().String() + ".evading"
	}
	return s.Zone().String() + ".attacking"
}

// Board holds the unit count of every slot. It is a value type so copying a
// State never aliases counters.
type Board [NumSlots]int

// Count returns the units in a slot.
func (b *Board) Count(s Slot) int { return b[s] }

// ZoneTotal returns attacking plus evading units of a zone.
func (b *Board) ZoneTotal(z Zone) int { return b[z.Attacking()] + b[z.Evading()] }

// Sum returns the number of units on the board.
func (b *Board) Sum() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// SumRange returns the units held in slots [from, to].
func (b *Board) SumRange(from, to Slot) int {
	total := 0
	for s := from; s <= to; s++ {
		total += b[s]
	}
	return total
}

// Flip moves one unit from the attacking slot of a zone to its evading slot.
// Callers guarantee the attacking slot is non-empty.
func (b *Board) Flip(z Zone) {
	b[z.Attacking()]--
	b[z.Evading()]++
}

// Shift moves one unit between two arbitrary slots.
func (b *Board) Shift(from, to Slot) {
	b[from]--
	b[to]++
}

// Remove destroys one unit in a slot.
func (b *Board) Remove(s Slot) { b[s]-- }

// Reset zeroes every counter.
func (b *Board) Reset() { *b = Board{} }
