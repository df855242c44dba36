package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/counterair/internal/game/core"
)

// This file contains all board rendering functionality for the game engine.

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

var playerColors = []string{ColorBlue, ColorRed}

// counterLegend names the columns of the counter row under the diagram.
const counterLegend = "CW│CP│NM│BH│RH│BP│RP│BF│RF│RS│PL│LS│ML│AS│MA│PS│MP│AB│MA"

// RenderBoard draws the nine zones as a box diagram, each cell showing the
// attacking then evading count, followed by the scalar counters and their
// legend.
func RenderBoard(s *core.State) string {
	return renderBoard(s, nil)
}

// RenderBoardColor is RenderBoard with every zone tinted by its owner.
func RenderBoardColor(s *core.State) string {
	return renderBoard(s, zoneColor)
}

func zoneColor(z core.Zone) string {
	owner := z.Owner()
	if owner.Valid() {
		return playerColors[owner]
	}
	return ColorGray
}

func renderBoard(s *core.State, color func(core.Zone) string) string {
	b := &s.Board
	zone := func(z core.Zone) string {
		cell := strconv.Itoa(b[z.Attacking()]) + strconv.Itoa(b[z.Evading()])
		if color == nil {
			return cell
		}
		return color(z) + cell + ColorReset
	}

	var sb strings.Builder
	sb.Grow(512)

	sb.WriteString("┌──┬──┬──┐\n")
	sb.WriteString("│" + zone(core.ZoneEscort) + "│  │  │\n")
	sb.WriteString("├──┤" + zone(core.ZoneHighStrike) + "│" + zone(core.ZoneIntercept) + "│\n")
	sb.WriteString("│" + zone(core.ZoneSEAD) + "│  │  │\n")
	sb.WriteString("├──┴──┼──┤\n")
	sb.WriteString("│ " + zone(core.ZoneLowStrike) + "  │" + zone(core.ZoneActiveSAM) + "│\n")
	sb.WriteString("├──┬──┼──┤\n")
	sb.WriteString("│" + zone(core.ZoneAAA) + "│" + zone(core.ZoneAirbase) + "│" + zone(core.ZonePassiveSAM) + "│\n")
	sb.WriteString("└──┴──┴──┘\n")

	counters := []int{
		s.Wave,
		int(s.Phase),
		s.NumMoves,
		s.BlueHits,
		s.RedHits,
		s.BluePoints,
		s.RedPoints,
		s.BluePlaceableFighters,
		s.RedPlaceableFighters,
		s.RedPlaceableSAMs,
		int(s.CurrentPlayer),
		s.Quotas.LowStrike.Used,
		s.Quotas.LowStrike.Max,
		s.Quotas.ActiveSAM.Used,
		s.Quotas.ActiveSAM.Max,
		s.Quotas.PassiveSAM.Used,
		s.Quotas.PassiveSAM.Max,
		s.Quotas.Airbase.Used,
		s.Quotas.Airbase.Max,
	}
	for i, v := range counters {
		if i > 0 {
			sb.WriteString(" │")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteString("\n")
	sb.WriteString(counterLegend)

	return sb.String()
}
