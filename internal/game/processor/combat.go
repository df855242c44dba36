package processor

import "github.com/mitchelldurbincs/counterair/internal/game/core"

// strike is the quantized damage step. It adds damage to the victim's
// accumulator; once the accumulator reaches HitsPerKill it wraps, the unit in
// target is destroyed and the attacker scores a point.
func strike(s *core.State, victim core.Player, damage int, target core.Slot, r *Result) bool {
	hits := s.Hits(victim)
	*hits += damage
	if *hits < core.HitsPerKill {
		return false
	}
	*hits -= core.HitsPerKill
	s.Board.Remove(target)
	*s.Points(victim.Opponent())++
	r.Kills = append(r.Kills, Kill{Slot: target, Victim: victim})
	return true
}

// groundTarget picks the attacking unit of a zone if there is one, otherwise
// an evading one.
func groundTarget(s *core.State, z core.Zone) core.Slot {
	if s.Board[z.Attacking()] == 0 {
		return z.Evading()
	}
	return z.Attacking()
}

// Placement. The chosen count goes to the first zone of the phase; for the
// split phases the rest of the pool goes to the second zone.

func placeEscort(s *core.State, n int, _ *Result) {
	s.Board[core.EscortAttacking] = n
	s.BluePlaceableFighters -= n
	s.Phase++
}

func placeHighStrike(s *core.State, n int, _ *Result) {
	s.Board[core.HighStrikeAttacking] = n
	s.BluePlaceableFighters -= n
	s.Phase++
}

func placeSEAD(s *core.State, n int, _ *Result) {
	s.Board[core.SEADAttacking] = n
	s.BluePlaceableFighters -= n
	s.Board[core.LowStrikeAttacking] = s.BluePlaceableFighters
	s.BluePlaceableFighters = 0
	s.NumMoves++
	s.CurrentPlayer = s.CurrentPlayer.Opponent()
	s.Phase++
}

func placeIntercept(s *core.State, n int, _ *Result) {
	s.Board[core.InterceptAttacking] = n
	s.RedPlaceableFighters -= n
	s.Board[core.AirbaseAttacking] = s.RedPlaceableFighters
	s.RedPlaceableFighters = 0
	s.Phase++
}

func placeSAM(s *core.State, n int, _ *Result) {
	s.Board[core.ActiveSAMAttacking] = n
	s.RedPlaceableSAMs -= n
	s.Board[core.PassiveSAMAttacking] = s.RedPlaceableSAMs
	s.RedPlaceableSAMs = 0
	s.Board[core.AAAAttacking] = core.AAAPerWave
	s.CurrentPlayer = s.CurrentPlayer.Opponent()
	s.Phase++
	s.NumMoves++
}

// Air to air: escorts engage interceptors, interceptors engage any blue
// formation. Firing flips the shooter to evading.

// airToAirBlueDeclare: 1 = escort fires at the interceptors.
func airToAirBlueDeclare(s *core.State, option int, _ *Result) {
	if option == 1 {
		s.Target = core.InterceptAttacking
		s.Board.Flip(core.ZoneEscort)
	}
	s.SubTurn = core.Resolve
	s.CurrentPlayer = core.Red
	s.NumMoves++
}

// airToAirBlueResolve: 0 = no defence, 1 = escort evades, 2 = high strike
// evades, 3 = low strike evades.
func airToAirBlueResolve(s *core.State, option int, r *Result) {
	switch option {
	case 0:
		strike(s, core.Blue, 2, s.Target, r)
	case 1:
		strike(s, core.Blue, 1, s.Target, r)
		if s.Board[core.EscortAttacking] > 0 {
			s.Board.Flip(core.ZoneEscort)
		}
	case 2, 3:
		if !strike(s, core.Blue, 1, s.Target, r) {
			s.Board.Flip(s.Target.Zone())
		}
	}
	s.SubTurn = core.Declare
	s.NumMoves++
}

// airToAirRedDeclare: interceptor fires at 0 = escort, 1 = high strike,
// 2 = low strike.
func airToAirRedDeclare(s *core.State, option int, _ *Result) {
	switch option {
	case 0:
		s.Target = core.EscortAttacking
	case 1:
		s.Target = core.HighStrikeAttacking
	case 2:
		s.Target = core.LowStrikeAttacking
	}
	s.SubTurn = core.Resolve
	s.Board.Flip(core.ZoneIntercept)
	s.CurrentPlayer = core.Blue
	s.NumMoves++
}

// airToAirRedResolve: 0 = no defence, 1 = interceptor evades.
func airToAirRedResolve(s *core.State, option int, r *Result) {
	switch option {
	case 1:
		if !strike(s, core.Red, 1, core.InterceptAttacking, r) {
			s.Board.Flip(core.ZoneIntercept)
		}
	case 0:
		strike(s, core.Red, 2, core.InterceptAttacking, r)
	}
	s.SubTurn = core.Declare
	s.NumMoves++
}

// Ground to air: SEAD suppresses SAM and AAA sites, SAMs fire at high strike
// and AAA at low strike.

// groundToAirBlueDeclare: SEAD targets 0 = active SAM, 1 = AAA.
func groundToAirBlueDeclare(s *core.State, option int, _ *Result) {
	switch option {
	case 0:
		s.Target = core.ActiveSAMAttacking
	case 1:
		s.Target = core.AAAAttacking
	}
	s.Board.Flip(core.ZoneSEAD)
	s.SubTurn = core.Resolve
	s.CurrentPlayer = core.Red
	s.NumMoves++
}

// groundToAirBlueResolve: 0 = no defence, 1 = high strike evades,
// 2 = SEAD covers the high strike, 3 = low strike absorbs AAA fire.
func groundToAirBlueResolve(s *core.State, option int, r *Result) {
	switch option {
	case 0:
		strike(s, core.Blue, 2, core.HighStrikeAttacking, r)
	case 1:
		if !strike(s, core.Blue, 1, core.HighStrikeAttacking, r) {
			s.Board.Flip(core.ZoneHighStrike)
		}
	case 2:
		strike(s, core.Blue, 1, core.HighStrikeAttacking, r)
		s.Board.Flip(core.ZoneSEAD)
	case 3:
		strike(s, core.Blue, 1, core.LowStrikeAttacking, r)
	}
	s.SubTurn = core.Declare
	s.NumMoves++
}

// groundToAirRedDeclare: 0 = active SAM fires at high strike, 1 = AAA fires
// at low strike. The AAA shot consumes low strike quota and leaves the
// exchange in the declare sub-turn.
func groundToAirRedDeclare(s *core.State, option int, _ *Result) {
	switch option {
	case 0:
		s.Target = core.HighStrikeAttacking
		s.SubTurn = core.Resolve
		s.Board.Flip(core.ZoneActiveSAM)
	case 1:
		s.Target = core.LowStrikeAttacking
		s.Quotas.LowStrike.Used++
		s.Board.Flip(core.ZoneAAA)
	}
	s.CurrentPlayer = core.Blue
	s.NumMoves++
}

// groundToAirRedResolve: the site picked by SEAD takes the hit. A SAM site
// accumulates damage, an AAA site is only suppressed.
func groundToAirRedResolve(s *core.State, option int, r *Result) {
	if option == 0 {
		switch s.Target {
		case core.ActiveSAMAttacking:
			if !strike(s, core.Red, 1, core.ActiveSAMAttacking, r) {
				s.Board.Flip(core.ZoneActiveSAM)
			}
		case core.AAAAttacking:
			s.Board.Flip(core.ZoneAAA)
		}
		s.SubTurn = core.Declare
	}
	s.NumMoves++
}

// Air to ground. Every move is one attack run by a single fighter.

// highStrikeAttack: 0 = airbase, 1 = active SAM, 2 = passive SAM.
func highStrikeAttack(s *core.State, option int, r *Result) {
	switch option {
	case 0:
		s.Quotas.Airbase.Used++
		s.Target = groundTarget(s, core.ZoneAirbase)
	case 1:
		s.Quotas.ActiveSAM.Used++
		s.Target = groundTarget(s, core.ZoneActiveSAM)
	case 2:
		s.Quotas.PassiveSAM.Used++
		s.Target = groundTarget(s, core.ZonePassiveSAM)
	}
	strike(s, core.Red, 1, s.Target, r)
	s.Board.Flip(core.ZoneHighStrike)
}

// uavAttack: 0 = active SAM, 1 = passive SAM. A single UAV run closes the
// phase.
func uavAttack(s *core.State, option int, r *Result) {
	switch option {
	case 0:
		s.Quotas.ActiveSAM.Used++
		s.Target = groundTarget(s, core.ZoneActiveSAM)
	case 1:
		s.Quotas.PassiveSAM.Used++
		s.Target = groundTarget(s, core.ZonePassiveSAM)
	}
	strike(s, core.Red, 1, s.Target, r)
	s.Phase++
}

// lowStrikeAttack: 0 = pin an airbase fighter, 1 = active SAM,
// 2 = passive SAM, 3 = send an interceptor back to the airbase.
func lowStrikeAttack(s *core.State, option int, r *Result) {
	switch option {
	case 0:
		s.Board.Flip(core.ZoneAirbase)
	case 1:
		s.Quotas.ActiveSAM.Used++
		s.Target = groundTarget(s, core.ZoneActiveSAM)
		strike(s, core.Red, 1, s.Target, r)
	case 2:
		s.Quotas.PassiveSAM.Used++
		s.Target = groundTarget(s, core.ZonePassiveSAM)
		strike(s, core.Red, 1, s.Target, r)
	case 3:
		if s.Board[core.InterceptAttacking] > 0 {
			s.Board.Remove(core.InterceptAttacking)
		} else {
			s.Board.Remove(core.InterceptEvading)
		}
		s.Board[core.AirbaseEvading]++
	}
	s.Board.Flip(core.ZoneLowStrike)
}
