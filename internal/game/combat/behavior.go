package combat

import "go.uber.org/zap"

// Behavior is the set of hooks a combatant dispatches through. Each creature
// kind has exactly one implementation, chosen by behaviorFor.
type Behavior interface {
	// Attack resolves self's attack against defender.
	Attack(self, defender *Combatant, log *Log)
	// OnEnemyAttack applies an incoming hit to self and fills out.
	OnEnemyAttack(self, attacker *Combatant, amount int, out *ActionOutcome)
	// OnEndTurn runs after self has attacked in a turn.
	OnEndTurn(self *Combatant, log *Log)
}

// behaviorFor maps a kind and its parameters to its Behavior.
func behaviorFor(kind Kind, stats Stats) Behavior {
	switch kind {
	case KindGoblin:
		return multiStrike{strikes: stats.Strikes}
	case KindTroll:
		return regenerate{amount: stats.Regen}
	case KindOrc:
		return retaliate{block: stats.Block, reflect: stats.Reflect}
	default:
		return baseBehavior{}
	}
}

// baseBehavior is the default: one strike, full damage taken, nothing at end of turn.
type baseBehavior struct{}

func (baseBehavior) Attack(self, defender *Combatant, log *Log) {
	strike(self, defender, log)
}

func (baseBehavior) OnEnemyAttack(self, _ *Combatant, amount int, out *ActionOutcome) {
	out.Actual = self.ReduceHealth(amount)
}

func (baseBehavior) OnEndTurn(*Combatant, *Log) {}

// strike resolves a single attack exchange: the defender absorbs the hit,
// the exchange is recorded, and both sides are checked for death.
//
// Precondition: attacker and defender must be non-nil.
// Postcondition: Nothing happens if defender is already dead.
func strike(attacker, defender *Combatant, log *Log) {
	if !defender.Alive() {
		return
	}
	out := NewActionOutcome()
	out.Attempted = attacker.AttackPower()
	defender.OnEnemyAttack(attacker, out.Attempted, &out)
	log.record(Event{
		Type:    EventAttack,
		Actor:   attacker.Snapshot(),
		Target:  defender.Snapshot(),
		Outcome: out,
	})
	log.debug("attack resolved",
		zap.String("attacker", attacker.Name()),
		zap.String("defender", defender.Name()),
		zap.Int("attempted", out.Attempted),
		zap.Int("actual", out.Actual),
		zap.Int("defender_health", defender.Health()),
		zap.Int("attacker_health", attacker.Health()),
	)
	defender.CheckDeath(log)
	attacker.CheckDeath(log)
}

// multiStrike repeats the single strike a fixed number of times, stopping as
// soon as either side is down.
type multiStrike struct {
	baseBehavior
	strikes int
}

func (m multiStrike) Attack(self, defender *Combatant, log *Log) {
	for i := 0; i < m.strikes; i++ {
		if !self.Alive() || !defender.Alive() {
			return
		}
		strike(self, defender, log)
	}
}

// regenerate heals a fixed amount at the end of its own turn.
type regenerate struct {
	baseBehavior
	amount int
}

func (r regenerate) OnEndTurn(self *Combatant, log *Log) {
	if !self.Alive() || self.Health() >= self.MaxHP() {
		return
	}
	restored := self.Heal(r.amount)
	log.debug("regenerated",
		zap.String("combatant", self.Name()),
		zap.Int("restored", restored),
		zap.Int("health", self.Health()),
	)
	log.record(Event{
		Type:   EventRegenerate,
		Actor:  self.Snapshot(),
		Amount: restored,
		Capped: restored < r.amount,
	})
}

// retaliate ignores damage up to the block threshold and always hits the
// attacker back for a flat amount. The reflected damage goes straight to the
// attacker's health, bypassing the attacker's own behavior.
type retaliate struct {
	baseBehavior
	block   int
	reflect int
}

func (r retaliate) OnEnemyAttack(self, attacker *Combatant, amount int, out *ActionOutcome) {
	taken := 0
	if amount > r.block {
		taken = amount - r.block
	}
	out.Actual = self.ReduceHealth(taken)
	attacker.ReduceHealth(r.reflect)
	out.Reflected = r.reflect
}
