package equity

// Weights holds the tunable terms of the static evaluator. Field tags match
// the keys under `weights` in a config file.
type Weights struct {
	// Markers is awarded per free slot holding a discard marker.
	Markers float64 `yaml:"markers" mapstructure:"markers"`
	// Foundation multiplies the sum of the three foundations.
	Foundation float64 `yaml:"foundation" mapstructure:"foundation"`
	// EmptyStack is awarded per empty tableau stack.
	EmptyStack float64 `yaml:"empty-stack" mapstructure:"empty-stack"`
	// HighBase multiplies the length of a stack whose bottom card is at
	// least HighBaseValue.
	HighBase      float64 `yaml:"high-base" mapstructure:"high-base"`
	HighBaseValue int     `yaml:"high-base-value" mapstructure:"high-base-value"`
	// Imbalance is charged per point between the highest and lowest
	// foundation.
	Imbalance float64 `yaml:"imbalance" mapstructure:"imbalance"`
	// SlotCard is charged per free slot holding a real card.
	SlotCard float64 `yaml:"slot-card" mapstructure:"slot-card"`
	// Moves is charged per MovesDivisor moves once more than MovesGrace have
	// been taken.
	Moves        float64 `yaml:"moves" mapstructure:"moves"`
	MovesDivisor float64 `yaml:"moves-divisor" mapstructure:"moves-divisor"`
	MovesGrace   int     `yaml:"moves-grace" mapstructure:"moves-grace"`
	// With fewer than EndgameCards left on the tableau the score is just
	// EndgameBonus plus the number of stacks still in use.
	EndgameCards int     `yaml:"endgame-cards" mapstructure:"endgame-cards"`
	EndgameBonus float64 `yaml:"endgame-bonus" mapstructure:"endgame-bonus"`
}

func DefaultWeights() Weights {
	return Weights{
		Markers:       3,
		Foundation:    1,
		EmptyStack:    3,
		HighBase:      1,
		HighBaseValue: 8,
		Imbalance:     0.5,
		SlotCard:      3.2,
		Moves:         1,
		MovesDivisor:  5,
		MovesGrace:    10,
		EndgameCards:  10,
		EndgameBonus:  100,
	}
}
