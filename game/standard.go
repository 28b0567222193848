package game

// Constants are the rule parameters announced by the engine at game start.
type Constants struct {
	MaxTurns      int `json:"MAX_TURNS" yaml:"max_turns"`
	MaxHalite     int `json:"MAX_ENERGY" yaml:"max_halite"` // Cargo capacity of a ship
	ShipCost      int `json:"NEW_ENTITY_ENERGY_COST" yaml:"ship_cost"`
	DropoffCost   int `json:"DROPOFF_COST" yaml:"dropoff_cost"`
	MoveCostRatio int `json:"MOVE_COST_RATIO" yaml:"move_cost_ratio"`
	ExtractRatio  int `json:"EXTRACT_RATIO" yaml:"extract_ratio"`
}

// StandardConstants returns the default rule set of the engine.
func StandardConstants() Constants {
	return Constants{
		MaxTurns:      400,
		MaxHalite:     1000,
		ShipCost:      1000,
		DropoffCost:   4000,
		MoveCostRatio: 10,
		ExtractRatio:  4,
	}
}
