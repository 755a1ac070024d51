package host

// PieceID identifies a kind of board piece.
type PieceID string

const (
	HeroGuardian  PieceID = "HeroGuardian"
	HeroSorcerer  PieceID = "HeroSorcerer"
	HeroHunter    PieceID = "HeroHunter"
	HeroRogue     PieceID = "HeroRogue"
	HeroBarbarian PieceID = "HeroBarbarian"
	HeroBard      PieceID = "HeroBard"
	GoblinFighter PieceID = "GoblinFighter"
	ElvenArcher   PieceID = "ElvenArcher"
	RatKing       PieceID = "RatKing"
	ElvenQueen    PieceID = "ElvenQueen"
)

// PieceTemplate holds the spawn values of a piece kind.
type PieceTemplate struct {
	Player       bool
	Boss         bool
	MaxHealth    int
	ActionPoints int
}

var defaultPieces = map[PieceID]PieceTemplate{
	HeroGuardian:  {Player: true, MaxHealth: 12, ActionPoints: 2},
	HeroSorcerer:  {Player: true, MaxHealth: 8, ActionPoints: 2},
	HeroHunter:    {Player: true, MaxHealth: 9, ActionPoints: 2},
	HeroRogue:     {Player: true, MaxHealth: 8, ActionPoints: 2},
	HeroBarbarian: {Player: true, MaxHealth: 11, ActionPoints: 2},
	HeroBard:      {Player: true, MaxHealth: 9, ActionPoints: 2},
	GoblinFighter: {MaxHealth: 5, ActionPoints: 1},
	ElvenArcher:   {MaxHealth: 6, ActionPoints: 1},
	RatKing:       {Boss: true, MaxHealth: 30, ActionPoints: 2},
	ElvenQueen:    {Boss: true, MaxHealth: 40, ActionPoints: 2},
}

// Piece is a spawned board piece.
// Piece 是已生成的棋子。
type Piece struct {
	ID           PieceID
	Player       bool
	Boss         bool
	Health       int
	MaxHealth    int
	ActionPoints int
	// Effects maps an effect state to its remaining duration in turns.
	Effects map[string]int
}

// Heal restores health up to the maximum.
func (p *Piece) Heal(amount int) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// SubtractHealth removes health, never below zero.
func (p *Piece) SubtractHealth(amount int) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// AddActionPoints adjusts the current action points.
func (p *Piece) AddActionPoints(n int) {
	p.ActionPoints += n
}

// EnableEffect sets an effect state for the given number of turns.
func (p *Piece) EnableEffect(effect string, duration int) {
	if p.Effects == nil {
		p.Effects = make(map[string]int)
	}
	p.Effects[effect] = duration
}

// HasEffect reports whether an effect state is set.
func (p *Piece) HasEffect(effect string) bool {
	_, ok := p.Effects[effect]
	return ok
}
