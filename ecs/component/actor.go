package component

// ActorKind tags which capability set an actor carries.
type ActorKind int

const (
	ActorPlayer ActorKind = iota
	ActorEnemy
	ActorNPC
)

func (k ActorKind) String() string {
	switch k {
	case ActorPlayer:
		return "player"
	case ActorEnemy:
		return "enemy"
	case ActorNPC:
		return "npc"
	default:
		return "unknown"
	}
}

// ActorState is the shared entity state machine. Exactly one state holds.
// Attacking is only entered by enemies; NPCs stay in StateDefault.
type ActorState int

const (
	StateDefault ActorState = iota
	StateAttacking
	StateStunned
	StateDead
)

func (s ActorState) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateAttacking:
		return "attacking"
	case StateStunned:
		return "stunned"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Actor is the record every positioned, animated entity shares.
type Actor struct {
	Kind       ActorKind
	Name       string
	State      ActorState
	FacingLeft bool
	Width      float64
	Height     float64
}

var ActorComponent = NewComponent[Actor]()
