package eval

import "rustle/internal/value"

type jumpKind uint8

const (
	jumpBreak jumpKind = iota
	jumpContinue
	jumpReturn
)

// jump carries break, continue and return out of nested evaluation. It is
// never a fault and never escapes a loop or call boundary.
type jump struct {
	kind  jumpKind
	value value.Value
}

func (j *jump) Error() string {
	switch j.kind {
	case jumpBreak:
		return "break"
	case jumpContinue:
		return "continue"
	}
	return "return"
}

// continueJump is shared since it carries no value.
var continueJump = &jump{kind: jumpContinue}
