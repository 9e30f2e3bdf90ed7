package selector

// Action is the tagged event type the key handler produces; the model's
// update loop dispatches on it in a single switch.
type Action int

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionToggle
	ActionGroupInc
	ActionGroupDec
	ActionConfirm
	ActionInterrupt
)
