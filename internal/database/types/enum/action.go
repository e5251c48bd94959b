package enum

// ActionKind represents the kind of action that produced a score entry.
//
//go:generate go tool enumer -type=ActionKind -trimprefix=ActionKind
type ActionKind int

const (
	// ActionKindPost is awarded to an author for submitting a story.
	ActionKindPost ActionKind = iota
	// ActionKindPromote is awarded to an author when a story is promoted.
	ActionKindPromote
	// ActionKindDemote is charged to an author when a story is demoted.
	ActionKindDemote
	// ActionKindComment is awarded to a user for commenting.
	ActionKindComment
	// ActionKindSpamFlag is awarded to a user for flagging a story as spam.
	ActionKindSpamFlag
	// ActionKindPromoteReversal undoes an earlier promote when a voter switches to demote.
	ActionKindPromoteReversal
	// ActionKindDemoteReversal undoes an earlier demote when a voter switches to promote.
	ActionKindDemoteReversal
	// ActionKindPublished is awarded to an author when a story is published.
	ActionKindPublished
)
