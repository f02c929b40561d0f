package progress

// Stage is the user's position in the fixed task sequence. Stages are
// ordered; a later stage is reachable only when every earlier one is done.
type Stage int

const (
	StageUnauthenticated Stage = iota
	StageTest
	StageGame
	StageApplication
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageUnauthenticated:
		return "unauthenticated"
	case StageTest:
		return "test"
	case StageGame:
		return "game"
	case StageApplication:
		return "application"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// FurthestStage recomputes the furthest reachable stage from the
// authoritative flags. It is the single place stage ordering is encoded;
// both navigation guards and redirects use it.
func FurthestStage(s State) Stage {
	switch {
	case !s.Authenticated:
		return StageUnauthenticated
	case !s.CompletedTest:
		return StageTest
	case !s.CompletedGame:
		return StageGame
	case !s.AppliedForInternship:
		return StageApplication
	default:
		return StageDone
	}
}

// Resolve answers a navigation request: the requested stage is granted only
// if the flags allow it, otherwise the furthest valid stage is returned.
// The requested route is never trusted over the authoritative flags.
func Resolve(requested Stage, s State) Stage {
	furthest := FurthestStage(s)
	if requested > furthest {
		return furthest
	}
	return requested
}
