package potential

// Probability mass invariant tolerance. A live outcome collection whose mass
// drifts outside this band indicates a combinatorics defect and is surfaced
// as a hard failure, never renormalized.
const massTolerance = 1e-6

// SubstatSlots is the number of substat slots an increase event chooses
// between once an artifact is fully unlocked.
const SubstatSlots = 4

// rollComboCacheSize bounds the LRU cache of per-substat roll-multiset
// distributions. Keys are (substat, rarity, roll count); the practical key
// space is tiny, the bound is for hygiene.
const rollComboCacheSize = 512

// Log messages
const (
	LogMsgEvaluationStarted  = "Artifact evaluation started"
	LogMsgEvaluationFinished = "Artifact evaluation finished"
	LogMsgEvaluationFailed   = "Artifact evaluation failed"
)
