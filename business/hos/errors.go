package hos

import "errors"

// Error kinds reported by Plan. Callers match with errors.Is to decide how to
// translate them, the engine never retries.
var (
	//ErrInvalidInput reports arguments outside the documented ranges
	ErrInvalidInput = errors.New("invalid input")
	//ErrInfeasibleTrip reports a trip the cycle can never accommodate, even after restarts
	ErrInfeasibleTrip = errors.New("infeasible trip")
	//ErrInternalInconsistency reports a violated simulation invariant, a bug rather than a user error
	ErrInternalInconsistency = errors.New("internal inconsistency")
	//ErrIterationBudget reports a driving loop that failed to make progress within its budget
	ErrIterationBudget = errors.New("iteration budget exceeded")
)
