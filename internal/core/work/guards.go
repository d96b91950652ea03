package work

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// TransitionContext provides context for stage-transition guards.
type TransitionContext struct {
	WorkID       int64
	CurrentStage Stage
	IsFinished   bool
	IsRescinded  bool
}

// CanTransition evaluates whether a work may leave its current stage.
// Finished and rescinded works are immutable: no operation may move them.
func CanTransition(ctx TransitionContext) GuardResult {
	if ctx.IsFinished || ctx.CurrentStage == StageFinished {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("work %d is finished and cannot change stage", ctx.WorkID),
		}
	}
	if ctx.IsRescinded || ctx.CurrentStage == StageRescinded {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("work %d is rescinded and cannot change stage", ctx.WorkID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanUpdateProgress evaluates the 0-100 range rule for progress updates.
func CanUpdateProgress(value float64) GuardResult {
	if value < 0 || value > 100 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("progress %v out of range, must be between 0 and 100", value),
		}
	}
	return GuardResult{Allowed: true}
}

// CanExtendTerm rejects negative term increments.
func CanExtendTerm(additionalMonths int) GuardResult {
	if additionalMonths < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("term increment %d is negative", additionalMonths),
		}
	}
	return GuardResult{Allowed: true}
}

// CanAddWorkforce rejects negative workforce increments.
func CanAddWorkforce(additionalCount int) GuardResult {
	if additionalCount < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("workforce increment %d is negative", additionalCount),
		}
	}
	return GuardResult{Allowed: true}
}
