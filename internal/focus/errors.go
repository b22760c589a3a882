package focus

// failReason classifies why a coordinator operation declined to act.
// Failures are signaled as boolean no-op returns, not errors; the reason
// exists for debug logs and the invalid-jump notification.
type failReason string

const (
	// failNotFound: unregistered id or stale node reference.
	failNotFound failReason = "not_found"
	// failValidation: validator returned false or errored.
	failValidation failReason = "validation_failed"
	// failScopeProtected: attempt to pop the last remaining scope.
	failScopeProtected failReason = "scope_protected"
	// failNoCandidate: navigation found no eligible element in scope.
	failNoCandidate failReason = "no_candidate"
	// failCannotFocus: element registered with CanFocus false.
	failCannotFocus failReason = "cannot_focus"
	// failOrder: an earlier required element has not been visited.
	failOrder failReason = "required_predecessor_unvisited"
	// failDisabled: the coordinator is disabled.
	failDisabled failReason = "disabled"
)

func (r failReason) String() string { return string(r) }
