package services

// requireOwner is the single authorization check for owner-scoped operations.
// Questions and responses carry no ownership of their own; callers resolve the
// owning survey first and pass it here.
//
// Anonymous callers get unauthorized, authenticated non-owners get forbidden.
// The distinction must survive to the transport layer (401 vs 403).
func requireOwner(callerID string, sv *Survey) error {
	if sv == nil {
		return NewNotFoundError("survey not found")
	}
	if callerID == "" {
		return NewUnauthorizedError("authentication required")
	}
	if sv.OwnerID != callerID {
		return NewForbiddenError("not the survey owner")
	}
	return nil
}
