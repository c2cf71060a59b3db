package auth

import "github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"

// Scope resolves the branch a list query is restricted to.
// An explicit filter wins, a branch manager falls back to their own branch,
// and nil means every branch.
func Scope(c Caller, requested *uint) (*uint, error) {
	if requested != nil {
		id := *requested
		return &id, nil
	}
	if c.IsBranchManager() {
		if c.BranchID == nil {
			return nil, apperr.Forbidden("Branch manager has no assigned branch")
		}
		id := *c.BranchID
		return &id, nil
	}
	return nil, nil
}
