package auth

import (
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
)

// Guard decides whether a caller may run an operation.
type Guard func(Caller) error

func Authenticated(c Caller) error {
	if !c.IsAuthenticated() {
		return apperr.Unauthorized("Unauthorized - Please login")
	}
	return nil
}

func Admin(c Caller) error {
	if err := Authenticated(c); err != nil {
		return err
	}
	if !c.IsAdmin() {
		return apperr.Forbidden("Forbidden - Admin access required")
	}
	return nil
}

func BranchManagerOrAdmin(c Caller) error {
	if err := Authenticated(c); err != nil {
		return err
	}
	if !c.IsAdmin() && !c.IsBranchManager() {
		return apperr.Forbidden("Forbidden - Branch Manager access required")
	}
	return nil
}
