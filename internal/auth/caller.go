package auth

import "github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

// Caller is the session identity handed to every domain operation.
// The zero value is an anonymous caller.
type Caller struct {
	UserID     uint            `json:"userId"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	BranchID   *uint           `json:"branchId"`
	BranchName string          `json:"branchName,omitempty"`
}

func CallerFromUser(u *models.User) Caller {
	c := Caller{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
	if u.BranchID != nil {
		id := *u.BranchID
		c.BranchID = &id
	}
	if u.Branch != nil {
		c.BranchName = u.Branch.Name
	}
	return c
}

func (c Caller) IsAuthenticated() bool { return c.UserID != 0 }

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

func (c Caller) IsBranchManager() bool { return c.Role == models.RoleBranchManager }
