package auth

import (
	"log/slog"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	UserID   uint            `json:"userId"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	Branch   *models.Branch  `json:"branch"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Branch:   u.Branch,
	}
}

func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		user, err := Register(database.DB.WithContext(c.UserContext()), CallerFrom(c), body)
		if err != nil {
			return err
		}
		slog.Info("user registered", "userId", user.ID, "role", user.Role)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User registered successfully",
			"userId":  user.ID,
			"role":    user.Role,
		})
	}
}

func LoginHandler(s *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Invalid request body")
		}
		user, err := Authenticate(database.DB.WithContext(c.UserContext()), body.Email, body.Password)
		if err != nil {
			return err
		}
		token, err := s.Create(c.UserContext(), CallerFromUser(user))
		if err != nil {
			return apperr.Internal("create session", err)
		}
		s.setCookie(c, token)
		slog.Info("user logged in", "userId", user.ID, "role", user.Role, "branchId", user.BranchID)

		resp := toUserResponse(user)
		return c.JSON(fiber.Map{
			"message":  "Login successful",
			"userId":   resp.UserID,
			"username": resp.Username,
			"email":    resp.Email,
			"role":     resp.Role,
			"branch":   resp.Branch,
			"token":    token,
		})
	}
}

func LogoutHandler(s *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := s.tokenFrom(c); token != "" {
			if err := s.Destroy(c.UserContext(), token); err != nil {
				return apperr.Internal("Error logging out", err)
			}
		}
		s.clearCookie(c)
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

func CurrentUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(database.DB.WithContext(c.UserContext()), CallerFrom(c))
		if err != nil {
			return err
		}
		return c.JSON(toUserResponse(user))
	}
}

func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := ListUsers(database.DB.WithContext(c.UserContext()), CallerFrom(c))
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}
