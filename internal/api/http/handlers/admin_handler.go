package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/service"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// AdminHandler groups post-management endpoints.
type AdminHandler struct {
	users    *service.AuthService
	signoffs *service.SignOffService
	export   *service.ExportService
	settings *service.SettingsService
	siteGate *auth.SiteGate
}

// AdminDependencies bundles requirements for the admin handler.
type AdminDependencies struct {
	Users    *service.AuthService
	SignOffs *service.SignOffService
	Export   *service.ExportService
	Settings *service.SettingsService
	SiteGate *auth.SiteGate
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		users:    deps.Users,
		signoffs: deps.SignOffs,
		export:   deps.Export,
		settings: deps.Settings,
		siteGate: deps.SiteGate,
	}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddUser POST /admin/users. The account gets the shared default
// password which the member replaces at first login.
func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var req dto.AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.AddUser(c.UserContext(), req.DisplayName, req.Role, req.Email)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.users.DeleteUser(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetPassword POST /admin/users/:id/password.
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ResetPassword(c.UserContext(), c.Params("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

// Leaderboard GET /admin/leaderboard.
func (h *AdminHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.signoffs.ExplorerLeaderboard(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.LeaderboardEntryResponse{
			ExplorerID:   entry.ExplorerID,
			ExplorerName: entry.ExplorerName,
			Signed:       entry.Signed,
			Percent:      entry.Percent,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Export GET /admin/export. One JSON document with every collection.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	bundle, err := h.export.Export(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="riding-hub-export.json"`)
	return c.JSON(bundle)
}

// RotateSitePassword POST /admin/site-password. Existing site tokens
// stay valid until their TTL runs out.
func (h *AdminHandler) RotateSitePassword(c *fiber.Ctx) error {
	var req dto.RotateSitePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		return apperrors.NewValidationError("new_password required", nil)
	}
	if err := h.siteGate.Rotate(c.UserContext(), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"rotated": true}})
}

// AppVersion GET /admin/app-version.
func (h *AdminHandler) AppVersion(c *fiber.Ctx) error {
	version, err := h.settings.AppVersion(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AppVersionResponse{Version: version}})
}

// SetAppVersion PUT /admin/app-version.
func (h *AdminHandler) SetAppVersion(c *fiber.Ctx) error {
	var req dto.AppVersionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.settings.SetAppVersion(c.UserContext(), req.Version); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AppVersionResponse{Version: req.Version}})
}
