package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/app/repository"
	"github.com/shashank2020/samurais-admin/internal/pkg/session"
)

// HandleOAuthLogin starts the provider flow
func HandleOAuthLogin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and logs the user in.
// Only existing committee accounts may sign in via OAuth; there is no
// self-service signup through a provider.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	if u.Email == "" {
		return c.Status(fiber.StatusBadRequest).SendString("OAuth provider returned no email")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	appUser, err := userRepo.GetByEmail(u.Email)
	if err != nil || !appUser.IsActive() {
		return c.Status(fiber.StatusForbidden).SendString("no committee account for this email")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, appUser.ID)
	sess.Set(USER_NAME, appUser.Name)
	sess.Set(USER_IS_ADMIN, appUser.Role == models.ROLE_ADMIN)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	now := time.Now()
	appUser.LastLoginAt = &now
	_ = userRepo.Update(appUser)

	return c.Redirect("/", fiber.StatusSeeOther)
}
