package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shashank2020/samurais-admin/internal/pkg/usercontext"
)

const (
	AUTH_KEY       string = usercontext.AuthKey
	USER_ID        string = usercontext.KeyUserID
	USER_NAME      string = usercontext.KeyUsername
	USER_IS_ADMIN  string = usercontext.KeyIsAdmin
	FROM_PROTECTED string = usercontext.KeyFromProtected
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// viewData merges the per-request basics every page template needs with
// page specific values. Page values win on key collisions.
func viewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	merged := fiber.Map{
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Flash":      flash.Get(c),
	}
	if token, ok := c.Locals("csrf").(string); ok {
		merged["CSRFToken"] = token
	}
	for k, v := range data {
		merged[k] = v
	}
	return merged
}

// selectedYear reads the ?year= query param, falling back to the current
// calendar year on absence or garbage
func selectedYear(c *fiber.Ctx) int {
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil && year > 2000 && year < 2200 {
			return year
		}
	}
	return time.Now().Year()
}
