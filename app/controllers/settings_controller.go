package controllers

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/app/repository"
)

const logoUploadDir = "./public/uploads"

// HandleSettings renders the club settings page: identity details used on
// invoice letterheads and the subscription rate table.
func HandleSettings(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	settings, err := repos.Settings.GetClubSettings()
	if err != nil {
		return fmt.Errorf("failed to load club settings: %w", err)
	}

	rates, err := repos.Settings.ListRates()
	if err != nil {
		return fmt.Errorf("failed to load subscription rates: %w", err)
	}

	return c.Render("settings/index", viewData(c, fiber.Map{
		"Title":    "Settings",
		"Settings": settings,
		"Rates":    rates,
	}), "layouts/main")
}

// HandleSettingsUpdate saves the club identity details
func HandleSettingsUpdate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	settingsRepo := repository.GetGlobalRepositories().Settings
	settings, err := settingsRepo.GetClubSettings()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/settings")
	}

	settings.ClubName = c.FormValue("club_name", settings.ClubName)
	settings.GSTNumber = c.FormValue("gst_number", settings.GSTNumber)
	settings.Address = c.FormValue("address", settings.Address)
	settings.Email = c.FormValue("email", settings.Email)
	settings.Phone = c.FormValue("phone", settings.Phone)
	settings.BankAccount = c.FormValue("bank_account", settings.BankAccount)

	if err := settings.Validate(); err != nil {
		fm["message"] = "Please check the club details and try again"

		return flash.WithError(c, fm).Redirect("/settings")
	}

	if err := settingsRepo.SaveClubSettings(settings); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/settings")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Club settings saved",
	}

	return flash.WithSuccess(c, fm).Redirect("/settings")
}

// HandleLogoUpload stores a new club logo. The image is normalized to a
// 300px wide PNG so the letterhead renders consistently.
func HandleLogoUpload(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		fm["message"] = "Please choose a logo image"

		return flash.WithError(c, fm).Redirect("/settings")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".gif" {
		fm["message"] = "Logo must be a PNG, JPEG or GIF image"

		return flash.WithError(c, fm).Redirect("/settings")
	}

	file, err := fileHeader.Open()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/settings")
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		fm["message"] = "Could not read the uploaded image"

		return flash.WithError(c, fm).Redirect("/settings")
	}

	resized := imaging.Resize(img, 300, 0, imaging.Lanczos)

	logoPath := filepath.Join(logoUploadDir, "club_logo.png")
	if err := imaging.Save(resized, logoPath); err != nil {
		fm["message"] = fmt.Sprintf("failed to save logo: %s", err)

		return flash.WithError(c, fm).Redirect("/settings")
	}

	settingsRepo := repository.GetGlobalRepositories().Settings
	settings, err := settingsRepo.GetClubSettings()
	if err == nil {
		settings.LogoPath = "/uploads/club_logo.png"
		_ = settingsRepo.SaveClubSettings(settings)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Logo updated",
	}

	return flash.WithSuccess(c, fm).Redirect("/settings")
}

// HandleRateUpdate creates or updates the rate of one membership type
func HandleRateUpdate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	rateValue, err := strconv.ParseFloat(c.FormValue("rate"), 64)
	if err != nil || rateValue < 0 {
		fm["message"] = "Please enter a valid rate"

		return flash.WithError(c, fm).Redirect("/settings")
	}

	rate := models.SubscriptionRate{
		MembershipType: c.FormValue("membership_type"),
		Rate:           rateValue,
		Description:    c.FormValue("description"),
	}

	if raw := c.FormValue("subsidised_rate"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 {
			rate.SubsidisedRate = &parsed
		}
	}

	if err := rate.Validate(); err != nil {
		fm["message"] = "Please check the rate details and try again"

		return flash.WithError(c, fm).Redirect("/settings")
	}

	if err := repository.GetGlobalRepositories().Settings.SaveRate(&rate); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/settings")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Subscription rate saved",
	}

	return flash.WithSuccess(c, fm).Redirect("/settings")
}
