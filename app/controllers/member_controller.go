package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/app/repository"
	"github.com/shashank2020/samurais-admin/internal/pkg/statistics"
)

// HandleMembers renders the member roster with active and pending tabs
func HandleMembers(c *fiber.Ctx) error {
	tab := c.Query("tab", models.MEMBER_STATUS_ACTIVE)
	if tab != models.MEMBER_STATUS_ACTIVE && tab != models.MEMBER_STATUS_PENDING && tab != models.MEMBER_STATUS_INACTIVE {
		tab = models.MEMBER_STATUS_ACTIVE
	}

	memberRepo := repository.GetGlobalRepositories().Member

	var (
		members []models.Member
		err     error
	)
	if query := c.Query("q"); query != "" {
		members, err = memberRepo.Search(query)
	} else {
		members, err = memberRepo.ListByStatus(tab)
	}
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	return c.Render("members/index", viewData(c, fiber.Map{
		"Title":   "Members",
		"Tab":     tab,
		"Members": members,
		"Query":   c.Query("q"),
	}), "layouts/main")
}

// HandleMemberNew renders the add-member form
func HandleMemberNew(c *fiber.Ctx) error {
	return c.Render("members/new", viewData(c, fiber.Map{
		"Title": "Add Member",
	}), "layouts/main")
}

// HandleMemberCreate creates a new member. New members start pending and
// must be activated before they appear on the payment grid.
func HandleMemberCreate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	member := models.Member{
		GivenName:      c.FormValue("given_name"),
		PreferredName:  c.FormValue("preferred_name"),
		Email:          c.FormValue("email"),
		Mobile:         c.FormValue("mobile"),
		Address:        c.FormValue("address"),
		MembershipType: c.FormValue("membership_type"),
		Status:         models.MEMBER_STATUS_PENDING,
	}

	if err := member.Validate(); err != nil {
		fm["message"] = "Please check the member details and try again"

		return flash.WithError(c, fm).Redirect("/members/new")
	}

	if err := repository.GetGlobalRepositories().Member.Create(&member); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/members/new")
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("%s added to the roster", member.DisplayName()),
	}

	return flash.WithSuccess(c, fm).Redirect("/members?tab=pending")
}

// HandleMemberEdit renders the edit form for one member
func HandleMemberEdit(c *fiber.Ctx) error {
	member, err := memberFromParams(c)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Member not found",
		}
		return flash.WithError(c, fm).Redirect("/members")
	}

	return c.Render("members/edit", viewData(c, fiber.Map{
		"Title":  "Edit Member",
		"Member": member,
	}), "layouts/main")
}

// HandleMemberUpdate applies edits to a member record
func HandleMemberUpdate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	member, err := memberFromParams(c)
	if err != nil {
		fm["message"] = "Member not found"

		return flash.WithError(c, fm).Redirect("/members")
	}

	member.GivenName = c.FormValue("given_name", member.GivenName)
	member.PreferredName = c.FormValue("preferred_name", member.PreferredName)
	member.Email = c.FormValue("email", member.Email)
	member.Mobile = c.FormValue("mobile", member.Mobile)
	member.Address = c.FormValue("address", member.Address)
	member.MembershipType = c.FormValue("membership_type", member.MembershipType)
	if status := c.FormValue("status"); status != "" {
		member.Status = status
	}

	if err := member.Validate(); err != nil {
		fm["message"] = "Please check the member details and try again"

		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/members/%d/edit", member.ID))
	}

	if err := repository.GetGlobalRepositories().Member.Update(member); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(fmt.Sprintf("/members/%d/edit", member.ID))
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type":    "success",
		"message": "Member updated",
	}

	return flash.WithSuccess(c, fm).Redirect("/members")
}

// HandleMemberActivate moves a pending member onto the active roster and
// stamps their join date
func HandleMemberActivate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	member, err := memberFromParams(c)
	if err != nil {
		fm["message"] = "Member not found"

		return flash.WithError(c, fm).Redirect("/members?tab=pending")
	}

	member.Status = models.MEMBER_STATUS_ACTIVE
	if member.JoinedAt == nil {
		now := time.Now()
		member.JoinedAt = &now
	}

	if err := repository.GetGlobalRepositories().Member.Update(member); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/members?tab=pending")
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("%s is now an active member", member.DisplayName()),
	}

	return flash.WithSuccess(c, fm).Redirect("/members")
}

// HandleMemberDelete soft deletes a member
func HandleMemberDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	member, err := memberFromParams(c)
	if err != nil {
		fm["message"] = "Member not found"

		return flash.WithError(c, fm).Redirect("/members")
	}

	if err := repository.GetGlobalRepositories().Member.Delete(member.ID); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/members")
	}

	statistics.ResetCacheUpdateTimer()

	fm = fiber.Map{
		"type":    "success",
		"message": "Member removed",
	}

	return flash.WithSuccess(c, fm).Redirect("/members")
}

func memberFromParams(c *fiber.Ctx) (*models.Member, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, err
	}
	return repository.GetGlobalRepositories().Member.GetByID(uint(id))
}
