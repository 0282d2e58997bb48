package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPublicRoutes(app, handler)
	registerBabyRoutes(app, handler)
}

func registerPublicRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.Root)
	app.Get("/register", handler.ShowRegisterPage)
	app.Post("/register", handler.Register)
	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.Login)
	app.Get("/logout", handler.LogoutRedirect)
	app.Post("/logout", handler.Logout)

	app.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)
}

func registerBabyRoutes(app *fiber.App, handler *Handler) {
	baby := app.Group("/baby", handler.AuthRequired)
	baby.Get("/new", handler.ShowNewBabyPage)
	baby.Post("/new", handler.CreateBaby)

	scoped := baby.Group("/:id", handler.BabyAccess)
	scoped.Get("", handler.ShowBaby)
	scoped.Get("/add-caregiver", handler.RedirectToBaby)
	scoped.Post("/add-caregiver", handler.AddCaregiver)
	scoped.Post("/remove-caregiver", handler.BabyOwnerOnly, handler.RemoveCaregiver)
	scoped.Post("/transfer-owner", handler.BabyOwnerOnly, handler.TransferOwner)
	scoped.Post("/invite-parent", handler.InviteParent)
	scoped.Post("/invite-caregiver", handler.InviteCaregiver)
	scoped.Get("/track/:type", handler.ShowTrackForm)
	scoped.Post("/track/:type", handler.TrackEvent)
	scoped.Get("/edit/:trackingType/:eventId", handler.ShowEditTrackingForm)
	scoped.Post("/edit/:trackingType/:eventId", handler.EditTrackingEvent)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
