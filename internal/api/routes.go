package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/set-email-password", handler.SetEmailPassword)

	users := api.Group("/users", handler.AuthRequired)
	users.Put("/update", handler.UpdateUser)
	users.Get("/admin/sync-stats", handler.SyncStats)
	users.Post("/verify-gender", handler.VerifyGender)
	users.Get("/:userHash", handler.GetUser)

	checkins := api.Group("/checkins", handler.AuthRequired)
	checkins.Post("/:userHash", handler.CreateCheckIn)
	checkins.Get("/:userHash", handler.ListCheckIns)

	migration := api.Group("/migration")
	migration.Post("/generate-code", handler.GenerateMigrationCode)
	migration.Post("/verify-code", handler.VerifyMigrationCode)
	migration.Get("/status", handler.MigrationStatus)

	feedback := api.Group("/feedback")
	feedback.Post("", handler.SubmitFeedback)
	feedback.Get("", handler.ListFeedback)
	feedback.Get("/:id", handler.GetFeedback)
	feedback.Put("/:id", handler.UpdateFeedback)

	docs := api.Group("/docs")
	docs.Post("", handler.CreateDoc)
	docs.Get("", handler.ListDocs)
	docs.Get("/:id", handler.GetDoc)
	docs.Put("/:id", handler.UpdateDoc)
	docs.Delete("/:id", handler.DeleteDoc)

	invites := api.Group("/research-invites", handler.AuthRequired)
	invites.Post("", handler.CreateResearchInvite)
	invites.Get("", handler.ListResearchInvites)
	invites.Get("/:id/status", handler.ResearchInviteUserStatus)
	invites.Get("/:id/invited-users", handler.ResearchInviteInvitedUsers)
	invites.Get("/:id/stats", handler.ResearchInviteStats)
	invites.Post("/:id/invite", handler.InviteUserToResearch)
	invites.Post("/:id/respond", handler.RespondToResearchInvite)
	invites.Get("/:id", handler.GetResearchInvite)
	invites.Put("/:id", handler.UpdateResearchInvite)
	invites.Delete("/:id", handler.DeleteResearchInvite)
}
