// handlers/profile_routes.go
package handlers

import (
	"dating-match-system/middleware"
	"dating-match-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profiles *services.ProfileService) {
	// 🔓 Public lookups — no user context, but still behind Gateway auth
	app.Get("/profiles", profiles.SearchProfiles)
	app.Get("/profiles/:id", profiles.GetProfile)

	// 🔐 Secured routes — require user context from the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Put("/profile", profiles.PutProfile)
	secured.Post("/profile/photo", profiles.UploadPhoto)
	secured.Put("/profile/location", profiles.PutLocation)
	secured.Put("/profile/interests", profiles.PutInterests)
	secured.Post("/profile/availability", profiles.PostAvailability)

	secured.Get("/matches", profiles.GetMatches)
	secured.Get("/matches/:id", profiles.GetMatch)
}
