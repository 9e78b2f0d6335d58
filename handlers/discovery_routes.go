// handlers/discovery_routes.go
package handlers

import (
	"dating-match-system/middleware"
	"dating-match-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupDiscoveryRoutes wires the feed and swipe endpoints. Everything here
// needs a resolved user identity, so the whole group sits behind the
// user-context middleware.
func SetupDiscoveryRoutes(app *fiber.App, discovery *services.DiscoveryService, swipes *services.SwipeService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/feed", discovery.GetFeed)
	secured.Get("/nearby", discovery.NearbyUsers)
	secured.Post("/swipes", swipes.PostDecision)
}
