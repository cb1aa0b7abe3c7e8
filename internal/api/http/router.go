package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/http/handlers"
	"github.com/spec-kit/live-commerce/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Users      *handlers.UsersHandler
	Admin      *handlers.AdminHandler
	Seller     *handlers.SellerHandler
	Products   *handlers.ProductsHandler
	Categories *handlers.CategoriesHandler
	Streams    *handlers.StreamsHandler
	Recordings *handlers.RecordingsHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.Gate.RequireAuthenticated(), cfg.Users.Logout)
	authGroup.Get("/me", cfg.Gate.RequireAuthenticated(), cfg.Users.Me)
	authGroup.Patch("/me", cfg.Gate.RequireAuthenticated(), cfg.Users.UpdateMe)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)
	admin.Get("/me", cfg.Gate.RequireAdmin(), cfg.Admin.Me)
	admin.Get("/users", cfg.Gate.RequireAdmin(), cfg.Admin.ListUsers)
	admin.Get("/users/:userId", cfg.Gate.RequireAdmin(), cfg.Admin.GetUser)
	admin.Put("/assign-role/:userId", cfg.Gate.RequireSuperAdmin(), cfg.Admin.AssignRole)
	admin.Delete("/users/:userId", cfg.Gate.RequireSuperAdmin(), cfg.Admin.DeleteUser)
	admin.Get("/stats", cfg.Gate.RequireAdmin(), cfg.Admin.Stats)

	seller := api.Group("/seller", cfg.Gate.RequireSeller())
	seller.Get("/stats", cfg.Seller.Stats)
	seller.Get("/my-streams", cfg.Seller.MyStreams)
	seller.Get("/my-products", cfg.Seller.MyProducts)
	seller.Put("/products/:productId", cfg.Seller.UpdateProduct)
	seller.Delete("/products/:productId", cfg.Seller.DeleteProduct)
	seller.Get("/recordings", cfg.Seller.Recordings)
	seller.Get("/profile", cfg.Seller.Profile)
	seller.Patch("/profile", cfg.Seller.UpdateProfile)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Post("/", cfg.Gate.RequireAuthenticated(), cfg.Products.Create)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/admin/stats", cfg.Gate.RequireAdmin(), cfg.Categories.Stats)
	categories.Get("/:categoryId", cfg.Categories.Get)
	categories.Get("/:categoryId/products", cfg.Categories.Products)
	categories.Post("/", cfg.Gate.RequireAdmin(), cfg.Categories.Create)
	categories.Put("/:categoryId", cfg.Gate.RequireAdmin(), cfg.Categories.Update)
	categories.Delete("/:categoryId", cfg.Gate.RequireAdmin(), cfg.Categories.Delete)

	stream := api.Group("/stream")
	stream.Get("/token", cfg.Gate.RequireAuthenticated(), cfg.Streams.ViewerToken)
	stream.Get("/recorded", cfg.Gate.RequireAuthenticated(), cfg.Streams.ListRecorded)
	stream.Get("/", cfg.Streams.ListActive)
	stream.Post("/", cfg.Gate.RequireAuthenticated(), cfg.Streams.Create)
	stream.Get("/:callId", cfg.Streams.Get)
	stream.Post("/:callId/end", cfg.Gate.RequireAuthenticated(), cfg.Streams.End)
	stream.Post("/:callId/join", cfg.Gate.RequireAuthenticated(), cfg.Streams.Join)
	stream.Post("/:callId/leave", cfg.Gate.RequireAuthenticated(), cfg.Streams.Leave)
	stream.Post("/:callId/recording", cfg.Gate.RequireAuthenticated(), cfg.Streams.UploadRecording)
	stream.Get("/:callId/recording/video", cfg.Recordings.Video)
}
