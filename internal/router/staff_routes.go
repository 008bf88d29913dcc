package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagex-boxoffice/internal/handler"
	"github.com/iliyamo/stagex-boxoffice/internal/middleware"
)

// StaffHandlers groups the back-office handlers.
type StaffHandlers struct {
	Categories *handler.SeatCategoryHandler
	Theaters   *handler.TheaterHandler
	Editor     *handler.EditorHandler
	Genres     *handler.GenreHandler
	Shows      *handler.ShowHandler
	Bookings   *handler.BookingHandler
}

// RegisterStaff registers the back-office API under /v1.  Every route
// requires an ADMIN or STAFF bearer token; cache wraps the list reads.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStaff),
	)

	g.GET("/seat-categories", h.Categories.List, cache)
	g.POST("/seat-categories", h.Categories.Create)
	g.PUT("/seat-categories/:id", h.Categories.Update)
	g.DELETE("/seat-categories/:id", h.Categories.Delete)

	g.GET("/theaters", h.Theaters.List, cache)
	g.GET("/theaters/:id/seats", h.Theaters.Seats)
	g.DELETE("/theaters/:id", h.Theaters.Delete)

	g.GET("/genres", h.Genres.List, cache)
	g.POST("/genres", h.Genres.Create)
	g.PUT("/genres/:id", h.Genres.Update)
	g.DELETE("/genres/:id", h.Genres.Delete)

	g.GET("/shows", h.Shows.List, cache)
	g.POST("/shows", h.Shows.Create)
	g.PUT("/shows/:id", h.Shows.Update)
	g.DELETE("/shows/:id", h.Shows.Delete)

	g.GET("/bookings", h.Bookings.List)

	ed := g.Group("/editor/sessions")
	ed.POST("", h.Editor.Create)
	ed.POST("/theaters/:id", h.Editor.LoadTheater)
	ed.GET("/:sid", h.Editor.Get)
	ed.POST("/:sid/preview", h.Editor.Preview)
	ed.POST("/:sid/toggle", h.Editor.Toggle)
	ed.POST("/:sid/select-range", h.Editor.SelectRange)
	ed.POST("/:sid/remove", h.Editor.Remove)
	ed.POST("/:sid/apply-category", h.Editor.ApplyCategory)
	ed.POST("/:sid/save", h.Editor.Save)
	ed.DELETE("/:sid", h.Editor.Delete)
}
