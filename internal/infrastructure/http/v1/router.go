// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/role"
	"stayhub/internal/core/security"
	"stayhub/internal/domain/auth"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/invoice"
	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/property"
	"stayhub/internal/domain/tenant"
	"stayhub/internal/infrastructure/http/v1/dto"
	"stayhub/internal/infrastructure/http/v1/handlers"
	"stayhub/internal/infrastructure/http/v1/middleware"
	"stayhub/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Mode is the gin mode: debug, release or test.
	Mode string

	// Logger for request logging
	Logger *logger.Logger

	// Sessions resolves bearer credentials on protected routes.
	Sessions middleware.SessionResolver

	// TenantGate checks ownership of resources addressed by :id.
	TenantGate *security.TenantGate

	AuthService   *auth.Service
	TenantService *tenant.Service

	Properties handlers.ResourceService[*property.Property]
	Bookings   handlers.ResourceService[*booking.Booking]
	Payments   handlers.ResourceService[*payment.Payment]
	Invoices   handlers.ResourceService[*invoice.Invoice]

	// HealthChecks are probed by /health/ready.
	HealthChecks []handlers.HealthCheck
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: apperror.CodeNotFound, Message: "Route not found"})
	})

	healthHandler := handlers.NewHealthHandler(cfg.HealthChecks...)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	guard := middleware.NewGuard(cfg.Sessions, cfg.TenantGate)
	base := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	registerAuthRoutes(api, guard, base, cfg)
	registerUserRoutes(api, guard, base, cfg)
	registerTenantRoutes(api, guard, base, cfg)
	registerResourceRoutes(api, guard, base, cfg)

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, guard *middleware.Guard, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}
	h := handlers.NewAuthHandler(base, cfg.AuthService)

	g := rg.Group("/auth")
	route(g, guard, http.MethodPost, "/register", security.PublicRoute(), h.Register)
	route(g, guard, http.MethodPost, "/login", security.PublicRoute(), h.Login)
	route(g, guard, http.MethodGet, "/me", security.AuthenticatedRoute(), h.Me)
}

// registerUserRoutes registers identity administration endpoints.
func registerUserRoutes(rg *gin.RouterGroup, guard *middleware.Guard, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}
	h := handlers.NewUserHandler(base, cfg.AuthService)
	admins := security.RolesRoute(role.SuperAdmin, role.Admin)

	g := rg.Group("/users")
	route(g, guard, http.MethodGet, "", security.RolesRoute(role.SuperAdmin, role.Admin, role.Manager), h.List)
	route(g, guard, http.MethodPatch, "/:userId/role", admins, h.ChangeRole)
	route(g, guard, http.MethodPatch, "/:userId/active", admins, h.SetActive)
}

// registerTenantRoutes registers superuser-only tenant endpoints.
func registerTenantRoutes(rg *gin.RouterGroup, guard *middleware.Guard, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.TenantService == nil {
		return
	}
	h := handlers.NewTenantHandler(base, cfg.TenantService)
	superusers := security.RolesRoute(role.SuperAdmin)

	g := rg.Group("/tenants")
	route(g, guard, http.MethodPost, "", superusers, h.Create)
	route(g, guard, http.MethodGet, "", superusers, h.List)
	route(g, guard, http.MethodGet, "/:slug", superusers, h.Get)
	route(g, guard, http.MethodPatch, "/:slug/active", superusers, h.SetActive)
}

// registerResourceRoutes registers the tenant-owned resource endpoints.
func registerResourceRoutes(rg *gin.RouterGroup, guard *middleware.Guard, base *handlers.BaseHandler, cfg RouterConfig) {
	policies := DefaultResourcePolicies()

	// --- PROPERTIES ---
	if cfg.Properties != nil {
		h := handlers.NewResourceHandler(base, handlers.ResourceHandlerConfig[*property.Property, dto.CreatePropertyRequest, dto.UpdatePropertyRequest]{
			Service:      cfg.Properties,
			EntityName:   "property",
			MapCreateDTO: dto.CreatePropertyRequest.ToEntity,
			MapUpdateDTO: dto.UpdatePropertyRequest.ApplyTo,
		})
		RegisterResourceRoutes(rg.Group("/properties"), guard, h, policies)
	}

	// --- BOOKINGS ---
	if cfg.Bookings != nil {
		h := handlers.NewResourceHandler(base, handlers.ResourceHandlerConfig[*booking.Booking, dto.CreateBookingRequest, dto.UpdateBookingRequest]{
			Service:      cfg.Bookings,
			EntityName:   "booking",
			MapCreateDTO: dto.CreateBookingRequest.ToEntity,
			MapUpdateDTO: dto.UpdateBookingRequest.ApplyTo,
		})
		RegisterResourceRoutes(rg.Group("/bookings"), guard, h, policies)
	}

	// --- PAYMENTS ---
	if cfg.Payments != nil {
		h := handlers.NewResourceHandler(base, handlers.ResourceHandlerConfig[*payment.Payment, dto.CreatePaymentRequest, dto.UpdatePaymentRequest]{
			Service:      cfg.Payments,
			EntityName:   "payment",
			MapCreateDTO: dto.CreatePaymentRequest.ToEntity,
			MapUpdateDTO: dto.UpdatePaymentRequest.ApplyTo,
		})
		RegisterResourceRoutes(rg.Group("/payments"), guard, h, policies)
	}

	// --- INVOICES ---
	if cfg.Invoices != nil {
		h := handlers.NewResourceHandler(base, handlers.ResourceHandlerConfig[*invoice.Invoice, dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest]{
			Service:      cfg.Invoices,
			EntityName:   "invoice",
			MapCreateDTO: dto.CreateInvoiceRequest.ToEntity,
			MapUpdateDTO: dto.UpdateInvoiceRequest.ApplyTo,
		})
		RegisterResourceRoutes(rg.Group("/invoices"), guard, h, policies)
	}
}
