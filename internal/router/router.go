package router

import (
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/cache"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/handler"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/middleware"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/service"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	cierreRepo := repository.NewCierreRepository(db)
	notifRepo := repository.NewNotificacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	readModels := cache.NewReadModels(rdb)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	sucursalSvc := service.NewSucursalService(sucursalRepo)
	cierreSvc := service.NewCierreService(cierreRepo, notifRepo, readModels, dispatcher, cfg)
	resumenSvc := service.NewResumenService(cierreRepo, sucursalRepo, readModels)
	reporteSvc := service.NewReporteService(cierreRepo, sucursalRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	cierresH := handler.NewCierresHandler(cierreSvc, reporteSvc)
	resumenH := handler.NewResumenHandler(resumenSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: encargado, supervisor, administrador — declared per-endpoint
		cierres := v1.Group("/cierres", middleware.RequireRole("encargado", "supervisor", "administrador"))
		{
			cierres.POST("", cierresH.Guardar)
			cierres.GET("", cierresH.PorDia)
			cierres.GET("/:sucursal_id/:fecha/:turno", cierresH.Uno)
			cierres.GET("/:sucursal_id/:fecha/:turno/pdf", cierresH.PDF)
		}

		// Brand-wide summary — supervision only
		v1.GET("/resumen/marca", middleware.RequireRole("supervisor", "administrador"), resumenH.Marca)

		// Sucursales — all roles read, administrador writes
		v1.GET("/sucursales", middleware.RequireRole("encargado", "supervisor", "administrador"), sucursalesH.Listar)
		v1.GET("/sucursales/:id", middleware.RequireRole("encargado", "supervisor", "administrador"), sucursalesH.Obtener)
		sucursales := v1.Group("/sucursales", middleware.RequireRole("administrador"))
		{
			sucursales.POST("", sucursalesH.Crear)
			sucursales.PUT("/:id", sucursalesH.Actualizar)
			sucursales.PUT("/:id/turnos", sucursalesH.ConfigurarTurno)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
