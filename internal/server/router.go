package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/klasea/astillero-backend/internal/handlers"
	"github.com/klasea/astillero-backend/internal/middleware"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	SSEHandler           *handlers.SSEHandler
	MaterialHandler      *handlers.MaterialHandler
	LaminacionHandler    *handlers.LaminacionHandler
	PedidoHandler        *handlers.PedidoHandler
	ObraHandler          *handlers.ObraHandler
	LineaHandler         *handlers.LineaHandler
	AlertaHandler        *handlers.AlertaHandler
	MarmoleriaHandler    *handlers.MarmoleriaHandler
	MuebleHandler        *handlers.MuebleHandler
	ProcedimientoHandler *handlers.ProcedimientoHandler
	FlotaHandler         *handlers.FlotaHandler
	ConfigHandler        *handlers.ConfigHandler
	AdminHandler         *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	protected.GET("/me", cfg.UserHandler.Me)
	protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)
	protected.GET("/events", cfg.SSEHandler.Subscribe)

	panol := protected.Group("/panol")
	panol.Use(cfg.AuthMiddleware.RequireRoles(types.RolePanol, types.RoleOficina))
	{
		panol.GET("/materiales", cfg.MaterialHandler.List)
		panol.POST("/materiales", cfg.MaterialHandler.Create)
		panol.PUT("/materiales/:id", cfg.MaterialHandler.Update)
		panol.PATCH("/materiales/:id/activo", cfg.MaterialHandler.SetActivo)
		panol.GET("/materiales/bajo-minimo", cfg.MaterialHandler.BelowMinimo)
		panol.GET("/movimientos", cfg.MaterialHandler.ListMovimientos)
		panol.POST("/movimientos", cfg.MaterialHandler.RegisterMovimiento)
		panol.GET("/export/movimientos", cfg.MaterialHandler.ExportMovimientos)
		panol.GET("/export/stock", cfg.MaterialHandler.ExportStock)
	}

	laminacion := protected.Group("/laminacion")
	laminacion.Use(cfg.AuthMiddleware.RequireRoles(types.RoleLaminacion, types.RoleOficina))
	{
		laminacion.GET("/stock", cfg.LaminacionHandler.ListStock)
		laminacion.POST("/materiales", cfg.LaminacionHandler.CreateMaterial)
		laminacion.PUT("/materiales/:id", cfg.LaminacionHandler.UpdateMaterial)
		laminacion.PATCH("/materiales/:id/activo", cfg.LaminacionHandler.SetMaterialActivo)
		laminacion.GET("/movimientos", cfg.LaminacionHandler.ListMovimientos)
		laminacion.POST("/movimientos", cfg.LaminacionHandler.RegisterMovimiento)
	}

	// Pedidos are shared: every workshop role can file and follow orders.
	pedidos := protected.Group("/pedidos")
	{
		pedidos.GET("", cfg.PedidoHandler.List)
		pedidos.GET("/:id", cfg.PedidoHandler.Get)
		pedidos.POST("", cfg.PedidoHandler.Create)
		pedidos.PATCH("/:id/estado", cfg.PedidoHandler.AdvanceEstado)
		pedidos.PUT("/:id", cfg.PedidoHandler.UpdateHeader)
		pedidos.POST("/:id/items", cfg.PedidoHandler.AddItem)
		pedidos.DELETE("/:id/items/:itemId", cfg.PedidoHandler.DeleteItem)
		pedidos.DELETE("/:id", cfg.PedidoHandler.Delete)
	}

	obras := protected.Group("/obras")
	obras.Use(cfg.AuthMiddleware.RequireRoles(types.RoleOficina, types.RoleLaminacion))
	{
		obras.GET("", cfg.ObraHandler.List)
		obras.GET("/gantt", cfg.ObraHandler.ListGantt)
		obras.GET("/:id", cfg.ObraHandler.Get)
		obras.GET("/:id/gantt", cfg.ObraHandler.Gantt)
		obras.POST("", cfg.ObraHandler.Create)
		obras.PUT("/:id", cfg.ObraHandler.Update)
		obras.PATCH("/:id/estado", cfg.ObraHandler.SetEstado)
		obras.PATCH("/:id/linea", cfg.ObraHandler.AssignLinea)
		obras.PATCH("/timeline/:timelineId", cfg.ObraHandler.AdvanceStage)
	}

	lineas := protected.Group("/lineas")
	lineas.Use(cfg.AuthMiddleware.RequireRoles(types.RoleOficina, types.RoleLaminacion))
	{
		lineas.GET("", cfg.LineaHandler.List)
		lineas.GET("/:id", cfg.LineaHandler.Get)

		escritura := lineas.Group("/")
		escritura.Use(cfg.AuthMiddleware.RequireRoles(types.RoleOficina))
		{
			escritura.POST("", cfg.LineaHandler.Create)
			escritura.PATCH(":id/nombre", cfg.LineaHandler.Rename)
			escritura.PATCH(":id/activo", cfg.LineaHandler.SetActivo)
			escritura.POST(":id/procesos", cfg.LineaHandler.AddProceso)
			escritura.PUT("procesos/:procesoId", cfg.LineaHandler.UpdateProceso)
			escritura.PATCH("procesos/:procesoId/activo", cfg.LineaHandler.SetProcesoActivo)
		}
	}

	alertas := protected.Group("/alertas")
	{
		alertas.GET("", cfg.AlertaHandler.List)
		alertas.GET("/count", cfg.AlertaHandler.CountOpen)
		alertas.PATCH("/:id/resolver", cfg.AuthMiddleware.RequireRoles(types.RoleOficina), cfg.AlertaHandler.Resolve)
	}

	marmoleria := protected.Group("/marmoleria")
	marmoleria.Use(cfg.AuthMiddleware.RequireRoles(types.RoleMuebles, types.RoleOficina))
	{
		marmoleria.GET("/lineas", cfg.MarmoleriaHandler.ListLineas)
		marmoleria.POST("/lineas", cfg.MarmoleriaHandler.CreateLinea)
		marmoleria.DELETE("/lineas/:id", cfg.MarmoleriaHandler.DeleteLinea)
		marmoleria.POST("/lineas/:id/piezas", cfg.MarmoleriaHandler.AddPieza)
		marmoleria.DELETE("/piezas/:piezaId", cfg.MarmoleriaHandler.DeletePieza)
		marmoleria.GET("/unidades", cfg.MarmoleriaHandler.ListUnidades)
		marmoleria.GET("/unidades/:id", cfg.MarmoleriaHandler.GetUnidad)
		marmoleria.POST("/unidades", cfg.MarmoleriaHandler.CreateUnidad)
		marmoleria.DELETE("/unidades/:id", cfg.MarmoleriaHandler.DeleteUnidad)
		marmoleria.PATCH("/unidades/piezas/:piezaId", cfg.MarmoleriaHandler.UpdateUnidadPieza)
		marmoleria.POST("/unidades/piezas/:piezaId/foto", cfg.MarmoleriaHandler.AttachFoto)
		marmoleria.GET("/reporte", cfg.MarmoleriaHandler.StatusReport)
	}

	muebles := protected.Group("/muebles")
	muebles.Use(cfg.AuthMiddleware.RequireRoles(types.RoleMuebles, types.RoleOficina))
	{
		muebles.GET("/lineas", cfg.MuebleHandler.ListLineas)
		muebles.POST("/lineas", cfg.MuebleHandler.CreateLinea)
		muebles.DELETE("/lineas/:id", cfg.MuebleHandler.DeleteLinea)
		muebles.POST("/lineas/:id/items", cfg.MuebleHandler.AddItem)
		muebles.PUT("/items/:itemId", cfg.MuebleHandler.UpdateItem)
		muebles.DELETE("/items/:itemId", cfg.MuebleHandler.DeleteItem)
		muebles.POST("/items/:itemId/imagenes", cfg.MuebleHandler.UploadImagen)
		muebles.DELETE("/imagenes/:imagenId", cfg.MuebleHandler.DeleteImagen)
		muebles.GET("/unidades", cfg.MuebleHandler.ListUnidades)
		muebles.GET("/unidades/:id", cfg.MuebleHandler.GetUnidad)
		muebles.POST("/unidades", cfg.MuebleHandler.CreateUnidad)
		muebles.DELETE("/unidades/:id", cfg.MuebleHandler.DeleteUnidad)
		muebles.PATCH("/unidades/items/:itemId", cfg.MuebleHandler.UpdateUnidadItem)
	}

	procedimientos := protected.Group("/procedimientos")
	{
		procedimientos.GET("", cfg.ProcedimientoHandler.List)
		procedimientos.GET("/:id", cfg.ProcedimientoHandler.Get)

		gestion := procedimientos.Group("/")
		gestion.Use(cfg.AuthMiddleware.RequireRoles(types.RoleOficina))
		{
			gestion.GET("todos", cfg.ProcedimientoHandler.ListAll)
			gestion.POST("", cfg.ProcedimientoHandler.Create)
			gestion.PUT(":id", cfg.ProcedimientoHandler.Update)
			gestion.PATCH(":id/archivar", cfg.ProcedimientoHandler.Archive)
			gestion.POST(":id/pdf", cfg.ProcedimientoHandler.AttachPDF)
		}
	}

	flota := protected.Group("/flota")
	flota.Use(cfg.AuthMiddleware.RequireRoles(types.RoleOficina))
	{
		flota.GET("", cfg.FlotaHandler.List)
		flota.POST("", cfg.FlotaHandler.Create)
		flota.PUT("/:id", cfg.FlotaHandler.Update)
		flota.DELETE("/:id", cfg.FlotaHandler.Delete)
	}

	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/dashboard", cfg.AdminHandler.Dashboard)
		admin.GET("/usuarios", cfg.UserHandler.List)
		admin.POST("/usuarios", cfg.UserHandler.Create)
		admin.PATCH("/usuarios/:id/rol", cfg.UserHandler.UpdateRole)
		admin.PATCH("/usuarios/:id/activo", cfg.UserHandler.SetActivo)
		admin.GET("/config", cfg.ConfigHandler.List)
		admin.PUT("/config", cfg.ConfigHandler.Set)
	}

	return router
}
