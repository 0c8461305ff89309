package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/types"
)

type AdminHandler struct {
	userService     services.UserService
	materialService services.MaterialService
	pedidoService   services.PedidoService
	obraService     services.ObraService
	alertaService   services.AlertaService
}

func NewAdminHandler(
	userService services.UserService,
	materialService services.MaterialService,
	pedidoService services.PedidoService,
	obraService services.ObraService,
	alertaService services.AlertaService,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		materialService: materialService,
		pedidoService:   pedidoService,
		obraService:     obraService,
		alertaService:   alertaService,
	}
}

// Dashboard aggregates the counters shown on the admin landing page.
func (ah *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		belowMinimo   []*services.MaterialConEstado
		pedidosCount  int64
		obrasEnCurso  []*types.Obra
		alertasCount  int64
		usuariosCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		belowMinimo, err = ah.materialService.ListBelowMinimo(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pedidosCount, err = ah.pedidoService.CountByEstado(gctx, types.PedidoPedido)
		return err
	})
	g.Go(func() error {
		estado := types.ObraActiva
		var err error
		obrasEnCurso, err = ah.obraService.ListObras(gctx, &estado)
		return err
	})
	g.Go(func() error {
		var err error
		alertasCount, err = ah.alertaService.CountOpen(gctx)
		return err
	})
	g.Go(func() error {
		users, err := ah.userService.ListUsers(gctx)
		if err != nil {
			return err
		}
		usuariosCount = len(users)
		return nil
	})
	if err := g.Wait(); err != nil {
		RespondError(c, http.StatusInternalServerError, "dashboard_failed", err)
		return
	}

	RespondOK(c, gin.H{
		"materiales_bajo_minimo": belowMinimo,
		"pedidos_abiertos":       pedidosCount,
		"obras_activas":          len(obrasEnCurso),
		"alertas_abiertas":       alertasCount,
		"usuarios":               usuariosCount,
	})
}
