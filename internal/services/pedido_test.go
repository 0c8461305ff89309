package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/types"
)

type countingPedidoRepo struct {
	repos.PedidoRepo
	count      int64
	lastEstado types.PedidoEstado
}

func (r *countingPedidoRepo) CountByEstado(ctx context.Context, tx *gorm.DB, estado types.PedidoEstado) (int64, error) {
	r.lastEstado = estado
	return r.count, nil
}

func TestPedidoCountByEstado_DelegatesToRepo(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := &countingPedidoRepo{count: 4}
	svc := NewPedidoService(nil, log, repo, nil)

	got, err := svc.CountByEstado(context.Background(), types.PedidoPedido)
	if err != nil {
		t.Fatalf("CountByEstado: %v", err)
	}
	if got != 4 {
		t.Fatalf("count = %d, want 4", got)
	}
	if repo.lastEstado != types.PedidoPedido {
		t.Fatalf("estado passed through = %q, want %q", repo.lastEstado, types.PedidoPedido)
	}
}
