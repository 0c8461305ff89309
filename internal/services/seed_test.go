package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type memoryConfigRepo struct {
	rows map[string]*types.SistemaConfig
}

func newMemoryConfigRepo() *memoryConfigRepo {
	return &memoryConfigRepo{rows: make(map[string]*types.SistemaConfig)}
}

func (r *memoryConfigRepo) Get(ctx context.Context, tx *gorm.DB, clave string) (*types.SistemaConfig, error) {
	return r.rows[clave], nil
}

func (r *memoryConfigRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.SistemaConfig, error) {
	out := make([]*types.SistemaConfig, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, config *types.SistemaConfig) error {
	r.rows[config.Clave] = config
	return nil
}

func seedServiceForTest(t *testing.T, configRepo *memoryConfigRepo) SeedService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSeedService(nil, log, configRepo, nil, nil)
}

func TestSeedApplyFromFile_FileOverridesDefaultClave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	contents := "config:\n" +
		"  - clave: alerta_tolerancia\n" +
		"    valor: \"1.5\"\n" +
		"    tipo: number\n" +
		"    descripcion: Tolerancia ajustada\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	repo := newMemoryConfigRepo()
	ss := seedServiceForTest(t, repo)
	if err := ss.ApplyFromFile(context.Background(), path); err != nil {
		t.Fatalf("ApplyFromFile: %v", err)
	}

	got := repo.rows[types.ConfigAlertaTolerancia]
	if got == nil {
		t.Fatalf("alerta_tolerancia not seeded")
	}
	if got.Valor != "1.5" {
		t.Fatalf("file override lost: alerta_tolerancia = %q, want %q", got.Valor, "1.5")
	}
	if repo.rows[types.ConfigAlertasActivas] == nil || repo.rows[types.ConfigDemoraDiasSinAvance] == nil {
		t.Fatalf("default claves missing after merge: %v", repo.rows)
	}
}

func TestSeedApplyFromFile_DoesNotOverwriteExistingRows(t *testing.T) {
	repo := newMemoryConfigRepo()
	repo.rows[types.ConfigAlertaTolerancia] = &types.SistemaConfig{
		Clave: types.ConfigAlertaTolerancia,
		Valor: "2.0",
		Tipo:  "number",
	}

	ss := seedServiceForTest(t, repo)
	if err := ss.ApplyFromFile(context.Background(), ""); err != nil {
		t.Fatalf("ApplyFromFile: %v", err)
	}

	if got := repo.rows[types.ConfigAlertaTolerancia].Valor; got != "2.0" {
		t.Fatalf("existing row overwritten: got %q, want %q", got, "2.0")
	}
}

func TestMergeSeedConfig_FileWinsAndNewKeysAppend(t *testing.T) {
	defaults := []SeedConfig{
		{Clave: "a", Valor: "1"},
		{Clave: "b", Valor: "2"},
	}
	fromFile := []SeedConfig{
		{Clave: "b", Valor: "20"},
		{Clave: "c", Valor: "3"},
	}

	merged := mergeSeedConfig(defaults, fromFile)
	if len(merged) != 3 {
		t.Fatalf("expected 3 entries got %d: %v", len(merged), merged)
	}
	if merged[0].Clave != "a" || merged[1].Clave != "b" || merged[2].Clave != "c" {
		t.Fatalf("unexpected order: %v", merged)
	}
	if merged[1].Valor != "20" {
		t.Fatalf("file entry did not win for clave b: got %q", merged[1].Valor)
	}
}
