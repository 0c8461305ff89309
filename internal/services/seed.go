package services

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/types"
)

// SeedFile is the shape of the optional startup seed. It carries the
// sistema_config defaults and the initial line templates for a fresh
// installation; existing rows are never overwritten.
type SeedFile struct {
	Config []SeedConfig `yaml:"config"`
	Lineas []SeedLinea  `yaml:"lineas"`
}

type SeedConfig struct {
	Clave       string `yaml:"clave"`
	Valor       string `yaml:"valor"`
	Tipo        string `yaml:"tipo"`
	Descripcion string `yaml:"descripcion"`
}

type SeedLinea struct {
	Nombre   string        `yaml:"nombre"`
	Procesos []SeedProceso `yaml:"procesos"`
}

type SeedProceso struct {
	Orden          int     `yaml:"orden"`
	Nombre         string  `yaml:"nombre"`
	DiasEstimados  float64 `yaml:"dias_estimados"`
	Color          string  `yaml:"color"`
	GeneraAviso    bool    `yaml:"genera_aviso"`
	AvisoTipo      string  `yaml:"aviso_tipo"`
	AvisoMensaje   string  `yaml:"aviso_mensaje"`
	AvisoSeveridad string  `yaml:"aviso_severidad"`
}

type SeedService interface {
	// ApplyFromFile loads the YAML seed at path, if it exists, and fills
	// in missing config keys and line templates.
	ApplyFromFile(ctx context.Context, path string) error
}

type seedService struct {
	db           *gorm.DB
	log          *logger.Logger
	configRepo   repos.SistemaConfigRepo
	lineaRepo    repos.LineaRepo
	lineaService LineaService
}

func NewSeedService(db *gorm.DB, log *logger.Logger, configRepo repos.SistemaConfigRepo, lineaRepo repos.LineaRepo, lineaService LineaService) SeedService {
	return &seedService{
		db:           db,
		log:          log.With("service", "SeedService"),
		configRepo:   configRepo,
		lineaRepo:    lineaRepo,
		lineaService: lineaService,
	}
}

func defaultSeed() SeedFile {
	return SeedFile{
		Config: []SeedConfig{
			{Clave: types.ConfigAlertaTolerancia, Valor: "1.2", Tipo: "number", Descripcion: "Factor de tolerancia antes de marcar una etapa como demorada"},
			{Clave: types.ConfigAlertasActivas, Valor: "true", Tipo: "boolean", Descripcion: "Habilita el evaluador periódico de alertas"},
			{Clave: types.ConfigDemoraDiasSinAvance, Valor: "7", Tipo: "number", Descripcion: "Días sin avances antes de alertar una obra estancada"},
		},
	}
}

// mergeSeedConfig overlays file entries on the defaults. A file entry
// with a clave already present in the defaults replaces it in place so
// a fresh install picks up the override, not the built-in value.
func mergeSeedConfig(defaults, fromFile []SeedConfig) []SeedConfig {
	merged := make([]SeedConfig, len(defaults))
	copy(merged, defaults)
	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.Clave] = i
	}
	for _, c := range fromFile {
		if i, ok := index[c.Clave]; ok {
			merged[i] = c
			continue
		}
		index[c.Clave] = len(merged)
		merged = append(merged, c)
	}
	return merged
}

func (ss *seedService) ApplyFromFile(ctx context.Context, path string) error {
	seed := defaultSeed()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			ss.log.Info("Seed file not found, applying built-in defaults", "path", path)
		case err != nil:
			return fmt.Errorf("read seed file: %w", err)
		default:
			var fromFile SeedFile
			if uErr := yaml.Unmarshal(raw, &fromFile); uErr != nil {
				return fmt.Errorf("parse seed file: %w", uErr)
			}
			seed.Config = mergeSeedConfig(seed.Config, fromFile.Config)
			seed.Lineas = fromFile.Lineas
		}
	}

	for _, c := range seed.Config {
		existing, gErr := ss.configRepo.Get(ctx, nil, c.Clave)
		if gErr != nil {
			return gErr
		}
		if existing != nil {
			continue
		}
		if uErr := ss.configRepo.Upsert(ctx, nil, &types.SistemaConfig{
			Clave:       c.Clave,
			Valor:       c.Valor,
			Tipo:        c.Tipo,
			Descripcion: c.Descripcion,
		}); uErr != nil {
			return fmt.Errorf("seed config %q: %w", c.Clave, uErr)
		}
		ss.log.Info("Seeded config key", "clave", c.Clave, "valor", c.Valor)
	}

	if len(seed.Lineas) == 0 {
		return nil
	}
	existing, lErr := ss.lineaRepo.List(ctx, nil, false)
	if lErr != nil {
		return lErr
	}
	have := make(map[string]bool, len(existing))
	for _, l := range existing {
		have[l.Nombre] = true
	}
	for _, l := range seed.Lineas {
		if have[l.Nombre] {
			continue
		}
		procesos := make([]ProcesoInput, 0, len(l.Procesos))
		for _, p := range l.Procesos {
			procesos = append(procesos, ProcesoInput{
				Orden:          p.Orden,
				Nombre:         p.Nombre,
				DiasEstimados:  p.DiasEstimados,
				Color:          p.Color,
				GeneraAviso:    p.GeneraAviso,
				AvisoTipo:      p.AvisoTipo,
				AvisoMensaje:   p.AvisoMensaje,
				AvisoSeveridad: types.AlertaSeveridad(p.AvisoSeveridad),
			})
		}
		if _, cErr := ss.lineaService.CreateLinea(ctx, CreateLineaInput{Nombre: l.Nombre, Procesos: procesos}); cErr != nil {
			return fmt.Errorf("seed linea %q: %w", l.Nombre, cErr)
		}
		ss.log.Info("Seeded linea", "nombre", l.Nombre, "procesos", len(l.Procesos))
	}
	return nil
}
