package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "astillero", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Material{},
		&types.Movimiento{},
		&types.LaminacionMaterial{},
		&types.LaminacionMovimiento{},
		&types.Pedido{},
		&types.PedidoItem{},
		&types.LineaProduccion{},
		&types.LineaProceso{},
		&types.Obra{},
		&types.ObraTimeline{},
		&types.Alerta{},
		&types.MarmoleriaLinea{},
		&types.MarmoleriaPieza{},
		&types.MarmoleriaUnidad{},
		&types.MarmoleriaUnidadPieza{},
		&types.MuebleLinea{},
		&types.MuebleItem{},
		&types.MuebleImagen{},
		&types.MuebleUnidad{},
		&types.MuebleUnidadItem{},
		&types.Procedimiento{},
		&types.FlotaEmbarcacion{},
		&types.SistemaConfig{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
