package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"skill-insight/internal/config"
	"skill-insight/internal/database"
	"skill-insight/internal/database/migration"
	dbpostgres "skill-insight/internal/database/postgres"
	"skill-insight/internal/infrastructure/cache"
	"skill-insight/internal/infrastructure/persistence/postgres"
	"skill-insight/internal/pkg/jwt"
	"skill-insight/internal/platform/logger"
	"skill-insight/internal/repository"
	"skill-insight/internal/usecase"
	ucauth "skill-insight/internal/usecase/auth"
	"skill-insight/internal/ws"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Logger *slog.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    *jwt.HMACService
	Hub    *ws.Hub

	Learners     *postgres.LearnerRepository
	SkillCatalog *repository.PostgresSkillCatalogRepository
	SkillRecords *repository.PostgresSkillRecordRepository
	Academic     *repository.PostgresAcademicRepository
	CareerPaths  *repository.PostgresCareerPathRepository
	Courses      *repository.PostgresCourseCatalogRepository

	AuthUC        *usecase.Auth
	LearnerUC     *usecase.Learner
	CatalogUC     *usecase.Catalog
	SkillRecordUC *usecase.SkillRecords
	AcademicUC    *usecase.Academic
	AnalyticsUC   *usecase.Analytics
}

func NewContainer(cfg config.Config, log *slog.Logger) (*Container, error) {
	if log == nil {
		log = slog.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: log, DB: db}

	if cfg.App.AutoMigrate {
		if err := (migration.Runner{Logger: log}).Up(ctx, db.SQLDB()); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	if c.Learners, err = postgres.NewLearnerRepository(ctx, db); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.SkillCatalog = repository.NewPostgresSkillCatalogRepository(db)
	c.SkillRecords = repository.NewPostgresSkillRecordRepository(db)
	c.Academic = repository.NewPostgresAcademicRepository(db)
	c.CareerPaths = repository.NewPostgresCareerPathRepository(db)
	c.Courses = repository.NewPostgresCourseCatalogRepository(db)

	c.Cache = cache.NewRedis(cfg.Redis, logger.StdLogger(log, "cache"))
	c.JWT = jwt.NewFromConfig(cfg.JWT)
	c.Hub = ws.NewHub(logger.StdLogger(log, "ws"))

	c.AuthUC = usecase.NewAuthUsecase(ucauth.NewService(c.Learners), c.Learners, c.JWT)
	c.LearnerUC = usecase.NewLearnerUsecase(c.Learners, c.Hub)
	c.CatalogUC = usecase.NewCatalogUsecase(c.SkillCatalog, c.Courses, c.CareerPaths, c.Cache, logger.StdLogger(log, "catalog"))
	c.SkillRecordUC = usecase.NewSkillRecordUsecase(c.SkillRecords, c.SkillCatalog, c.Hub)
	c.AcademicUC = usecase.NewAcademicUsecase(c.Academic, c.Hub)
	c.AnalyticsUC = usecase.NewAnalyticsUsecase(c.Learners, c.SkillRecords, c.CatalogUC)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Learners != nil {
		errs = append(errs, c.Learners.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
