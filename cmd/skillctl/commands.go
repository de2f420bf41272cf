package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skill-insight/internal/config"
	"skill-insight/internal/database"
	"skill-insight/internal/database/migration"
	dbpostgres "skill-insight/internal/database/postgres"
	"skill-insight/internal/database/seeder"
	"skill-insight/internal/platform/logger"
	"skill-insight/internal/repository"
	"skill-insight/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// env is resolved once per invocation in the root PersistentPreRunE.
type env struct {
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "skillctl",
		Short:         "Administrative tasks for the skill insight service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.Setup(cfg.Log).With("component", "skillctl")
			return nil
		},
	}

	root.AddCommand(newMigrateCmd(e), newSeedCmd(e), newGPACmd(e))
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	sub := func(use, short string, run func(migration.Runner, context.Context, database.DB) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
					return run(migration.Runner{Logger: e.log}, ctx, db)
				})
			},
		}
	}

	migrate.AddCommand(
		sub("up", "Apply all pending migrations", func(r migration.Runner, ctx context.Context, db database.DB) error {
			return r.Up(ctx, db.SQLDB())
		}),
		sub("down", "Roll back the latest migration", func(r migration.Runner, ctx context.Context, db database.DB) error {
			return r.Down(ctx, db.SQLDB())
		}),
		sub("status", "Print migration status", func(r migration.Runner, ctx context.Context, db database.DB) error {
			return r.Status(ctx, db.SQLDB())
		}),
		sub("version", "Print the current schema version", func(r migration.Runner, ctx context.Context, db database.DB) error {
			v, err := r.Version(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		}),
	)
	return migrate
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the reference catalog (skills, courses, career paths)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				seeders := seeder.Defaults()
				if err := (seeder.Runner{Seeders: seeders}).Run(ctx, db); err != nil {
					return err
				}
				e.log.Info("seed complete", "seeders", len(seeders))
				return nil
			})
		},
	}
}

func newGPACmd(e *env) *cobra.Command {
	gpa := &cobra.Command{
		Use:   "gpa",
		Short: "Academic record maintenance",
	}

	var learner string
	recompute := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute and store a learner's GPA from their course list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			learnerID, err := uuid.Parse(learner)
			if err != nil {
				return fmt.Errorf("invalid --learner: %w", err)
			}
			return e.withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				uc := usecase.NewAcademicUsecase(repository.NewPostgresAcademicRepository(db), nil)
				view, err := uc.RecomputeGPA(ctx, learnerID)
				if err != nil {
					return err
				}
				fmt.Printf("learner=%s cumulative_gpa=%.2f current_gpa=%.2f courses=%d\n",
					view.LearnerID, view.GPA.CumulativeGPA, view.GPA.CurrentGPA, len(view.Courses))
				return nil
			})
		},
	}
	recompute.Flags().StringVar(&learner, "learner", "", "learner id")
	_ = recompute.MarkFlagRequired("learner")

	gpa.AddCommand(recompute)
	return gpa
}

func (e *env) withDB(ctx context.Context, fn func(ctx context.Context, db database.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, e.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}
