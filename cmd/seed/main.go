package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"career-compass/internal/config"
	"career-compass/internal/content"
	"career-compass/internal/service"
)

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Validate content, migrate the schema and load the career catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := validateContent(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return withPool(cmd.Context(), cfg, func(ctx context.Context, pool *pgxpool.Pool) error {
			if err := migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				return err
			}
			return loadCatalog(ctx, pool, store)
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate careers, assessment bank and reality quizzes without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := validateContent(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("content ok: %d careers, %d assessment questions, %d quizzes\n",
			len(store.Careers()), len(store.Assessment().Questions), len(store.Quizzes()))
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return withPool(cmd.Context(), cfg, func(ctx context.Context, pool *pgxpool.Pool) error {
			return migrate(ctx, pool, cfg.MigrationsDir)
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a development access token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		role, _ := cmd.Flags().GetString("role")
		jwtSvc := service.NewJWTService(
			cfg.JWTSecret,
			cfg.JWTIssuer,
			time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		)
		token, err := jwtSvc.IssueAccessToken(args[0], role)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("content", "", "Content directory (overrides CONTENT_DIR)")
	tokenCmd.Flags().String("role", service.RoleStudent, "Role claim: student, educator or admin")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:")
		printJoined(err)
		os.Exit(1)
	}
}

// contentDir prioriza --content, luego CONTENT_DIR y por ultimo ./content.
func contentDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("content"); dir != "" {
		return dir
	}
	if dir := os.Getenv("CONTENT_DIR"); dir != "" {
		return dir
	}
	return "content"
}

func validateContent(cmd *cobra.Command) (*content.Store, error) {
	dir := contentDir(cmd)
	store, err := content.LoadStore(dir)
	if err != nil {
		return nil, fmt.Errorf("content in %s is invalid: %w", dir, err)
	}
	return store, nil
}
