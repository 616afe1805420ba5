package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/openedu/conductor-api/internal/auth"
	"github.com/openedu/conductor-api/internal/config"
	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/database"
	"github.com/openedu/conductor-api/internal/dto"
	"github.com/openedu/conductor-api/internal/logging"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/repository"
	"github.com/openedu/conductor-api/internal/seed"
	"github.com/openedu/conductor-api/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "conductorctl",
	Short:         "Conductor admin projects CLI",
	Long:          "Maintenance commands for the Conductor admin projects service: migrations, the local user directory, development tokens and the progress feed.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CONDUCTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func registerCommands() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(feedCmd())
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func withDB(fn func(db *gorm.DB, logger *slog.Logger) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(db, logger)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, logger *slog.Logger) error {
				return database.Migrate(db, logger)
			})
		},
	}
}

func userCmd() *cobra.Command {
	usr := &cobra.Command{Use: "user", Short: "Manage the local user directory"}
	usr.AddCommand(userAddCmd())
	usr.AddCommand(userGrantAdminCmd())
	return usr
}

func userAddCmd() *cobra.Command {
	var entry seed.UserEntry
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, _ *slog.Logger) error {
				f := &seed.File{Users: []seed.UserEntry{entry}}
				users, err := seed.Import(repository.NewUserRepository(db), f)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), users[0].UUID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&entry.UUID, "uuid", "", "user identifier (generated when empty)")
	cmd.Flags().StringVar(&entry.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&entry.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&entry.Email, "email", "", "email address")
	cmd.Flags().BoolVar(&entry.Admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userGrantAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant-admin <uuid>",
		Short: "Grant the admin role to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, _ *slog.Logger) error {
				repo := repository.NewUserRepository(db)
				if _, err := repo.FindByUUID(args[0]); err != nil {
					return fmt.Errorf("user %s: %w", args[0], err)
				}
				if err := repo.GrantRole(args[0], constants.RoleAdmin); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "granted %s to %s\n", constants.RoleAdmin, args[0])
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import users from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()

			f, err := seed.Parse(fh)
			if err != nil {
				return err
			}

			return withDB(func(db *gorm.DB, _ *slog.Logger) error {
				users, err := seed.Import(repository.NewUserRepository(db), f)
				if err != nil {
					return err
				}
				printUsers(users)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "users.yaml", "seed file")
	return cmd
}

func tokenCmd() *cobra.Command {
	tok := &cobra.Command{Use: "token", Short: "Development bearer tokens"}
	tok.AddCommand(&cobra.Command{
		Use:   "issue <uuid>",
		Short: "Mint a bearer token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			token, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL).Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})
	return tok
}

func feedCmd() *cobra.Command {
	var from, to, as string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the progress update digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, _ *slog.Logger) error {
				userRepo := repository.NewUserRepository(db)
				projects := services.NewAdminProjectService(
					repository.NewAdminProjectRepository(db),
					repository.NewAdminProjectUpdateRepository(db),
					userRepo,
				)
				feed, err := projects.GetFeed(services.FeedInput{RequesterID: as, FromDate: from, ToDate: to})
				if err != nil {
					return err
				}
				printFeed(dto.ToFeedDTO(*feed))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, MM-DD-YYYY")
	cmd.Flags().StringVar(&to, "to", "", "last day, MM-DD-YYYY")
	cmd.Flags().StringVar(&as, "as", "", "admin user to read the feed as")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func printUsers(users []models.User) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"UUID", "Name", "Email", "Admin"})
	for _, u := range users {
		tw.AppendRow(table.Row{u.UUID, u.FirstName + " " + u.LastName, u.Email, u.IsAdmin()})
	}
	tw.Render()
}

func printFeed(feed dto.FeedDTO) {
	fmt.Printf("Feed %s to %s\n", feed.StartDate, feed.EndDate)
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"When", "Project", "Author", "Progress", "Message"})
	for _, u := range feed.Updates {
		project, author := "", ""
		if u.Project != nil {
			project = u.Project.Title
		}
		if u.Author != nil {
			author = u.Author.FirstName + " " + u.Author.LastName
		}
		tw.AppendRow(table.Row{
			u.CreatedAt.Format("2006-01-02 15:04"),
			project,
			author,
			fmt.Sprintf("%d%%", u.EstimatedProgress),
			u.Message,
		})
	}
	tw.Render()
}
