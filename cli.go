package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalqa/app"
	"github.com/CrestNiraj12/terminalqa/infra/auth"
	"github.com/CrestNiraj12/terminalqa/infra/config"
	"github.com/CrestNiraj12/terminalqa/infra/editor"
	"github.com/CrestNiraj12/terminalqa/infra/logger"
	"github.com/CrestNiraj12/terminalqa/infra/qaapi"
	"github.com/CrestNiraj12/terminalqa/tui"
)

// credentialStore is what both the session and the HTTP client need.
type credentialStore interface {
	app.CredentialStore
	auth.TokenProvider
}

// runtime is the wired object graph shared by every command.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	store   credentialStore
	repo    *app.Repository
	session *app.Session
	writes  *app.Coordinator
	profile *app.ProfileEditor
}

func newRuntime(cfgFile string, ephemeral bool) (*runtime, error) {
	// 1. Load config from file and environment.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logger.NewOrNop(cfg.LogLevel, cfg.LogPath)

	// 2. Build infrastructure.
	var store credentialStore
	if ephemeral {
		store = auth.NewMemoryStore()
	} else {
		fileStore, err := auth.NewFileStore(cfg.CredentialPath)
		if err != nil {
			return nil, err
		}
		store = fileStore
	}
	client := qaapi.NewClient(cfg.BaseURL, store, log)

	// 3. Build the engine (concrete services satisfy app.* interfaces).
	repo := app.NewRepository(qaapi.NewContentService(client), log)
	rt := &runtime{
		cfg:     cfg,
		log:     log,
		store:   store,
		repo:    repo,
		session: app.NewSession(store, qaapi.NewAuthService(client), repo, log),
		writes:  app.NewCoordinator(qaapi.NewWriteService(client), repo, log),
		profile: app.NewProfileEditor(qaapi.NewProfileService(client)),
	}
	log.Debug("runtime ready",
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("ephemeral", ephemeral),
		zap.Stringer("mode", rt.session.Mode()),
	)
	return rt, nil
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
}

type rootOptions struct {
	cfgFile   string
	ephemeral bool
}

func (o *rootOptions) withRuntime(fn func(rt *runtime) error) error {
	rt, err := newRuntime(o.cfgFile, o.ephemeral)
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(rt)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	build := currentBuild()

	root := &cobra.Command{
		Use:   "terminalqa",
		Short: "Terminal client for a question and answer board",
		Long: `terminalqa browses, answers and rates questions from a Q&A backend.

Without a subcommand it starts the interactive terminal UI.

Example usage:
  terminalqa                   # Start the UI
  terminalqa search channels   # Print matching questions
  terminalqa status            # Show who is logged in
  terminalqa logout            # Forget the stored session`,
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRuntime(runUI)
		},
	}
	root.SetVersionTemplate(build.String())
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.config/terminalqa/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		newSearchCmd(opts),
		newStatusCmd(opts),
		newLogoutCmd(opts),
		newVersionCmd(build),
	)
	return root
}

func runUI(rt *runtime) error {
	root := tui.NewApp(tui.Deps{
		Session:   rt.session,
		Repo:      rt.repo,
		Mutations: rt.writes,
		Profile:   rt.profile,
		Editor:    editor.NewEnvEditor(),
		Log:       rt.log,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminalqa: %w", err)
	}
	return nil
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [keyword]",
		Short: "Print questions matching a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			return opts.withRuntime(func(rt *runtime) error {
				snap, err := rt.repo.Search(cmd.Context(), keyword)
				if err != nil {
					rt.log.Debug("search failed", zap.Error(err))
					return errors.New(app.Notice(app.OpSearch, err))
				}
				printSearch(cmd.OutOrStdout(), app.Render(snap, rt.session.Mode()))
				return nil
			})
		},
	}
}

func printSearch(w io.Writer, v app.View) {
	if v.Empty() {
		color.New(color.Faint).Fprintf(w, "No questions match %q.\n", v.Keyword)
		return
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		rows = append(rows, []string{strconv.FormatInt(n.QuestionID, 10), n.Text})
	}
	table.Header([]string{"ID", "Question"})
	_ = table.Bulk(rows)
	_ = table.Render()
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRuntime(func(rt *runtime) error {
				printStatus(cmd.OutOrStdout(), rt, time.Now())
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, rt *runtime, now time.Time) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Backend: ")
	fmt.Fprintln(w, rt.cfg.BaseURL)

	name, ok := rt.session.Identity()
	if !ok {
		bold.Fprintf(w, "Mode:    ")
		color.New(color.FgYellow).Fprintln(w, app.ModeAnonymous)
		return
	}
	bold.Fprintf(w, "Mode:    ")
	color.New(color.FgGreen).Fprintln(w, app.ModeAuthenticated)
	bold.Fprintf(w, "User:    ")
	fmt.Fprintln(w, name)

	token, _ := rt.session.Token()
	claims, err := auth.ParseClaims(token)
	if err != nil || !claims.HasExpiry() {
		return
	}
	bold.Fprintf(w, "Expires: ")
	if claims.Expired(now) {
		color.New(color.FgRed).Fprintf(w, "%s (expired)\n", claims.ExpiresAt.Local().Format(time.RFC3339))
		return
	}
	fmt.Fprintln(w, claims.ExpiresAt.Local().Format(time.RFC3339))
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRuntime(func(rt *runtime) error {
				if err := rt.session.Logout(); err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), app.MsgLoggedOut)
				return nil
			})
		},
	}
}

func newVersionCmd(build buildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), build.String())
		},
	}
}
