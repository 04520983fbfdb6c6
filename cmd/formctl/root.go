package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formctl/internal/config"
	"github.com/goliatone/go-formctl/pkg/credentials"
	"github.com/goliatone/go-formctl/pkg/formspec"
	"github.com/goliatone/go-formctl/pkg/orchestrator"
	"github.com/goliatone/go-formctl/pkg/render"
	"github.com/goliatone/go-formctl/pkg/renderers/bubble"
	"github.com/goliatone/go-formctl/pkg/renderers/tui"
	"github.com/goliatone/go-formctl/pkg/renderers/vanilla"
)

// uiRenderers maps --ui values to registered renderer names.
var uiRenderers = map[string]string{
	"survey": "tui",
	"bubble": "bubble",
	"html":   "vanilla",
}

type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), stdout: os.Stdout, stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "formctl",
		Short: "Collect and validate credentials with reactive form controls",
		Long: `formctl drives login, signup and declarative forms through reactive
controls: each field validates once touched, and the submission carries a
bcrypt hash instead of the password.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./formctl.yaml)")
	flags.String("ui", "survey", "interface: survey, bubble or html")
	flags.String("output", "json", "submission format: json or pretty")
	flags.String("locale", "en", "locale for issue messages")
	flags.String("specs", "", "directory of form definitions")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	for _, name := range []string{"ui", "output", "locale", "specs", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.formCmd(credentials.LoginFormID, "Log in with email and password"),
		a.formCmd(credentials.SignupFormID, "Create an account"),
		a.runCmd(),
		a.checkCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("config loaded", "file", a.v.ConfigFileUsed(), "ui", cfg.UI, "output", cfg.Output, "locale", cfg.Locale)
	return nil
}

func (a *app) registry() (*render.Registry, error) {
	registry := render.NewRegistry()

	prompts, err := tui.New(
		tui.WithOutputFormat(tui.ParseOutputFormat(a.cfg.Output)),
		tui.WithMaxAttempts(a.cfg.MaxAttempts),
	)
	if err != nil {
		return nil, err
	}
	interactive, err := bubble.New(bubble.WithOutputFormat(a.cfg.Output))
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	for _, r := range []render.Renderer{prompts, interactive, html} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (a *app) rendererName() (string, error) {
	name, ok := uiRenderers[a.cfg.UI]
	if !ok {
		return "", fmt.Errorf("unknown --ui %q (want survey, bubble or html)", a.cfg.UI)
	}
	return name, nil
}

func (a *app) orchestrator(store *formspec.Store) (*orchestrator.Orchestrator, error) {
	registry, err := a.registry()
	if err != nil {
		return nil, err
	}
	opts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithHashOptions(credentials.WithCost(a.cfg.BcryptCost)),
	}
	if store != nil {
		opts = append(opts, orchestrator.WithSpecStore(store))
	} else if a.cfg.Specs != "" {
		opts = append(opts, orchestrator.WithSpecFS(os.DirFS(a.cfg.Specs)))
	}
	return orchestrator.New(opts...), nil
}

// generate runs a form and writes the renderer output.
func (a *app) generate(ctx context.Context, store *formspec.Store, req orchestrator.Request) error {
	name, err := a.rendererName()
	if err != nil {
		return err
	}
	o, err := a.orchestrator(store)
	if err != nil {
		return err
	}

	req.Renderer = name
	req.RenderOptions = render.RenderOptions{
		Locale:     a.cfg.Locale,
		Translator: a.cfg.Messages.Translator(),
		Theme:      a.cfg.Theme.RendererConfig(),
	}
	a.logger.Debug("rendering form", "form", req.FormID, "renderer", name, "prefilled", len(req.Values))

	out, err := o.Generate(ctx, req)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}

// loadSpec loads a definition file, or every definition under a directory.
func loadSpec(path string) (*formspec.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return formspec.LoadFS(os.DirFS(path))
	}
	var files fs.FS = os.DirFS(filepath.Dir(path))
	return formspec.LoadFile(files, filepath.Base(path))
}
