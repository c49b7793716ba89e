// Command nodedoc generates documentation for Node.js sources from their
// JSDoc style comments.
//
// # Usage
//
//	nodedoc [flags] <file.js|directory>
//	nodedoc schema
//
// Given a file, nodedoc documents it and every local module it requires.
// Given a directory, it documents the package main entry named by the
// manifest or, when there is none, every source file in the tree.
//
// Output is written to the directory named by -o, replacing its contents,
// with one file per document and namespace. Use -o - to print a single
// document to stdout instead.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/nodedoc/jsdoc"
	"go.jacobcolvin.com/nodedoc/jsdoc/model"
	"go.jacobcolvin.com/nodedoc/jsdoc/render"
	"go.jacobcolvin.com/nodedoc/jsdoc/watch"
	"go.jacobcolvin.com/nodedoc/log"
	"go.jacobcolvin.com/nodedoc/profile"
	"go.jacobcolvin.com/nodedoc/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := jsdoc.NewConfig()
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "nodedoc [flags] <file.js|directory>",
		Short: "Generate documentation from JSDoc comments",
		Long: `nodedoc generates Markdown, JSON or YAML documentation for Node.js sources
from their JSDoc style comments. Local modules pulled in with require are
documented as namespaces of the file that requires them.`,
		Version:       version.Short(),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("%w: %w", jsdoc.ErrInvalidOption, err)
			}

			session, err := profCfg.Start()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped with profile.ErrProfile.
			}

			runErr := run(cmd.Context(), cfg, slog.New(handler), cmd.OutOrStdout(), args[0])

			return errors.Join(runErr, session.Stop())
		},
	}

	rootCmd.SetVersionTemplate(version.Info())

	cfg.RegisterFlags(rootCmd.Flags())
	profCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		cfg.RegisterCompletions,
		profCfg.RegisterCompletions,
		logCfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	rootCmd.AddCommand(newSchemaCommand())

	return rootCmd
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the JSON and YAML output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(render.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", render.ErrWriteOutput, err)
			}

			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			if err != nil {
				return fmt.Errorf("%w: %w", render.ErrWriteOutput, err)
			}

			return nil
		},
	}
}

// printError writes err to f, in red when f is a terminal.
func printError(f *os.File, err error) {
	msg := err.Error()
	if term.IsTerminal(int(f.Fd())) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}

	fmt.Fprintln(f, msg)
}

func run(ctx context.Context, cfg *jsdoc.Config, logger *slog.Logger, stdout io.Writer, input string) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%w: %w", jsdoc.ErrReadInput, err)
	}

	renderer, err := cfg.NewRenderer()
	if err != nil {
		return err
	}

	g := &generator{
		cfg:      cfg,
		renderer: renderer,
		logger:   logger,
		stdout:   stdout,
		input:    input,
		isDir:    info.IsDir(),
	}

	err = g.generate(ctx)
	if !cfg.Watch {
		return err
	}

	if err != nil {
		logger.Error("generate documentation", slog.Any("error", err))
	}

	opts := []watch.Option{watch.WithLogger(logger)}
	if !g.toStdout() {
		opts = append(opts, watch.WithSkip(cfg.Output))
	}

	w, err := watch.New(input, opts...)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped with watch.ErrWatch.
	}

	return w.Run(ctx, func(ctx context.Context, changed []string) error { //nolint:wrapcheck // Run only returns watch errors.
		logger.Info("sources changed", slog.Any("paths", changed))

		return g.generate(ctx)
	})
}

// generator runs one documentation pass over the input.
type generator struct {
	cfg      *jsdoc.Config
	renderer *render.Renderer
	logger   *slog.Logger
	stdout   io.Writer
	input    string
	isDir    bool
}

func (g *generator) toStdout() bool {
	return g.cfg.Output == "-"
}

func (g *generator) generate(ctx context.Context) error {
	// A fresh parser per pass, since parsers memoize file contents.
	p, err := g.cfg.NewParser(g.input, g.isDir, g.logger)
	if err != nil {
		return err
	}

	if g.isDir {
		proj, err := p.ParseProject(ctx, g.input, g.cfg.Exclude)
		if err != nil {
			return err
		}

		if g.toStdout() {
			return g.encodeProject(proj)
		}

		files, err := g.renderer.RenderProject(proj.Main, proj.Files)
		if err != nil {
			return err
		}

		return g.write(files)
	}

	doc, err := p.ParseFile(ctx, g.input)
	if err != nil {
		return err
	}

	if doc == nil {
		g.logger.Warn("nothing to document", slog.String("path", g.input))

		return nil
	}

	if g.toStdout() {
		return g.encode(doc)
	}

	files, err := g.renderer.Render(doc)
	if err != nil {
		return err
	}

	return g.write(files)
}

func (g *generator) encodeProject(proj *jsdoc.Project) error {
	if proj.Main != nil {
		return g.encode(proj.Main)
	}

	for _, key := range slices.Sorted(maps.Keys(proj.Files)) {
		err := g.encode(proj.Files[key])
		if err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) encode(doc *model.Doc) error {
	out, err := g.renderer.Encode(doc)
	if err != nil {
		return err
	}

	_, err = g.stdout.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", render.ErrWriteOutput, err)
	}

	return nil
}

func (g *generator) write(files []render.File) error {
	if len(files) == 0 {
		g.logger.Warn("nothing to document", slog.String("path", g.input))

		return nil
	}

	err := render.Write(g.cfg.Output, files, render.WithClean(true))
	if err != nil {
		return err
	}

	g.logger.Info("wrote documentation",
		slog.String("output", g.cfg.Output),
		slog.Int("files", len(files)),
	)

	return nil
}
