package jsdoc

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/nodedoc/jsdoc/render"
)

// ManifestFile is the manifest read from the input directory by default.
const ManifestFile = "package.json"

// Flags holds CLI flag names for documentation generation, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Output  string
	Format  string
	Private string
	Package string
	Exclude string
	Watch   string
	Indent  string
}

// Config holds CLI flag values for documentation generation.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewParser] and [Config.NewRenderer]
// to build the pipeline.
type Config struct {
	Flags   Flags
	Output  string
	Format  string
	Package string
	Exclude []string
	Indent  int
	Private bool
	Watch   bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:  "output",
		Format:  "format",
		Private: "private",
		Package: "package",
		Exclude: "exclude",
		Watch:   "watch",
		Indent:  "indent",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds documentation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "doc",
		"output directory (- for stdout)")
	flags.StringVarP(&c.Format, c.Flags.Format, "f", string(render.FormatMarkdown),
		"output format (markdown, json, yaml)")
	flags.BoolVarP(&c.Private, c.Flags.Private, "p", false,
		"include private entities")
	flags.StringVar(&c.Package, c.Flags.Package, "",
		"package manifest path (default <input>/"+ManifestFile+")")
	flags.StringSliceVar(&c.Exclude, c.Flags.Exclude, nil,
		"glob of files to skip when documenting a directory (repeatable)")
	flags.BoolVarP(&c.Watch, c.Flags.Watch, "w", false,
		"regenerate when sources change")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
}

// RegisterCompletions registers shell completions for documentation flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(render.Formats(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Output,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Output, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Package,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Package, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Exclude, c.Flags.Indent} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// ManifestPath returns the manifest to read for input, which may be a file
// or a directory.
func (c *Config) ManifestPath(input string, isDir bool) string {
	if c.Package != "" {
		return c.Package
	}

	dir := input
	if !isDir {
		dir = filepath.Dir(input)
	}

	return filepath.Join(dir, ManifestFile)
}

// NewParser creates a [Parser] using this [Config], reading the package
// manifest for input.
func (c *Config) NewParser(input string, isDir bool, logger *slog.Logger) (*Parser, error) {
	reader := OSReader()

	manifest, err := ReadManifest(reader, c.ManifestPath(input, isDir))
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithReader(reader),
		WithPackage(manifest),
	}

	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}

	if c.Private {
		opts = append(opts, WithShowPrivate(true))
	}

	return NewParser(opts...), nil
}

// NewRenderer creates a [render.Renderer] using this [Config].
func (c *Config) NewRenderer() (*render.Renderer, error) {
	format, err := render.ParseFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	if c.Indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", ErrInvalidOption, c.Indent)
	}

	return render.NewRenderer(format, render.WithIndent(c.Indent)), nil
}
