// Command mamba is the CLI of the Mamba toolchain.
//
// The front end (lexer + parser) is wired up; the transpiler and backend
// invocation are downstream stages that consume the AST this command
// produces.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mamba-lang/mamba/internal/ast"
	"github.com/mamba-lang/mamba/internal/errors"
	"github.com/mamba-lang/mamba/internal/i18n"
	"github.com/mamba-lang/mamba/internal/loader"
	"github.com/mamba-lang/mamba/internal/parser"
	"github.com/mamba-lang/mamba/internal/pkg"
)

const version = "0.1.0"

// Context carries the global flags into the subcommands.
type Context struct {
	Logger     *zap.Logger
	ShowTokens bool
	ShowAST    bool
	NoColor    bool
}

var cli struct {
	Check   CheckCmd   `cmd:"" default:"withargs" help:"Parse a source file and report diagnostics."`
	Build   BuildCmd   `cmd:"" help:"Check a source file and read its build settings; no binary is produced."`
	Init    InitCmd    `cmd:"" help:"Create mamba.toml and a source skeleton."`
	Version VersionCmd `cmd:"" help:"Show version information."`

	Tokens  bool   `help:"Dump the token stream."`
	AST     bool   `help:"Dump the parsed AST."`
	Debug   bool   `short:"d" help:"Enable debug logging."`
	Lang    string `help:"Diagnostic language (en or zh)." default:"en" env:"MAMBA_LANG"`
	NoColor bool   `help:"Disable colored output."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("mamba"),
		kong.Description("Mamba - Python syntax, native speed."),
	)

	i18n.SetLanguageFromString(cli.Lang)
	if cli.NoColor {
		color.NoColor = true
	}

	logger := zap.NewNop()
	if cli.Debug {
		dev, err := zap.NewDevelopment()
		if err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	appCtx := &Context{
		Logger:     logger,
		ShowTokens: cli.Tokens,
		ShowAST:    cli.AST,
		NoColor:    cli.NoColor,
	}

	if err := ctx.Run(appCtx); err != nil {
		if n := len(multierr.Errors(err)); n > 1 {
			fmt.Fprintln(os.Stderr, i18n.T(i18n.CliErrorCount, n))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// ============================================================================
// check
// ============================================================================

// CheckCmd parses a file and reports every diagnostic; it is also the
// default command, so "mamba prog.mamba" checks the file.
type CheckCmd struct {
	File string `arg:"" help:"Source file to check."`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	module, err := parseFile(ctx, cmd.File)
	if err != nil {
		return err
	}
	_ = module
	fmt.Println(i18n.T(i18n.CliCheckOK, cmd.File))
	return nil
}

// ============================================================================
// build
// ============================================================================

// BuildCmd runs the front end and hands over to the backend pipeline —
// which is not wired up yet, so it stops after a clean parse.
type BuildCmd struct {
	File   string `arg:"" help:"Source file to build."`
	Output string `short:"o" help:"Output binary path."`
}

func (cmd *BuildCmd) Run(ctx *Context) error {
	module, err := parseFile(ctx, cmd.File)
	if err != nil {
		return err
	}

	backend := "rustc"
	if configPath := loader.FindProjectConfig(filepath.Dir(cmd.File)); configPath != "" {
		if config, err := pkg.LoadConfig(configPath); err == nil {
			if config.Build.Backend != "" {
				backend = config.Build.Backend
			}
			if cmd.Output == "" {
				cmd.Output = config.Build.Output
			}
		}
	}

	ctx.Logger.Debug("front end finished",
		zap.String("file", cmd.File),
		zap.Int("statements", len(module.Statements)),
		zap.String("backend", backend),
		zap.String("output", cmd.Output),
	)

	fmt.Println(i18n.T(i18n.CliBuildPending))
	return nil
}

// ============================================================================
// init
// ============================================================================

// InitCmd scaffolds a project: mamba.toml plus src/main.mamba.
type InitCmd struct {
	Name string `help:"Package name; defaults to the directory name."`
}

func (cmd *InitCmd) Run(ctx *Context) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	configPath := filepath.Join(dir, pkg.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s", i18n.T(i18n.CliConfigExists, pkg.ConfigFileName))
	}

	config := pkg.GenerateDefault(dir)
	if cmd.Name != "" {
		config.Package.Name = cmd.Name
	}

	fmt.Println(i18n.T(i18n.CliCreating, pkg.ConfigFileName))
	if err := config.Save(configPath); err != nil {
		return err
	}

	srcDir := filepath.Join(dir, "src")
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		fmt.Println(i18n.T(i18n.CliCreating, "src/"))
		if err := os.MkdirAll(srcDir, 0755); err != nil {
			return err
		}
	}

	mainPath := filepath.Join(srcDir, "main"+loader.SourceFileExtension)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		fmt.Println(i18n.T(i18n.CliCreating, "src/main"+loader.SourceFileExtension))
		template := "def main():\n    print(\"Hello from " + config.Package.Name + "\")\n\n\nmain()\n"
		if err := os.WriteFile(mainPath, []byte(template), 0644); err != nil {
			return err
		}
	}

	return nil
}

// ============================================================================
// version
// ============================================================================

type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Println(color.GreenString("Mamba v%s", version))
	fmt.Println(color.New(color.Faint).Sprint("Python syntax. Native speed. One tool."))
	return nil
}

// ============================================================================
// Front-end driving
// ============================================================================

// parseFile runs the lexer and parser over one file, prints every
// diagnostic with source context, and returns the combined error (nil on
// a clean parse).
func parseFile(ctx *Context, file string) (*ast.Module, error) {
	source, path, err := loader.LoadSource(file)
	if err != nil {
		return nil, fmt.Errorf("%s", i18n.T(i18n.CliReadError, err))
	}

	p := parser.New(source, path)

	if ctx.ShowTokens {
		fmt.Println("=== Tokens ===")
		for _, tok := range p.Tokens() {
			fmt.Printf("  %s\n", tok)
		}
		fmt.Println()
	}

	ctx.Logger.Debug("lexing finished",
		zap.String("file", path),
		zap.Int("tokens", len(p.Tokens())),
		zap.Int("lexErrors", len(p.LexErrors())),
	)

	// Parsing runs only over a clean token stream; lexical errors are
	// reported on their own.
	var module *ast.Module
	if len(p.LexErrors()) == 0 {
		module = p.Parse()

		ctx.Logger.Debug("parsing finished",
			zap.Int("statements", len(module.Statements)),
			zap.Int("parseErrors", len(p.Errors())),
		)

		if ctx.ShowAST {
			fmt.Println("=== AST ===")
			fmt.Print(module.String())
			fmt.Println()
		}
	}

	diags := collectDiagnostics(p, path)
	if len(diags) > 0 {
		formatter := errors.NewFormatter()
		formatter.Colors = !ctx.NoColor
		fmt.Fprint(os.Stderr, formatter.FormatAll(diags, source))
		return module, errors.Combine(diags)
	}

	return module, nil
}

// collectDiagnostics converts lexer and parser errors into renderable
// diagnostics, in discovery order.
func collectDiagnostics(p *parser.Parser, file string) []*errors.CompileError {
	var diags []*errors.CompileError

	for _, le := range p.LexErrors() {
		diags = append(diags, &errors.CompileError{
			Code:    le.Kind.Code(),
			Level:   errors.LevelError,
			Message: le.Message,
			File:    file,
			Line:    le.Pos.Line,
			Column:  le.Pos.Column,
		})
	}

	for _, pe := range p.Errors() {
		diag := &errors.CompileError{
			Code:    pe.Kind.Code(),
			Level:   errors.LevelError,
			Message: pe.Message,
			File:    file,
			Line:    pe.Pos.Line,
			Column:  pe.Pos.Column,
		}
		if pe.Suggestion != "" {
			diag.Hints = []string{pe.Suggestion}
		}
		diags = append(diags, diag)
	}

	return diags
}
