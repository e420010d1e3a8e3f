package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/passgen/passgen-go/internal/clipboard"
	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/handler"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/service"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	length      int
	upper       bool
	lower       bool
	digits      bool
	punctuation bool
	classes     string
	count       int
	copy        bool
	interactive bool
}

// app holds the collaborators the command needs; tests replace them.
type app struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	clipboard func() clipboard.Writer
	isTTY     func(io.Reader) bool
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	a := &app{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		clipboard: clipboard.New,
		isTTY:     handler.IsInteractive,
	}

	if err := a.rootCmd().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, handler.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "cancelled")
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Generate random passwords from a cryptographically secure source",
		Long: `passgen builds a password from the selected character classes
(uppercase, lowercase, digits, punctuation), drawing every character
uniformly from crypto/rand. Without generation flags on a terminal it opens
an options dialog and offers to copy the result to the clipboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML file with default length, classes and copy settings")
	f.IntVarP(&opts.length, "length", "l", 0, "password length (default from config, 12)")
	f.BoolVarP(&opts.upper, "upper", "U", false, "include uppercase letters")
	f.BoolVarP(&opts.lower, "lower", "L", false, "include lowercase letters")
	f.BoolVarP(&opts.digits, "digits", "d", false, "include digits")
	f.BoolVarP(&opts.punctuation, "punctuation", "p", false, "include punctuation")
	f.StringVarP(&opts.classes, "classes", "c", "", "comma separated classes: upper,lower,digits,punctuation")
	f.IntVarP(&opts.count, "count", "n", 1, "number of passwords to generate")
	f.BoolVar(&opts.copy, "copy", false, "copy the result to the clipboard")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "open the options dialog")

	return cmd
}

func (a *app) run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cmd.Flags().Changed("copy") {
		cfg.Copy = opts.copy
	}

	svc := service.NewGeneratorService(cfg, a.clipboard())
	h := handler.NewGeneratorHandler(svc)
	ctx := cmd.Context()

	if a.dialogMode(cmd, opts) {
		slog.DebugContext(ctx, "opening options dialog")
		return h.HandleDialog(ctx, a.stdin, a.stdout)
	}

	req, err := buildRequest(cmd, opts)
	if err != nil {
		return err
	}
	req.Copy = cfg.Copy
	return h.HandleGenerate(ctx, req, opts.count, a.stdout, a.stderr)
}

// dialogMode reports whether the dialog should run: when asked for explicitly, or
// when no generation flag was given and stdin is a terminal.
func (a *app) dialogMode(cmd *cobra.Command, opts *options) bool {
	if opts.interactive {
		return true
	}
	for _, name := range []string{"length", "upper", "lower", "digits", "punctuation", "classes", "count"} {
		if cmd.Flags().Changed(name) {
			return false
		}
	}
	return a.isTTY(a.stdin)
}

// buildRequest turns command-line flags into a generation request. Class flags and
// --classes combine; when none are given the configured classes apply.
func buildRequest(cmd *cobra.Command, opts *options) (model.GenerateRequest, error) {
	req := model.GenerateRequest{Length: opts.length}
	if cmd.Flags().Changed("length") && opts.length < 1 {
		return model.GenerateRequest{}, crypto.ErrInvalidLength
	}
	if opts.count < 1 {
		return model.GenerateRequest{}, fmt.Errorf("count must be at least 1, got %d", opts.count)
	}

	selected := map[crypto.CharacterClass]bool{
		crypto.Uppercase:   opts.upper,
		crypto.Lowercase:   opts.lower,
		crypto.Digit:       opts.digits,
		crypto.Punctuation: opts.punctuation,
	}
	explicit := false
	for _, name := range []string{"upper", "lower", "digits", "punctuation"} {
		if cmd.Flags().Changed(name) {
			explicit = true
		}
	}

	if opts.classes != "" {
		classes, err := crypto.ParseCharacterClasses(opts.classes)
		if err != nil {
			return model.GenerateRequest{}, err
		}
		for _, c := range classes {
			selected[c] = true
		}
		explicit = true
	}

	if explicit {
		req.Uppercase = boolPtr(selected[crypto.Uppercase])
		req.Lowercase = boolPtr(selected[crypto.Lowercase])
		req.Digits = boolPtr(selected[crypto.Digit])
		req.Punctuation = boolPtr(selected[crypto.Punctuation])
	}

	return req, nil
}

func boolPtr(b bool) *bool { return &b }
