package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/service"
	"golang.org/x/term"
)

var ErrCancelled = errors.New("password dialog cancelled")

// GeneratorHandler drives password generation from a terminal.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate prints count passwords, one per line, for non-interactive use.
// Status messages such as the clipboard confirmation go to status.
func (h *GeneratorHandler) HandleGenerate(ctx context.Context, req model.GenerateRequest, count int, out, status io.Writer) error {
	if count < 1 {
		count = 1
	}
	copyRequested := req.Copy
	req.Copy = false

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		resp, err := h.service.Generate(ctx, req)
		if err != nil {
			return err
		}
		passwords = append(passwords, resp.Password)
	}

	for _, pw := range passwords {
		fmt.Fprintln(out, pw)
	}

	if copyRequested {
		if err := h.service.Copy(ctx, strings.Join(passwords, "\n")); err != nil {
			return err
		}
		newStyles(status).success.Fprintln(status, copiedMessage(len(passwords)))
	}
	return nil
}

// HandleDialog runs the interactive options dialog: it asks for the length and each
// character class, shows the generated password and offers to copy it.
func (h *GeneratorHandler) HandleDialog(ctx context.Context, in io.Reader, out io.Writer) error {
	p := &prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
		styles:  newStyles(out),
	}
	defaults := h.service.Defaults()

	p.styles.title.Fprintln(out, "=== Password Options ===")
	fmt.Fprintln(out)

	length, err := p.askLength(ctx, defaults.Length)
	if err != nil {
		return err
	}
	req := model.GenerateRequest{Length: length}
	if err := p.askClasses(ctx, &req, defaults.ClassEnabled); err != nil {
		return err
	}

	var resp model.GenerateResponse
	for {
		resp, err = h.service.Generate(ctx, req)
		switch {
		case errors.Is(err, crypto.ErrNoCharacterClassSelected):
			p.styles.failure.Fprintf(out, "Error: %v\n", err)
			if err := p.askClasses(ctx, &req, func(crypto.CharacterClass) bool { return false }); err != nil {
				return err
			}
			continue
		case errors.Is(err, crypto.ErrInvalidLength):
			p.styles.failure.Fprintf(out, "Error: %v\n", err)
			if req.Length, err = p.askLength(ctx, defaults.Length); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}
		break
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, "Generated Password: ")
	p.styles.password.Fprintln(out, resp.Password)
	fmt.Fprintln(out)

	copyIt, err := p.askBool(ctx, "Copy to clipboard?", defaults.Copy)
	if err != nil {
		return err
	}
	if !copyIt {
		return nil
	}

	if err := h.service.Copy(ctx, resp.Password); err != nil {
		p.styles.warning.Fprintf(out, "Could not copy password: %v\n", err)
		return nil
	}
	p.styles.success.Fprintln(out, copiedMessage(1))
	return nil
}

func copiedMessage(n int) string {
	if n == 1 {
		return "Password copied to clipboard!"
	}
	return fmt.Sprintf("%d passwords copied to clipboard!", n)
}

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	styles  styles
}

// ask prints label and returns the trimmed answer.
func (p *prompter) ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return "", ErrCancelled
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *prompter) askLength(ctx context.Context, def int) (int, error) {
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("Password length [%d]: ", def))
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 {
			p.styles.failure.Fprintf(p.out, "Error: %v\n", crypto.ErrInvalidLength)
			continue
		}
		return n, nil
	}
}

func (p *prompter) askClasses(ctx context.Context, req *model.GenerateRequest, enabled func(crypto.CharacterClass) bool) error {
	targets := []struct {
		class crypto.CharacterClass
		label string
		value **bool
	}{
		{crypto.Uppercase, "Include uppercase letters?", &req.Uppercase},
		{crypto.Lowercase, "Include lowercase letters?", &req.Lowercase},
		{crypto.Digit, "Include digits?", &req.Digits},
		{crypto.Punctuation, "Include punctuation?", &req.Punctuation},
	}

	for _, tg := range targets {
		v, err := p.askBool(ctx, tg.label, enabled(tg.class))
		if err != nil {
			return err
		}
		*tg.value = &v
	}
	return nil
}

func (p *prompter) askBool(ctx context.Context, label string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("%s %s: ", label, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.styles.warning.Fprintln(p.out, "Please answer y or n.")
	}
}

type styles struct {
	title    *color.Color
	password *color.Color
	success  *color.Color
	warning  *color.Color
	failure  *color.Color
}

// newStyles returns colored output styles, plain unless w is a terminal.
func newStyles(w io.Writer) styles {
	s := styles{
		title:    color.New(color.FgCyan, color.Bold),
		password: color.New(color.FgGreen, color.Bold),
		success:  color.New(color.FgGreen),
		warning:  color.New(color.FgYellow),
		failure:  color.New(color.FgRed),
	}
	useColor := isTerminal(w) && !color.NoColor
	for _, c := range []*color.Color{s.title, s.password, s.success, s.warning, s.failure} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether r is a terminal a user can answer prompts on.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
