package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/passgen/passgen-go/internal/clipboard"
	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/model"
)

var ErrClipboard = errors.New("copying password to clipboard failed")

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	cfg       config.Config
	generator *crypto.Generator
	clipboard clipboard.Writer
}

// NewGeneratorService creates a new GeneratorService backed by crypto/rand.
func NewGeneratorService(cfg config.Config, cb clipboard.Writer) *GeneratorService {
	return NewGeneratorServiceWith(cfg, crypto.NewGenerator(nil), cb)
}

// NewGeneratorServiceWith creates a GeneratorService around an existing generator.
func NewGeneratorServiceWith(cfg config.Config, gen *crypto.Generator, cb clipboard.Writer) *GeneratorService {
	if cb == nil {
		cb = clipboard.Unavailable{}
	}
	return &GeneratorService{cfg: cfg, generator: gen, clipboard: cb}
}

// Defaults returns the configuration the service falls back to.
func (s *GeneratorService) Defaults() config.Config {
	return s.cfg
}

// Generate produces a password based on the given request. When req.Copy is set and
// the clipboard write fails, the response still carries the password alongside an
// ErrClipboard error.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	genReq := s.Request(req)

	password, err := s.generator.Generate(genReq)
	if err != nil {
		slog.DebugContext(ctx, "password generation rejected", "length", genReq.Length, "classes", len(genReq.Classes), "error", err)
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   len(password),
	}

	if req.Copy {
		if err := s.Copy(ctx, password); err != nil {
			return resp, err
		}
		resp.Copied = true
	}

	slog.DebugContext(ctx, "password generated", "length", resp.Length, "copied", resp.Copied)
	return resp, nil
}

// Copy places password on the clipboard.
func (s *GeneratorService) Copy(ctx context.Context, password string) error {
	if err := s.clipboard.WriteAll(password); err != nil {
		slog.WarnContext(ctx, "clipboard write failed", "error", err)
		return fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	return nil
}

// Request resolves a front-end request against the configured defaults.
func (s *GeneratorService) Request(req model.GenerateRequest) crypto.GenerationRequest {
	length := req.Length
	if length == 0 {
		length = s.cfg.Length
	}

	toggles := []struct {
		class crypto.CharacterClass
		value *bool
	}{
		{crypto.Uppercase, req.Uppercase},
		{crypto.Lowercase, req.Lowercase},
		{crypto.Digit, req.Digits},
		{crypto.Punctuation, req.Punctuation},
	}

	var classes []crypto.CharacterClass
	for _, tg := range toggles {
		if boolOrDefault(tg.value, s.cfg.ClassEnabled(tg.class)) {
			classes = append(classes, tg.class)
		}
	}

	return crypto.GenerationRequest{Length: length, Classes: classes}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
