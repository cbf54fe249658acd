package prompt

import (
	"context"
	"fmt"
)

// Choices lists what the interactive session offers.
type Choices struct {
	Fixtures        []string
	Renderers       []string
	DefaultRenderer string
	Nested          bool
}

// Selection is the outcome of an interactive session.
type Selection struct {
	Fixture  string
	Renderer string
	Nested   bool
}

// Choose asks for a fixture, a renderer and whether to expand nested structs.
func Choose(ctx context.Context, driver Driver, choices Choices) (Selection, error) {
	if driver == nil {
		return Selection{}, fmt.Errorf("prompt: driver is nil")
	}

	fixture, err := selectOne(ctx, driver, SelectConfig{
		Message: "Value to format",
		Options: choices.Fixtures,
	})
	if err != nil {
		return Selection{}, err
	}

	renderer, err := selectOne(ctx, driver, SelectConfig{
		Message:      "Renderer",
		Options:      choices.Renderers,
		DefaultIndex: indexOf(choices.Renderers, choices.DefaultRenderer),
	})
	if err != nil {
		return Selection{}, err
	}

	nested, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Expand nested structs?",
		Default: choices.Nested,
	})
	if err != nil {
		return Selection{}, err
	}

	return Selection{Fixture: fixture, Renderer: renderer, Nested: nested}, nil
}

func selectOne(ctx context.Context, driver Driver, cfg SelectConfig) (string, error) {
	if len(cfg.Options) == 0 {
		return "", ErrNoOptions
	}
	idx, err := driver.Select(ctx, cfg)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(cfg.Options) {
		return "", fmt.Errorf("prompt: selection %d out of range for %q", idx, cfg.Message)
	}
	return cfg.Options[idx], nil
}

// Scripted is a Driver that replays canned answers, for tests and
// non-interactive runs.
type Scripted struct {
	Selections []int
	Confirms   []bool
	Messages   []string
	Prompts    []string
}

var _ Driver = (*Scripted)(nil)

// Select returns the next scripted index or ErrAborted once exhausted.
func (s *Scripted) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.Prompts = append(s.Prompts, cfg.Message)
	if len(s.Selections) == 0 {
		return 0, ErrAborted
	}
	next := s.Selections[0]
	s.Selections = s.Selections[1:]
	return next, nil
}

// Confirm returns the next scripted answer or the prompt default.
func (s *Scripted) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.Prompts = append(s.Prompts, cfg.Message)
	if len(s.Confirms) == 0 {
		return cfg.Default, nil
	}
	next := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return next, nil
}

// Info records msg.
func (s *Scripted) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Messages = append(s.Messages, msg)
	return nil
}
