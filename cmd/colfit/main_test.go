package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/colfit/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"interrupted", fmt.Errorf("fit a.toml: %w", context.Canceled), exitInterrupted},
		{"missing file", fmt.Errorf("load a.toml: %w", errs.New(errs.ErrCodeFileNotFound, "table file a.toml")), exitBadInput},
		{"bad hint", errs.New(errs.ErrCodeInvalidHint, "width hint NaN is not a finite number"), exitBadInput},
		{"cell failure", errs.Wrap(errs.ErrCodeMeasure, errors.New("boom"), "column %q", "A"), exitFailure},
		{"plain error", errors.New("unknown command"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
