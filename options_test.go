package vpath

import (
	"errors"
	"testing"
)

func TestNewSubdivider_Defaults(t *testing.T) {
	s, err := NewSubdivider()
	if err != nil {
		t.Fatalf("NewSubdivider() error: %v", err)
	}
	if s != DefaultSubdivider() {
		t.Errorf("NewSubdivider() = %+v, want %+v", s, DefaultSubdivider())
	}
}

func TestNewSubdivider_Options(t *testing.T) {
	s, err := NewSubdivider(
		WithApproximationScale(4),
		WithAngleTolerance(0.2),
		WithCuspLimit(0.5),
		WithRecursionLimit(16),
	)
	if err != nil {
		t.Fatalf("NewSubdivider() error: %v", err)
	}
	want := Subdivider{
		ApproximationScale: 4,
		AngleTolerance:     0.2,
		CuspLimit:          0.5,
		RecursionLimit:     16,
	}
	if s != want {
		t.Errorf("NewSubdivider() = %+v, want %+v", s, want)
	}
	if got := s.DistanceToleranceSquare(); got != 0.125*0.125 {
		t.Errorf("DistanceToleranceSquare() = %v, want %v", got, 0.125*0.125)
	}
}

func TestNewSubdivider_LastOptionWins(t *testing.T) {
	s, err := NewSubdivider(WithApproximationScale(2), WithApproximationScale(8))
	if err != nil {
		t.Fatal(err)
	}
	if s.ApproximationScale != 8 {
		t.Errorf("ApproximationScale = %v, want 8", s.ApproximationScale)
	}
}

func TestNewSubdivider_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"negative scale", WithApproximationScale(-2), ErrInvalidScale},
		{"negative angle", WithAngleTolerance(-1), ErrInvalidAngle},
		{"negative cusp", WithCuspLimit(-0.5), ErrInvalidAngle},
		{"deep recursion", WithRecursionLimit(64), ErrInvalidRecursionLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSubdivider(tt.opt)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewSubdivider() error = %v, want %v", err, tt.want)
			}
			if s != (Subdivider{}) {
				t.Errorf("NewSubdivider() returned %+v with error", s)
			}
		})
	}
}
