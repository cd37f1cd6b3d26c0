package kernel_test

import (
	"testing"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  kernel.Location
		want string
	}{
		{kernel.Unknown, "Unknown"},
		{kernel.A, "A"},
		{kernel.D, "D"},
		{kernel.H, "H"},
		{kernel.Location(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestLocation_Validate(t *testing.T) {
	t.Run("real places are valid", func(t *testing.T) {
		for _, l := range kernel.Locations() {
			require.NoError(t, l.Validate())
			assert.True(t, l.IsKnown())
		}
	})

	t.Run("unknown is rejected", func(t *testing.T) {
		err := kernel.Unknown.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, kernel.Unknown.IsKnown())
	})

	t.Run("values outside the set are rejected", func(t *testing.T) {
		err := kernel.Location(42).Validate()
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewRandomLocation(t *testing.T) {
	src := rng.New(11)
	seen := make(map[kernel.Location]int)

	for range 800 {
		loc := kernel.NewRandomLocation(src)
		require.True(t, loc.IsKnown())
		seen[loc]++
	}

	assert.Len(t, seen, len(kernel.Locations()), "every place should be reachable")
}

func TestParseLocation(t *testing.T) {
	t.Run("case insensitive letters", func(t *testing.T) {
		loc, err := kernel.ParseLocation(" c ")
		require.NoError(t, err)
		assert.Equal(t, kernel.C, loc)
	})

	t.Run("unknown round-trips", func(t *testing.T) {
		loc, err := kernel.ParseLocation("Unknown")
		require.NoError(t, err)
		assert.Equal(t, kernel.Unknown, loc)
	})

	t.Run("rejects other symbols", func(t *testing.T) {
		_, err := kernel.ParseLocation("Z")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLocation_TextRoundTrip(t *testing.T) {
	text, err := kernel.E.MarshalText()
	require.NoError(t, err)

	var loc kernel.Location
	require.NoError(t, loc.UnmarshalText(text))
	assert.Equal(t, kernel.E, loc)
}
