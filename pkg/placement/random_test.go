package placement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridplace/pkg/errors"
)

func TestRandom_TotalAndDirectives(t *testing.T) {
	p := starProblem(Directive{Element: 1, Position: 5}, Directive{Element: 9, Position: 1})
	res, err := Random{Seed: 7}.Place(context.Background(), p)
	require.NoError(t, err)

	assert.True(t, res.Placement.IsTotal(9))
	assert.NoError(t, res.Placement.Validate(p.Grid))
	assert.Equal(t, 5, res.Placement[1])
	assert.Equal(t, 1, res.Placement[9])
	assert.Equal(t, 7, res.Steps)
}

func TestRandom_NoDirectivesNeeded(t *testing.T) {
	res, err := Random{Seed: 1}.Place(context.Background(), starProblem())
	require.NoError(t, err)
	assert.True(t, res.Placement.IsTotal(9))
}

func TestRandom_SeedDeterminism(t *testing.T) {
	p := starProblem()
	a, err := Random{Seed: 42}.Place(context.Background(), p)
	require.NoError(t, err)
	b, err := Random{Seed: 42}.Place(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, a.Placement, b.Placement)
}

func TestRandom_InvalidDirective(t *testing.T) {
	_, err := Random{}.Place(context.Background(), starProblem(Directive{Element: 10, Position: 1}))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDirective), "got %v", err)
}
