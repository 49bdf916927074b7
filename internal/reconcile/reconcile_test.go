package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNameMap_ExactBeatsSubstring(t *testing.T) {
	// "pachi pizza" is also a substring of "pachi pizza and pasta", but
	// the exact tracker row must win.
	res := BuildNameMap(
		[]string{"pachi pizza"},
		[]string{"pachi pizza and pasta", "pachi pizza"},
		Options{},
	)

	assert.Equal(t, "pachi pizza", res.Map["pachi pizza"])
	assert.Empty(t, res.Unmatched)
}

func TestBuildNameMap_SubstringEitherDirection(t *testing.T) {
	res := BuildNameMap(
		[]string{
			"pachi pizza and pasta", // order key contains tracker key
			"azul",                  // tracker key contains order key
		},
		[]string{"pachi pizza", "azul pastry"},
		Options{},
	)

	assert.Equal(t, "pachi pizza", res.Map["pachi pizza and pasta"])
	assert.Equal(t, "azul pastry", res.Map["azul"])
	assert.Empty(t, res.Unmatched)
}

func TestBuildNameMap_OverrideBeforeHeuristics(t *testing.T) {
	overrides := map[string]string{
		"pizza pachi": "pachi pizza",
		"ghost":       "not in tracker",
	}

	res := BuildNameMap(
		[]string{"pizza pachi", "ghost"},
		[]string{"pachi pizza"},
		Options{Overrides: overrides},
	)

	// The override lands even though neither heuristic pass would.
	assert.Equal(t, "pachi pizza", res.Map["pizza pachi"])
	// An override pointing at a missing tracker row is ignored.
	assert.Equal(t, []string{"ghost"}, res.Unmatched)
}

func TestBuildNameMap_FuzzyFallback(t *testing.T) {
	res := BuildNameMap(
		[]string{"shawerma 3a saj"},
		[]string{"shawerma saj", "azul"},
		Options{},
	)

	assert.Equal(t, "shawerma saj", res.Map["shawerma 3a saj"])
}

func TestBuildNameMap_FuzzyBelowThresholdUnmatched(t *testing.T) {
	res := BuildNameMap(
		[]string{"completely different"},
		[]string{"pachi pizza", "azul pastry"},
		Options{},
	)

	assert.Empty(t, res.Map)
	assert.Equal(t, []string{"completely different"}, res.Unmatched)
}

func TestBuildNameMap_ThresholdInjectable(t *testing.T) {
	orderKeys := []string{"secrets"}
	trackerKeys := []string{"service"}

	strict := BuildNameMap(orderKeys, trackerKeys, Options{Threshold: 0.99})
	assert.Empty(t, strict.Map)

	loose := BuildNameMap(orderKeys, trackerKeys, Options{Threshold: 0.1})
	assert.Equal(t, "service", loose.Map["secrets"])
}

func TestBuildNameMap_DeterministicSubstringTies(t *testing.T) {
	// Both tracker keys contain the order key; the lexicographically
	// smallest must win, every time.
	for i := 0; i < 10; i++ {
		res := BuildNameMap(
			[]string{"fit"},
			[]string{"the fit bar jo", "fit factory"},
			Options{},
		)
		require.Equal(t, "fit factory", res.Map["fit"])
	}
}

func TestBuildNameMap_DuplicateOrderKeys(t *testing.T) {
	res := BuildNameMap(
		[]string{"azul", "azul", "azul"},
		[]string{"azul"},
		Options{},
	)

	assert.Len(t, res.Map, 1)
	assert.Empty(t, res.Unmatched)
}

func TestBuildNameMap_UnmatchedSorted(t *testing.T) {
	res := BuildNameMap(
		[]string{"zzz nowhere", "aaa nowhere"},
		[]string{"pachi pizza"},
		Options{},
	)

	assert.Equal(t, []string{"aaa nowhere", "zzz nowhere"}, res.Unmatched)
}
