package twoq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoQ_FirstTimeAdmissionGoesToProbation(t *testing.T) {
	p := New[string](2, 4)
	p.OnInsert("a")
	p.OnInsert("b")

	victim, err := p.SelectVictim()
	require.NoError(t, err)
	require.Equal(t, "a", victim, "LRU of probation queue")
}

func TestTwoQ_AccessPromotesOutOfProbation(t *testing.T) {
	p := New[string](2, 4)
	p.OnInsert("a")
	p.OnInsert("b")
	p.OnAccess("a") // promote a into Am

	victim, err := p.SelectVictim()
	require.NoError(t, err)
	require.Equal(t, "b", victim, "b is still in probation, evicted first")
}

func TestTwoQ_GhostHitSkipsProbation(t *testing.T) {
	p := New[string](1, 4)
	p.OnInsert("a")
	p.OnRemove("a") // a becomes a ghost

	p.OnInsert("a") // re-admission: ghost hit -> straight into Am
	p.OnInsert("b") // b enters probation

	victim, err := p.SelectVictim()
	require.NoError(t, err)
	require.Equal(t, "b", victim, "b is in probation; a skipped it via the ghost queue")
}

func TestTwoQ_EmptyIsIllegalState(t *testing.T) {
	p := New[string](2, 4)
	require.True(t, p.Empty())
	_, err := p.SelectVictim()
	require.Error(t, err)
}

func TestTwoQ_GhostCapacityIsBounded(t *testing.T) {
	p := New[int](1, 2)
	for i := 0; i < 10; i++ {
		p.OnInsert(i)
		p.OnRemove(i)
	}
	require.LessOrEqual(t, len(p.ghostI), 2)
}

func TestTwoQ_Clear(t *testing.T) {
	p := New[string](2, 4)
	p.OnInsert("a")
	p.Clear()
	require.True(t, p.Empty())
}
