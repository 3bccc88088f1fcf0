package agoralink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypingMarkUnmark(t *testing.T) {
	ti := NewTypingIndicators()

	ti.Mark("alice")
	require.True(t, ti.IsTyping("alice"))

	ti.Unmark("alice")
	require.False(t, ti.IsTyping("alice"))
	require.Zero(t, ti.Len())
}

func TestTypingMarkIdempotent(t *testing.T) {
	ti := NewTypingIndicators()
	ti.Mark("alice")
	ti.Mark("alice")

	require.Equal(t, 1, ti.Len())
}

func TestTypingUnmarkUnknownIsNoop(t *testing.T) {
	ti := NewTypingIndicators()
	ti.Mark("alice")

	ti.Unmark("bob")

	require.Equal(t, []string{"alice"}, ti.Typing())
}

func TestTypingClear(t *testing.T) {
	ti := NewTypingIndicators()
	ti.Mark("alice")
	ti.Mark("bob")
	ti.Clear()

	require.Zero(t, ti.Len())
}
