package trivia

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealTextEmitsEveryRune(t *testing.T) {
	rv := NewRevealer(time.Millisecond, 0)

	var chunks []string
	err := rv.RevealText(context.Background(), "¿Cuál es?", func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)

	assert.Equal(t, "¿Cuál es?", strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.Len(t, []rune(c), 1)
	}
}

func TestRevealTextStopsOnCancel(t *testing.T) {
	rv := NewRevealer(time.Minute, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emitted := 0
	err := rv.RevealText(ctx, "nunca", func(string) { emitted++ })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, emitted)
}

func TestRevealOptions(t *testing.T) {
	rv := NewRevealer(time.Millisecond, time.Millisecond)

	byIndex := map[int]string{}
	err := rv.RevealOptions(context.Background(), []string{"sí", "no", "quizás"}, func(i int, chunk string) {
		byIndex[i] += chunk
	})
	require.NoError(t, err)

	assert.Equal(t, map[int]string{0: "sí", 1: "no", 2: "quizás"}, byIndex)
}

func TestRevealOptionsStopsOnCancel(t *testing.T) {
	rv := NewRevealer(time.Millisecond, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	var first string
	err := rv.RevealOptions(ctx, []string{"sí", "no"}, func(i int, chunk string) {
		if i == 0 {
			first += chunk
		}
		if first == "sí" {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "sí", first)
}

func TestNewRevealerDefaults(t *testing.T) {
	rv := NewRevealer(0, -1)

	assert.Equal(t, DefaultTypingInterval, rv.Interval)
	assert.Equal(t, DefaultOptionPause, rv.Pause)
}
