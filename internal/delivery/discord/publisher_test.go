package discord

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"foxhole/internal/application"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	m := newFakeMessenger()
	p := NewPublisher(m)

	id, err := p.CreateMessage(ctx, "chan", "⏳ Создаю лидерборд...")
	require.NoError(t, err)
	assert.Equal(t, "chan/a", id)
	assert.Equal(t, "⏳ Создаю лидерборд...", m.sent[id])

	require.NoError(t, p.UpdateMessage(ctx, "chan", id, "🏆"))
	assert.Equal(t, "🏆", m.edits[id])
}

func TestPublisher_TruncatesLongText(t *testing.T) {
	m := newFakeMessenger()
	p := NewPublisher(m)

	id, err := p.CreateMessage(context.Background(), "chan", strings.Repeat("я", 3000))
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(m.sent[id])), maxMessageLength)
}

func TestPublisher_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "deleted message", err: restError(http.StatusNotFound), want: application.ErrNotFound},
		{name: "missing permissions", err: restError(http.StatusForbidden), want: application.ErrUnreachable},
		{name: "network", err: errNetwork, want: application.ErrUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeMessenger()
			m.sendErr = tt.err
			m.editErr = tt.err
			p := NewPublisher(m)

			_, err := p.CreateMessage(context.Background(), "chan", "x")
			assert.ErrorIs(t, err, tt.want)

			err = p.UpdateMessage(context.Background(), "chan", "msg", "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
