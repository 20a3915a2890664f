package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestNotifier_DeliversInOrder(t *testing.T) {
	n := NewNotifier()

	n.Notify(domain.ErrorNotice("first"))
	n.Notify(domain.ErrorNotice("second"))

	msg, ok := n.Wait()().(messages.NoticeRaised)
	require.True(t, ok)
	assert.Equal(t, "first", msg.Notice.Message)

	msg, ok = n.Wait()().(messages.NoticeRaised)
	require.True(t, ok)
	assert.Equal(t, "second", msg.Notice.Message)
}

func TestNotifier_DropsWhenFull(t *testing.T) {
	n := NewNotifier()

	for i := 0; i < noticeBuffer+5; i++ {
		n.Notify(domain.ErrorNotice("notice"))
	}

	assert.Len(t, n.ch, noticeBuffer)
}

func TestNotifier_CloseReleasesWait(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := NewNotifier()
	done := make(chan any, 1)
	go func() { done <- n.Wait()() }()

	n.Close()
	n.Close()

	assert.Nil(t, <-done)
}
