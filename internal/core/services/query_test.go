package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func question(text string) domain.Question {
	return domain.Question{DocumentID: "doc-1", SessionID: "s1", Text: text}
}

func TestQueryController_SubmitInsertsPendingExchange(t *testing.T) {
	c := NewQueryController(&mockAnswerer{}, domain.NoticeSettings{})

	flight := c.Submit(context.Background(), question("What is this?"))
	require.NotNil(t, flight)

	exchanges := c.Exchanges()
	require.Len(t, exchanges, 1)
	assert.Equal(t, "What is this?", exchanges[0].Question)
	assert.Equal(t, domain.ExchangePending, exchanges[0].Status)
	assert.Equal(t, flight.LocalID, exchanges[0].LocalID)
	assert.Equal(t, domain.SubmissionPending, c.Status())
}

func TestQueryController_SuccessfulAnswer(t *testing.T) {
	c := NewQueryController(&mockAnswerer{}, domain.NoticeSettings{})

	flight := c.Submit(context.Background(), question("hello"))
	outcome := c.Complete(flight.Await())

	assert.True(t, outcome.Applied)
	assert.True(t, outcome.ClearInput)
	assert.False(t, outcome.Fatal)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "s1", outcome.SessionID)

	exchanges := c.Exchanges()
	require.Len(t, exchanges, 1)
	assert.Equal(t, "answer: hello", exchanges[0].Answer)
	assert.Equal(t, domain.ExchangeAnswered, exchanges[0].Status)
	assert.Equal(t, domain.SubmissionIdle, c.Status())
}

func TestQueryController_BlankQuestion(t *testing.T) {
	answerer := &mockAnswerer{
		AskFunc: func(context.Context, domain.Question) (string, error) {
			t.Fatal("blank question must not reach the backend")
			return "", nil
		},
	}
	c := NewQueryController(answerer, domain.NoticeSettings{})

	for _, text := range []string{"", "   ", "\n\t"} {
		assert.Nil(t, c.Submit(context.Background(), question(text)))
	}

	exchanges := c.Exchanges()
	require.Len(t, exchanges, 3)
	for _, ex := range exchanges {
		assert.Equal(t, domain.EmptyQuestionGuidance, ex.Answer)
		assert.Equal(t, domain.ExchangeAnswered, ex.Status)
	}
	assert.Equal(t, domain.SubmissionIdle, c.Status())
}

func TestQueryController_BlankQuestionKeepsPendingFlight(t *testing.T) {
	c := NewQueryController(&mockAnswerer{}, domain.NoticeSettings{})

	flight := c.Submit(context.Background(), question("real"))
	assert.Nil(t, c.Submit(context.Background(), question(" ")))
	assert.Equal(t, domain.SubmissionPending, c.Status())

	outcome := c.Complete(flight.Await())
	assert.True(t, outcome.Applied)

	exchanges := c.Exchanges()
	require.Len(t, exchanges, 2)
	assert.Equal(t, "answer: real", exchanges[0].Answer)
	assert.Equal(t, domain.EmptyQuestionGuidance, exchanges[1].Answer)
}

func TestQueryController_SupersedeDiscardsStaleCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewQueryController(blockingAnswerer(), domain.NoticeSettings{})

	first := c.Submit(context.Background(), question("first"))
	done := make(chan domain.Completion, 1)
	go func() { done <- first.Await() }()

	second := c.Submit(context.Background(), question("second"))
	require.NotNil(t, second)

	// The superseded exchange terminates immediately.
	exchanges := c.Exchanges()
	require.Len(t, exchanges, 2)
	assert.Equal(t, domain.DefaultCancelledNotice, exchanges[0].Answer)
	assert.Equal(t, domain.ExchangeAnswered, exchanges[0].Status)
	assert.Equal(t, domain.ExchangePending, exchanges[1].Status)

	stale := <-done
	assert.ErrorIs(t, stale.Err, context.Canceled)
	outcome := c.Complete(stale)
	assert.False(t, outcome.Applied)

	// A late success for the first flight is also discarded.
	late := c.Complete(domain.Completion{
		LocalID:    first.LocalID,
		Generation: first.Generation,
		SessionID:  "s1",
		Answer:     "too late",
	})
	assert.False(t, late.Applied)
	assert.Equal(t, domain.DefaultCancelledNotice, c.Exchanges()[0].Answer)

	assert.True(t, c.Cancel())
	_ = c.Complete(second.Await())
}

func TestQueryController_AtMostOnePending(t *testing.T) {
	c := NewQueryController(blockingAnswerer(), domain.NoticeSettings{})

	var flights []*domain.Flight
	for _, text := range []string{"a", "b", "c", "d"} {
		flights = append(flights, c.Submit(context.Background(), question(text)))
	}

	pending := 0
	for _, ex := range c.Exchanges() {
		if ex.Status == domain.ExchangePending {
			pending++
		}
	}
	assert.Equal(t, 1, pending)
	assert.Equal(t, flights[3].LocalID, c.Exchanges()[3].LocalID)

	c.Reset()
	for _, f := range flights {
		assert.False(t, c.Complete(f.Await()).Applied)
	}
}

func TestQueryController_Cancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	notices := domain.NoticeSettings{Cancelled: "Stopped."}
	c := NewQueryController(blockingAnswerer(), notices)

	assert.False(t, c.Cancel())

	flight := c.Submit(context.Background(), question("slow"))
	done := make(chan domain.Completion, 1)
	go func() { done <- flight.Await() }()

	assert.True(t, c.Cancel())
	assert.Equal(t, domain.SubmissionIdle, c.Status())

	exchanges := c.Exchanges()
	require.Len(t, exchanges, 1)
	assert.Equal(t, "Stopped.", exchanges[0].Answer)
	assert.Equal(t, domain.ExchangeAnswered, exchanges[0].Status)

	outcome := c.Complete(<-done)
	assert.False(t, outcome.Applied)
	assert.Equal(t, "Stopped.", c.Exchanges()[0].Answer)
	assert.False(t, c.Cancel())
}

func TestQueryController_InlineFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		notices domain.NoticeSettings
		want    string
		kind    domain.ErrorKind
	}{
		{
			name: "rate limited with detail",
			err:  domain.NewRemoteError(domain.ErrorKindRateLimited, http.StatusTooManyRequests, "Quota exceeded"),
			want: "Quota exceeded",
			kind: domain.ErrorKindRateLimited,
		},
		{
			name: "rate limited without detail",
			err:  domain.NewRemoteError(domain.ErrorKindRateLimited, http.StatusTooManyRequests, ""),
			want: domain.DefaultRateLimitedNotice,
			kind: domain.ErrorKindRateLimited,
		},
		{
			name:    "rate limited with configured text",
			err:     domain.ErrRateLimited,
			notices: domain.NoticeSettings{RateLimited: "Slow down."},
			want:    "Slow down.",
			kind:    domain.ErrorKindRateLimited,
		},
		{
			name: "cancelled by server",
			err:  domain.NewRemoteError(domain.ErrorKindCancelled, 499, "Client closed request"),
			want: "Client closed request",
			kind: domain.ErrorKindCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewQueryController(failingAnswerer(tt.err), tt.notices)

			flight := c.Submit(context.Background(), question("q"))
			outcome := c.Complete(flight.Await())

			assert.True(t, outcome.Applied)
			assert.False(t, outcome.Fatal)
			assert.False(t, outcome.ClearInput)
			assert.Equal(t, tt.kind, outcome.Kind)

			ex := c.Exchanges()[0]
			assert.Equal(t, tt.want, ex.Answer)
			assert.Equal(t, domain.ExchangeAnswered, ex.Status)
		})
	}
}

func TestQueryController_FatalFailures(t *testing.T) {
	tests := []struct {
		name string
		err    error
		kind   domain.ErrorKind
		answer string
	}{
		{"not found", domain.NewRemoteError(domain.ErrorKindNotFound, http.StatusNotFound, "Session not found"), domain.ErrorKindNotFound, "Session not found"},
		{"other", errors.New("connection refused"), domain.ErrorKindOther, "connection refused"},
		{"other without detail", domain.NewRemoteError(domain.ErrorKindOther, http.StatusBadGateway, ""), domain.ErrorKindOther, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewQueryController(failingAnswerer(tt.err), domain.NoticeSettings{})

			flight := c.Submit(context.Background(), question("q"))
			outcome := c.Complete(flight.Await())

			assert.True(t, outcome.Applied)
			assert.True(t, outcome.Fatal)
			assert.Equal(t, tt.kind, outcome.Kind)
			assert.Equal(t, domain.ExchangeAnswered, c.Exchanges()[0].Status)
			assert.Equal(t, tt.answer, c.Exchanges()[0].Answer)
			assert.Equal(t, domain.SubmissionIdle, c.Status())
		})
	}
}

func TestQueryController_UnclassifiedKindFails(t *testing.T) {
	c := NewQueryController(&mockAnswerer{}, domain.NoticeSettings{})

	flight := c.Submit(context.Background(), question("q"))
	completion := flight.Await()
	completion.Err = domain.NewRemoteError(domain.ErrorKind(99), http.StatusTeapot, "odd")
	outcome := c.Complete(completion)

	assert.True(t, outcome.Applied)
	assert.True(t, outcome.Fatal)
	assert.Equal(t, domain.ExchangeFailed, c.Exchanges()[0].Status)
	assert.Equal(t, "odd", c.Exchanges()[0].Answer)
}

func TestQueryController_ResetForgetsExchanges(t *testing.T) {
	c := NewQueryController(&mockAnswerer{}, domain.NoticeSettings{})

	flight := c.Submit(context.Background(), question("q"))
	c.Reset()

	assert.Empty(t, c.Exchanges())
	assert.Equal(t, domain.SubmissionIdle, c.Status())
	assert.False(t, c.Complete(flight.Await()).Applied)
}

func TestQueryController_LocalIDsAreUnique(t *testing.T) {
	c := NewQueryController(&mockAnswerer{}, domain.NoticeSettings{})

	seen := map[uint64]bool{}
	for i := 0; i < 5; i++ {
		if f := c.Submit(context.Background(), question("q")); f != nil {
			c.Complete(f.Await())
		}
		c.Submit(context.Background(), question(""))
	}
	for _, ex := range c.Exchanges() {
		assert.False(t, seen[ex.LocalID])
		seen[ex.LocalID] = true
	}
	assert.Len(t, seen, 10)
}
