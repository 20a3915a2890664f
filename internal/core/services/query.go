package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// flightToken tracks the single in-flight request of a controller.
type flightToken struct {
	generation uint64
	localID    uint64
	cancel     context.CancelFunc
}

// QueryController owns the live exchanges of one workspace and enforces
// single-flight submission. A newer submission supersedes the pending one;
// completions carrying an older generation are discarded.
type QueryController struct {
	mu       sync.Mutex
	answerer driven.Answerer
	notices  domain.NoticeSettings

	exchanges  []domain.LiveExchange
	lastID     uint64
	generation uint64
	inflight   *flightToken
}

// NewQueryController creates a controller that asks questions through answerer.
func NewQueryController(answerer driven.Answerer, notices domain.NoticeSettings) *QueryController {
	return &QueryController{
		answerer: answerer,
		notices:  notices,
	}
}

// Submit records a question and returns the flight that will answer it.
//
// A blank question is answered locally with guidance and returns nil; any
// pending flight is left alone. Otherwise the pending flight, if any, is
// cancelled and a pending exchange is appended before Submit returns.
func (c *QueryController) Submit(ctx context.Context, question domain.Question) *domain.Flight {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(question.Text) == "" {
		c.appendLocked(question.Text, domain.EmptyQuestionGuidance, domain.ExchangeAnswered)
		logger.Debug("Blank question answered locally")
		return nil
	}

	if c.inflight != nil {
		logger.Debug("Superseding exchange %d", c.inflight.localID)
		c.cancelLocked()
	}

	localID := c.appendLocked(question.Text, "", domain.ExchangePending)
	c.generation++

	flightCtx, cancel := context.WithCancel(ctx)
	c.inflight = &flightToken{
		generation: c.generation,
		localID:    localID,
		cancel:     cancel,
	}

	answerer := c.answerer
	logger.Debug("Exchange %d pending (generation %d, session %s)", localID, c.generation, question.SessionID)

	return domain.NewFlight(localID, c.generation, question, func() (string, error) {
		return answerer.Ask(flightCtx, question)
	})
}

// Complete applies a flight's completion to its exchange.
// Completions that no longer match the tracked flight are discarded.
func (c *QueryController) Complete(completion domain.Completion) domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcome := domain.Outcome{
		LocalID:   completion.LocalID,
		SessionID: completion.SessionID,
	}

	tok := c.inflight
	if tok == nil || tok.generation != completion.Generation || tok.localID != completion.LocalID {
		logger.Debug("Discarding stale completion for exchange %d", completion.LocalID)
		return outcome
	}
	c.inflight = nil
	tok.cancel()
	outcome.Applied = true

	if completion.Err == nil {
		c.resolveLocked(completion.LocalID, completion.Answer, domain.ExchangeAnswered)
		outcome.ClearInput = true
		return outcome
	}

	kind := domain.ClassifyError(completion.Err)
	detail := domain.ErrorDetail(completion.Err)
	outcome.Err = completion.Err
	outcome.Kind = kind

	switch kind {
	case domain.ErrorKindCancelled:
		c.resolveLocked(completion.LocalID, firstNonEmpty(detail, c.notices.CancelledText()), domain.ExchangeAnswered)
	case domain.ErrorKindRateLimited:
		c.resolveLocked(completion.LocalID, firstNonEmpty(detail, c.notices.RateLimitedText()), domain.ExchangeAnswered)
	case domain.ErrorKindNotFound, domain.ErrorKindOther:
		c.resolveLocked(completion.LocalID, describeError(completion.Err), domain.ExchangeAnswered)
		outcome.Fatal = true
	default:
		c.resolveLocked(completion.LocalID, describeError(completion.Err), domain.ExchangeFailed)
		outcome.Fatal = true
	}

	logger.Debug("Exchange %d completed with %s", completion.LocalID, kind)
	return outcome
}

// Cancel stops waiting on the pending flight and answers its exchange with
// the cancellation notice. Returns false when nothing is pending.
func (c *QueryController) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight == nil {
		return false
	}
	c.cancelLocked()
	return true
}

// Reset cancels any pending flight and forgets every live exchange.
func (c *QueryController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight != nil {
		c.inflight.cancel()
		c.inflight = nil
	}
	c.exchanges = nil
}

// Exchanges returns a copy of the live exchanges in submission order.
func (c *QueryController) Exchanges() []domain.LiveExchange {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.LiveExchange, len(c.exchanges))
	copy(out, c.exchanges)
	return out
}

// Status reports whether a flight is pending.
func (c *QueryController) Status() domain.SubmissionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight != nil {
		return domain.SubmissionPending
	}
	return domain.SubmissionIdle
}

// cancelLocked signals the token and terminates the exchange (caller must hold lock).
func (c *QueryController) cancelLocked() {
	tok := c.inflight
	c.inflight = nil
	tok.cancel()
	c.resolveLocked(tok.localID, c.notices.CancelledText(), domain.ExchangeAnswered)
}

// appendLocked adds an exchange and returns its local ID (caller must hold lock).
func (c *QueryController) appendLocked(question, answer string, status domain.ExchangeStatus) uint64 {
	c.lastID++
	c.exchanges = append(c.exchanges, domain.LiveExchange{
		LocalID:  c.lastID,
		Question: question,
		Answer:   answer,
		Status:   status,
	})
	return c.lastID
}

// resolveLocked moves a pending exchange to a terminal state (caller must hold lock).
// Exchanges that are already terminal are left untouched.
func (c *QueryController) resolveLocked(localID uint64, answer string, status domain.ExchangeStatus) {
	for i := range c.exchanges {
		if c.exchanges[i].LocalID != localID {
			continue
		}
		if c.exchanges[i].Status.IsTerminal() {
			return
		}
		c.exchanges[i].Answer = answer
		c.exchanges[i].Status = status
		return
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
