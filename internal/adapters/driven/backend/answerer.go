package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// Ask posts a question in a session and waits for the answer.
// Cancelling ctx abandons the request; the backend may still finish it.
func (c *Client) Ask(ctx context.Context, q domain.Question) (string, error) {
	body := questionRequest{
		Question:  q.Text,
		SessionID: q.SessionID,
	}

	var resp questionResponse
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("question", q.DocumentID), body, &resp); err != nil {
		return "", fmt.Errorf("ask question: %w", err)
	}
	return resp.Answer, nil
}
