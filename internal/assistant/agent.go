// Package assistant answers shop questions in plain language through Gemini function calling.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("assistant is not configured")

const maxToolRounds = 5

type Agent struct {
	apiKey string
	model  string
	tools  *Tools
	now    func() time.Time
	log    *logrus.Entry
}

func NewAgent(apiKey, model string, tools *Tools) *Agent {
	return &Agent{
		apiKey: apiKey,
		model:  model,
		tools:  tools,
		now:    time.Now,
		log:    logrus.WithField("component", "assistant"),
	}
}

func (a *Agent) Enabled() bool {
	return a != nil && a.apiKey != ""
}

func (a *Agent) systemPrompt() string {
	today := a.now().Format("2006-01-02")
	return fmt.Sprintf(`Today is %s. You are the assistant of a jewelry shop that sells gold by weight.
Prices are in AZN, weights in grams, carat is the gold purity (583, 750, ...).

RULES:
1. PRODUCT: for any question about a specific item, call 'find_product' with its code. Never guess prices.
2. STOCK: for questions about what is on the shelf or what it is worth, call 'stock_valuation'.
3. SALES: for today's figures or debts call 'sales_summary'; for a specific day call 'daily_report'.
4. You cannot change data. If asked to, say which screen of the app does it.
Answer briefly, in the language the user writes in.`, today)
}

// Ask sends one user message and keeps answering function calls until the model replies
// with text or the round limit is hit.
func (a *Agent) Ask(ctx context.Context, message string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(a.systemPrompt()))
	model.Tools = []*genai.Tool{{FunctionDeclarations: a.tools.Declarations()}}

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			a.log.WithField("tool", call.Name).Debug("assistant tool call")
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: a.tools.Call(ctx, call.Name, call.Args),
			})
		}

		resp, err = session.SendMessage(ctx, parts...)
		if err != nil {
			return "", err
		}
	}

	return replyText(resp), nil
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I completed the action."
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out += string(txt)
		}
	}
	if out == "" {
		return "I completed the action."
	}
	return out
}
