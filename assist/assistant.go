// Package assist implements a chat assistant answering questions about the
// ledger with Gemini.
package assist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/expenses"
	"google.golang.org/genai"
)

// Model is the Gemini model used by the assistant.
const Model = "gemini-2.5-flash"

const prompt = "assist> "

// Chat sends messages in a chat session. *genai.Chat is one.
type Chat interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Assistant is a chat session about a ledger.
type Assistant struct {
	w       io.Writer
	r       *bufio.Reader
	ledger  *expenses.Ledger
	cur     string
	Library Library
	chat    Chat
}

// New creates an Assistant for ledger, reading the user questions from r and
// writing the answers to w.
func New(w io.Writer, r io.Reader, ledger *expenses.Ledger, currency string) *Assistant {
	return &Assistant{
		w:       w,
		r:       bufio.NewReader(r),
		ledger:  ledger,
		cur:     currency,
		Library: NewLibrary(Functions(ledger, currency)),
	}
}

// Config returns the chat configuration: the system instruction and the tools
// the model can call.
func (a *Assistant) Config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: NewDeclaration(Functions(a.ledger, a.cur))},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: Instruction(a.ledger, a.cur)}}},
	}
}

// Start creates the Gemini chat.
func (a *Assistant) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, Model, a.Config(), nil)
	if err != nil {
		return fmt.Errorf("could not create chat: %w", err)
	}
	a.chat = chat
	return nil
}

// StartWith uses chat for the session.
func (a *Assistant) StartWith(chat Chat) { a.chat = chat }

// Ask sends parts to the model and returns its answer. Function calls are
// answered by the Library until the model gives a real answer.
func (a *Assistant) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if a.chat == nil {
		return nil, errors.New("assistant is not started")
	}
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no response from the assistant")
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if a.Library == nil {
			return nil, fmt.Errorf("assistant cannot call %s", part0.FunctionCall.Name)
		}
		return a.Ask(ctx, &genai.Part{FunctionResponse: a.Library(ctx, part0.FunctionCall)})
	}
	return resp.Candidates[0].Content, nil
}

// Run starts the interactive session. prompts are asked first, as if the
// user typed them. 'bye' or the end of the input ends the session.
func (a *Assistant) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Welcome to the expenses assistant. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
				fmt.Fprintln(a.w)
				return nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		content, err := a.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
