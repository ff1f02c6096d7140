package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/hh-interviewer/internal/utils"
)

type fakeChatCreator struct {
	mu    sync.Mutex
	calls []chatCallRecord
	queue map[string][]fakeChatResponse
}

type chatCallRecord struct {
	model  string
	config *genai.GenerateContentConfig
	chat   *fakeChat
}

type fakeChatResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeChat struct {
	mu       sync.Mutex
	response fakeChatResponse
	messages []string
}

func (f *fakeChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, part := range parts {
		f.messages = append(f.messages, part.Text)
	}
	return f.response.resp, f.response.err
}

func newFakeChatCreator() *fakeChatCreator {
	return &fakeChatCreator{queue: make(map[string][]fakeChatResponse)}
}

func (f *fakeChatCreator) enqueue(model string, resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue[model] = append(f.queue[model], fakeChatResponse{resp: resp, err: err})
}

func (f *fakeChatCreator) Create(_ context.Context, model string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	responses := f.queue[model]
	if len(responses) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := responses[0]
	f.queue[model] = responses[1:]
	chat := &fakeChat{response: res}
	f.calls = append(f.calls, chatCallRecord{model: model, config: config, chat: chat})
	return chat, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func stubWait(t *testing.T) *[]time.Duration {
	t.Helper()
	var delays []time.Duration
	original := wait
	wait = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	t.Cleanup(func() { wait = original })
	return &delays
}

func TestGeneratorRetryPolicy(t *testing.T) {
	internal := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	longQuota := genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	}
	badRequest := genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}

	type reply struct {
		text string
		err  error
	}

	tests := map[string]struct {
		replies    []reply
		maxRetries int
		wantText   string
		wantErr    bool
		wantCalls  int
	}{
		"recovers after one internal error": {
			replies:    []reply{{err: internal}, {text: `{"questions":[]}`}},
			maxRetries: 2,
			wantText:   `{"questions":[]}`,
			wantCalls:  2,
		},
		"gives up when attempts run out": {
			replies:    []reply{{err: internal}, {err: internal}},
			maxRetries: 2,
			wantErr:    true,
			wantCalls:  2,
		},
		"long quota hint is not waited for": {
			replies:    []reply{{err: longQuota}},
			maxRetries: 3,
			wantErr:    true,
			wantCalls:  1,
		},
		"client errors are final": {
			replies:    []reply{{err: badRequest}},
			maxRetries: 3,
			wantErr:    true,
			wantCalls:  1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stubWait(t)

			chats := newFakeChatCreator()
			for _, r := range tc.replies {
				if r.err != nil {
					chats.enqueue("gemini-pro", nil, r.err)
					continue
				}
				chats.enqueue("gemini-pro", textResponse(r.text), nil)
			}

			g := &Generator{
				chats:      chats,
				model:      "gemini-pro",
				maxRetries: tc.maxRetries,
				mimeType:   jsonMIMEType,
				logger:     zap.NewNop(),
			}

			got, err := g.GenerateContent(context.Background(), "You write interview questions.", "Resume: pivot tables")
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.wantText {
				t.Fatalf("unexpected output: %q", got)
			}
			if len(chats.calls) != tc.wantCalls {
				t.Fatalf("expected %d calls, got %d", tc.wantCalls, len(chats.calls))
			}
		})
	}
}

func TestGeneratorSendsPromptAsJSONRequest(t *testing.T) {
	stubWait(t)

	chats := newFakeChatCreator()
	chats.enqueue("gemini-pro", textResponse(`{"score":0.7}`), nil)

	g := &Generator{chats: chats, model: "gemini-pro", maxRetries: 1, mimeType: jsonMIMEType, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "Grade the answer.", "Answer: use SUMIFS"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := chats.calls[0]
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatal("expected system instruction to be set")
	}
	if got := call.config.SystemInstruction.Parts[0].Text; got != "Grade the answer." {
		t.Fatalf("unexpected system instruction: %q", got)
	}
	if call.config.ResponseMIMEType != jsonMIMEType {
		t.Fatalf("expected json response type, got %q", call.config.ResponseMIMEType)
	}
	if len(call.chat.messages) != 1 || call.chat.messages[0] != "Answer: use SUMIFS" {
		t.Fatalf("unexpected chat message: %+v", call.chat.messages)
	}
}

func TestGeneratorRejectsEmptyResponse(t *testing.T) {
	chats := newFakeChatCreator()
	chats.enqueue("gemini-pro", textResponse("   "), nil)

	g := &Generator{chats: chats, model: "gemini-pro", maxRetries: 1, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "", "msg"); err == nil {
		t.Fatal("expected error for empty response")
	}

	if chats.calls[0].config.SystemInstruction != nil {
		t.Fatal("did not expect a system instruction for an empty system prompt")
	}
}

func TestRetryDelayHonoursShortQuotaHint(t *testing.T) {
	err := genai.APIError{Code: http.StatusTooManyRequests, Message: "Please retry in 7.5s."}

	delay, retry := retryDelay(err, 1)
	if !retry {
		t.Fatal("expected retry")
	}
	if delay != 7500*time.Millisecond {
		t.Fatalf("unexpected delay: %v", delay)
	}

	if _, retry := retryDelay(errors.New("network down"), 1); retry {
		t.Fatal("did not expect retry for non api errors")
	}
}

func TestGeneratorStopsWhenContextEndsDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	original := wait
	wait = func(waitCtx context.Context, d time.Duration) error {
		cancel()
		return utils.WaitFor(waitCtx, d)
	}
	t.Cleanup(func() { wait = original })

	chats := newFakeChatCreator()
	chats.enqueue("gemini-pro", nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	chats.enqueue("gemini-pro", textResponse("{}"), nil)

	g := &Generator{chats: chats, model: "gemini-pro", maxRetries: 2, mimeType: jsonMIMEType, logger: zap.NewNop()}

	out, err := g.GenerateContent(ctx, "You write interview questions.", "Resume: pivot tables")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out != "" {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(chats.calls) != 1 {
		t.Fatalf("expected a single call, got %d", len(chats.calls))
	}
}

func TestGeneratorWaitsRetryBaseDelay(t *testing.T) {
	delays := stubWait(t)

	chats := newFakeChatCreator()
	chats.enqueue("gemini-pro", nil, genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"})
	chats.enqueue("gemini-pro", textResponse("{}"), nil)

	g := &Generator{chats: chats, model: "gemini-pro", maxRetries: 2, mimeType: jsonMIMEType, logger: zap.NewNop()}

	if _, err := g.GenerateContent(context.Background(), "sys", "msg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*delays) != 1 || (*delays)[0] <= 0 {
		t.Fatalf("expected one positive backoff, got %v", *delays)
	}
}
