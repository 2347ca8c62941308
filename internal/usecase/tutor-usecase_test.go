package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

type fakeTutorProvider struct {
	problem     string
	problemErr  error
	firstStep   string
	firstErr    error
	explanation string
	explainErr  error
	nextStep    string
	nextErr     error
	chatReply   string
	chatErr     error

	explainHistory []model.Turn
	nextHistory    []model.Turn
	chatHistory    []model.Turn
}

func (f *fakeTutorProvider) ExtractProblem(_ context.Context, _ model.Image) (string, error) {
	return f.problem, f.problemErr
}

func (f *fakeTutorProvider) FirstStep(_ context.Context, _ string) (string, error) {
	return f.firstStep, f.firstErr
}

func (f *fakeTutorProvider) ExplainStep(_ context.Context, _, _ string, history []model.Turn) (string, error) {
	f.explainHistory = history
	return f.explanation, f.explainErr
}

func (f *fakeTutorProvider) NextStep(_ context.Context, _ string, history []model.Turn) (string, error) {
	f.nextHistory = history
	return f.nextStep, f.nextErr
}

func (f *fakeTutorProvider) ChatResponse(_ context.Context, _ string, history []model.Turn, _ string) (string, error) {
	f.chatHistory = history
	return f.chatReply, f.chatErr
}

func newTutorFixture() (*TutorUsecase, *fakeTutorProvider) {
	provider := &fakeTutorProvider{
		problem:     "x^2 - 4 = 0",
		firstStep:   "Factor the left side.",
		explanation: "A difference of squares factors into conjugates.",
		nextStep:    "Set each factor to zero.",
		chatReply:   "Good question. Think about what makes a product zero.",
	}
	tutor := NewTutorUsecase(TutorUsecaseDeps{Provider: provider})
	return tutor, provider
}

func problemImage() model.Image {
	return model.Image{MimeType: "image/jpeg", Data: []byte("photo")}
}

func TestTutorStartsWithGreeting(t *testing.T) {
	tutor, _ := newTutorFixture()

	msgs := tutor.Messages()
	if len(msgs) != 1 || msgs[0].Text != MessageTutorGreeting || msgs[0].Sender != model.SenderBot {
		t.Fatalf("messages = %v, want single greeting", msgs)
	}
	if len(tutor.History()) != 0 {
		t.Errorf("history = %v, want empty", tutor.History())
	}
}

func TestTutorUploadProblem(t *testing.T) {
	tutor, _ := newTutorFixture()

	if err := tutor.UploadProblem(context.Background(), problemImage()); err != nil {
		t.Fatalf("UploadProblem: %v", err)
	}
	if tutor.Problem() != "x^2 - 4 = 0" {
		t.Errorf("problem = %q", tutor.Problem())
	}
	if tutor.LastStep() != "Factor the left side." {
		t.Errorf("last step = %q", tutor.LastStep())
	}

	want := []struct {
		sender model.Sender
		text   string
	}{
		{model.SenderUser, MessageProblemUpload},
		{model.SenderSystem, MessageAnalyzingImage},
		{model.SenderSystem, "Problem identified: x^2 - 4 = 0"},
		{model.SenderSystem, MessageThinkingFirstStep},
		{model.SenderBot, "Factor the left side."},
	}
	msgs := tutor.Messages()
	if len(msgs) != len(want) {
		t.Fatalf("got %d messages, want %d: %v", len(msgs), len(want), msgs)
	}
	for i, w := range want {
		if msgs[i].Sender != w.sender || msgs[i].Text != w.text {
			t.Errorf("message %d = {%s %q}, want {%s %q}", i, msgs[i].Sender, msgs[i].Text, w.sender, w.text)
		}
	}
	if msgs[0].Image == nil {
		t.Error("uploaded problem message lost its image")
	}

	// Only user and bot turns enter the model-visible history.
	history := tutor.History()
	if len(history) != 2 {
		t.Fatalf("history = %v, want user turn and bot turn", history)
	}
	if history[0].Role != model.RoleUser || history[1].Role != model.RoleModel {
		t.Errorf("history roles = %v %v", history[0].Role, history[1].Role)
	}
}

func TestTutorUploadProblem_ExtractionFailure(t *testing.T) {
	tutor, provider := newTutorFixture()
	provider.problemErr = errors.New("blurry image")

	if err := tutor.UploadProblem(context.Background(), problemImage()); err == nil {
		t.Fatal("expected upload failure")
	}
	if tutor.Problem() != "" {
		t.Errorf("problem = %q, want empty", tutor.Problem())
	}
	msgs := tutor.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != model.SenderBot || last.Text != MessageImageTrouble {
		t.Errorf("last message = %v, want image-trouble fallback", last)
	}
}

func TestTutorUploadProblem_FirstStepFailureKeepsProblem(t *testing.T) {
	tutor, provider := newTutorFixture()
	provider.firstErr = errors.New("timeout")

	if err := tutor.UploadProblem(context.Background(), problemImage()); err == nil {
		t.Fatal("expected upload failure")
	}
	if tutor.Problem() != "x^2 - 4 = 0" {
		t.Errorf("problem = %q, want it kept from the successful extraction", tutor.Problem())
	}
	if tutor.LastStep() != "" {
		t.Errorf("last step = %q, want empty", tutor.LastStep())
	}
}

func TestTutorAskWhy(t *testing.T) {
	tutor, provider := newTutorFixture()
	ctx := context.Background()
	if err := tutor.UploadProblem(ctx, problemImage()); err != nil {
		t.Fatalf("UploadProblem: %v", err)
	}

	if err := tutor.AskWhy(ctx); err != nil {
		t.Fatalf("AskWhy: %v", err)
	}
	msgs := tutor.Messages()
	last := msgs[len(msgs)-1]
	if last.Text != "A difference of squares factors into conjugates." {
		t.Errorf("last message = %q", last.Text)
	}

	// The history handed to the provider excludes the question being asked.
	for _, turn := range provider.explainHistory {
		if turn.Text == MessageAskWhy {
			t.Error("provider history contains the current question")
		}
	}
}

func TestTutorNextStep(t *testing.T) {
	tutor, provider := newTutorFixture()
	ctx := context.Background()
	if err := tutor.UploadProblem(ctx, problemImage()); err != nil {
		t.Fatalf("UploadProblem: %v", err)
	}

	if err := tutor.NextStep(ctx); err != nil {
		t.Fatalf("NextStep: %v", err)
	}
	if tutor.LastStep() != "Set each factor to zero." {
		t.Errorf("last step = %q", tutor.LastStep())
	}
	for _, turn := range provider.nextHistory {
		if turn.Text == MessageAskNextStep {
			t.Error("provider history contains the current question")
		}
	}
}

func TestTutorFallbackMessages(t *testing.T) {
	tests := []struct {
		name     string
		fail     func(p *fakeTutorProvider)
		act      func(ctx context.Context, tutor *TutorUsecase) error
		fallback string
	}{
		{
			name:     "explain",
			fail:     func(p *fakeTutorProvider) { p.explainErr = errors.New("overloaded") },
			act:      func(ctx context.Context, tutor *TutorUsecase) error { return tutor.AskWhy(ctx) },
			fallback: MessageExplainTrouble,
		},
		{
			name:     "next step",
			fail:     func(p *fakeTutorProvider) { p.nextErr = errors.New("overloaded") },
			act:      func(ctx context.Context, tutor *TutorUsecase) error { return tutor.NextStep(ctx) },
			fallback: MessageNextStepTrouble,
		},
		{
			name: "chat",
			fail: func(p *fakeTutorProvider) { p.chatErr = errors.New("overloaded") },
			act: func(ctx context.Context, tutor *TutorUsecase) error {
				return tutor.SendMessage(ctx, "is zero a solution?")
			},
			fallback: MessageChatTrouble,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor, provider := newTutorFixture()
			ctx := context.Background()
			if err := tutor.UploadProblem(ctx, problemImage()); err != nil {
				t.Fatalf("UploadProblem: %v", err)
			}
			tt.fail(provider)

			if err := tt.act(ctx, tutor); err == nil {
				t.Fatal("expected failure")
			}
			msgs := tutor.Messages()
			last := msgs[len(msgs)-1]
			if last.Sender != model.SenderBot || last.Text != tt.fallback {
				t.Errorf("last message = {%s %q}, want fallback %q", last.Sender, last.Text, tt.fallback)
			}
		})
	}
}

func TestTutorOpsRequireProblem(t *testing.T) {
	tutor, _ := newTutorFixture()
	ctx := context.Background()

	for name, op := range map[string]func() error{
		"AskWhy":      func() error { return tutor.AskWhy(ctx) },
		"NextStep":    func() error { return tutor.NextStep(ctx) },
		"SendMessage": func() error { return tutor.SendMessage(ctx, "hi") },
	} {
		err := op()
		if !errors.Is(err, ErrNoActiveProblem) {
			t.Errorf("%s err = %v, want %v", name, err, ErrNoActiveProblem)
		}
	}
}

func TestTutorNewProblemResets(t *testing.T) {
	tutor, _ := newTutorFixture()
	ctx := context.Background()
	if err := tutor.UploadProblem(ctx, problemImage()); err != nil {
		t.Fatalf("UploadProblem: %v", err)
	}
	if err := tutor.NextStep(ctx); err != nil {
		t.Fatalf("NextStep: %v", err)
	}
	tutor.ToggleChatMode()

	tutor.NewProblem()
	msgs := tutor.Messages()
	if len(msgs) != 1 || msgs[0].Text != MessageTutorGreeting {
		t.Errorf("messages = %v, want single greeting", msgs)
	}
	if len(tutor.History()) != 0 || tutor.Problem() != "" || tutor.LastStep() != "" {
		t.Error("problem context survived reset")
	}
	if tutor.ChatMode() {
		t.Error("chat mode survived reset")
	}
}

func TestTutorHistoryTrimming(t *testing.T) {
	tutor, provider := newTutorFixture()
	ctx := context.Background()
	tutor.TokenBudget = 10
	tutor.CountTokens = func(texts ...string) (int, error) {
		total := 0
		for _, text := range texts {
			total += len(text)
		}
		return total, nil
	}
	if err := tutor.UploadProblem(ctx, problemImage()); err != nil {
		t.Fatalf("UploadProblem: %v", err)
	}

	if err := tutor.SendMessage(ctx, "why?"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	fullLen := len(tutor.History()) - 2 // history before this call
	if len(provider.chatHistory) >= fullLen {
		t.Errorf("provider got %d turns, want fewer than the full %d", len(provider.chatHistory), fullLen)
	}
}
