package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const (
	MessageTutorGreeting     = "Hello! I am your Socratic math tutor. Please upload a photo of a calculus or algebra problem to begin."
	MessageProblemUpload     = "Here's my problem:"
	MessageAnalyzingImage    = "Analyzing image..."
	MessageProblemFoundFmt   = "Problem identified: %s"
	MessageThinkingFirstStep = "Thinking about the first step..."
	MessageAskWhy            = "Why did we do that?"
	MessageExplaining        = "Explaining the concept..."
	MessageAskNextStep       = "What's the next step?"
	MessageThinkingNextStep  = "Thinking about the next step..."
	MessageThinking          = "Thinking..."

	MessageImageTrouble    = "I'm sorry, I had trouble reading that image. Please try another one."
	MessageExplainTrouble  = "I seem to be having trouble explaining that right now. Could we try the next step instead?"
	MessageNextStepTrouble = "I'm not sure what the next step is. Perhaps we could try explaining the last one again?"
	MessageChatTrouble     = "I'm having trouble with that question right now. Let's get back to the steps, shall we?"
)

var ErrNoActiveProblem = errors.New("no active problem")

type TutorProvider interface {
	ExtractProblem(ctx context.Context, image model.Image) (string, error)
	FirstStep(ctx context.Context, problem string) (string, error)
	ExplainStep(ctx context.Context, problem, lastStep string, history []model.Turn) (string, error)
	NextStep(ctx context.Context, problem string, history []model.Turn) (string, error)
	ChatResponse(ctx context.Context, problem string, history []model.Turn, message string) (string, error)
}

// TokenCountFunc reports the token count of the given texts. Optional; when
// absent the model-visible history is passed untrimmed.
type TokenCountFunc func(texts ...string) (int, error)

type TutorUsecaseDeps struct {
	Provider    TutorProvider
	CountTokens TokenCountFunc
	// TokenBudget caps the model-visible history; entries fall off the
	// front once the budget is exceeded. Zero means 3500.
	TokenBudget int
}

// TutorUsecase keeps the Socratic dialogue: an append-only transcript plus
// a parallel model-visible history of user/model turns. System status
// messages never enter the history. Entries are appended strictly in call
// order and never reordered or deduplicated.
type TutorUsecase struct {
	TutorUsecaseDeps

	messages []model.ChatMessage
	history  []model.Turn
	problem  string
	lastStep string
	chatMode bool
}

func NewTutorUsecase(deps TutorUsecaseDeps) *TutorUsecase {
	if deps.TokenBudget <= 0 {
		deps.TokenBudget = 3500
	}
	t := &TutorUsecase{
		TutorUsecaseDeps: deps,
	}
	t.seedGreeting()
	return t
}

func (t *TutorUsecase) seedGreeting() {
	t.messages = []model.ChatMessage{
		{
			ID:     uuid.New(),
			Sender: model.SenderBot,
			Text:   MessageTutorGreeting,
		},
	}
}

// UploadProblem clears the transcript and runs two sequential AI calls:
// problem extraction, then the first step. A problem extracted by a
// successful first call survives a failed second one; either failure
// appends one generic error message.
func (t *TutorUsecase) UploadProblem(ctx context.Context, image model.Image) error {
	t.chatMode = false
	t.messages = nil
	t.addImageMessage(model.SenderUser, MessageProblemUpload, image)
	t.addMessage(model.SenderSystem, MessageAnalyzingImage)

	problem, err := t.Provider.ExtractProblem(ctx, image)
	if err != nil {
		t.addMessage(model.SenderBot, MessageImageTrouble)
		return fmt.Errorf("failed to extract problem: %w", err)
	}
	t.problem = problem
	t.addMessage(model.SenderSystem, fmt.Sprintf(MessageProblemFoundFmt, problem))

	t.addMessage(model.SenderSystem, MessageThinkingFirstStep)
	firstStep, err := t.Provider.FirstStep(ctx, problem)
	if err != nil {
		t.addMessage(model.SenderBot, MessageImageTrouble)
		return fmt.Errorf("failed to get first step: %w", err)
	}
	t.addMessage(model.SenderBot, firstStep)
	t.lastStep = firstStep
	return nil
}

// AskWhy asks for the concept behind the last suggested step.
func (t *TutorUsecase) AskWhy(ctx context.Context) error {
	if t.problem == "" || t.lastStep == "" {
		return model.ValidationErr(ErrNoActiveProblem)
	}
	history := t.trimmedHistory()
	t.addMessage(model.SenderUser, MessageAskWhy)
	t.addMessage(model.SenderSystem, MessageExplaining)

	explanation, err := t.Provider.ExplainStep(ctx, t.problem, t.lastStep, history)
	if err != nil {
		t.addMessage(model.SenderBot, MessageExplainTrouble)
		return fmt.Errorf("failed to explain step: %w", err)
	}
	t.addMessage(model.SenderBot, explanation)
	return nil
}

// NextStep asks for the next step of the solution.
func (t *TutorUsecase) NextStep(ctx context.Context) error {
	if t.problem == "" {
		return model.ValidationErr(ErrNoActiveProblem)
	}
	history := t.trimmedHistory()
	t.addMessage(model.SenderUser, MessageAskNextStep)
	t.addMessage(model.SenderSystem, MessageThinkingNextStep)

	nextStep, err := t.Provider.NextStep(ctx, t.problem, history)
	if err != nil {
		t.addMessage(model.SenderBot, MessageNextStepTrouble)
		return fmt.Errorf("failed to get next step: %w", err)
	}
	t.addMessage(model.SenderBot, nextStep)
	t.lastStep = nextStep
	return nil
}

// SendMessage relays a free-form student question.
func (t *TutorUsecase) SendMessage(ctx context.Context, message string) error {
	if t.problem == "" {
		return model.ValidationErr(ErrNoActiveProblem)
	}
	history := t.trimmedHistory()
	t.addMessage(model.SenderUser, message)
	t.addMessage(model.SenderSystem, MessageThinking)

	response, err := t.Provider.ChatResponse(ctx, t.problem, history, message)
	if err != nil {
		t.addMessage(model.SenderBot, MessageChatTrouble)
		return fmt.Errorf("failed to get chat response: %w", err)
	}
	t.addMessage(model.SenderBot, response)
	return nil
}

// NewProblem resets the transcript to the single greeting and clears the
// problem context.
func (t *TutorUsecase) NewProblem() {
	t.seedGreeting()
	t.history = nil
	t.problem = ""
	t.lastStep = ""
	t.chatMode = false
}

// ToggleChatMode flips the free-form input flag. UI state only.
func (t *TutorUsecase) ToggleChatMode() {
	t.chatMode = !t.chatMode
}

func (t *TutorUsecase) ChatMode() bool {
	return t.chatMode
}

func (t *TutorUsecase) Messages() []model.ChatMessage {
	return t.messages
}

func (t *TutorUsecase) History() []model.Turn {
	return t.history
}

func (t *TutorUsecase) Problem() string {
	return t.problem
}

func (t *TutorUsecase) LastStep() string {
	return t.lastStep
}

func (t *TutorUsecase) addMessage(sender model.Sender, text string) {
	t.addImageMessage(sender, text, model.Image{})
}

func (t *TutorUsecase) addImageMessage(sender model.Sender, text string, image model.Image) {
	msg := model.ChatMessage{
		ID:     uuid.New(),
		Sender: sender,
		Text:   text,
	}
	if len(image.Data) > 0 {
		msg.Image = &image
	}
	t.messages = append(t.messages, msg)

	if sender == model.SenderSystem {
		return
	}
	role := model.RoleModel
	if sender == model.SenderUser {
		role = model.RoleUser
	}
	t.history = append(t.history, model.Turn{Role: role, Text: text})
}

// trimmedHistory returns the history to hand to the AI, dropping the
// oldest turns while the token budget is exceeded. Taken before the
// current user message is appended, so a call never sees its own prompt
// twice.
func (t *TutorUsecase) trimmedHistory() []model.Turn {
	history := make([]model.Turn, len(t.history))
	copy(history, t.history)
	if t.CountTokens == nil {
		return history
	}
	for len(history) > 0 {
		texts := make([]string, 0, len(history))
		for _, turn := range history {
			texts = append(texts, turn.Text)
		}
		count, err := t.CountTokens(texts...)
		if err != nil {
			log.Printf("failed to count tokens: %v\n", err)
			break
		}
		if count < t.TokenBudget {
			break
		}
		history = history[1:]
	}
	return history
}
