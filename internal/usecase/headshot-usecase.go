package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const (
	MessageGenerateFailed = "Failed to generate headshot. Please try again."
	MessageEditFailed     = "Failed to edit image. Please try again."
)

var (
	ErrNoUploadedImage  = errors.New("no uploaded image")
	ErrNoStyleSelected  = errors.New("no style selected")
	ErrNoGeneratedImage = errors.New("no generated image to edit")
	ErrBusy             = errors.New("another AI call is in flight")
)

type ImageGenerator interface {
	GenerateHeadshot(ctx context.Context, selfie model.Image, stylePrompt string) (model.Image, error)
	EditImage(ctx context.Context, image model.Image, editPrompt string) (model.Image, error)
}

type HeadshotUsecaseDeps struct {
	Generator ImageGenerator
}

// HeadshotUsecase drives the generate/edit/regenerate flow:
//
//	initial -> image_uploaded -> generating -> result_ready <-> editing
//
// result_ready re-enters generating when a different style is selected.
// Only one AI call is ever in flight; Generate and Edit reject re-entry
// while busy.
type HeadshotUsecase struct {
	HeadshotUsecaseDeps

	phase          model.Phase
	uploadedImage  *model.Image
	selectedStyle  *model.HeadshotStyle
	activeStyle    *model.HeadshotStyle
	generatedImage *model.Image
	previousImage  *model.Image
	lastError      string
}

func NewHeadshotUsecase(deps HeadshotUsecaseDeps) *HeadshotUsecase {
	return &HeadshotUsecase{
		HeadshotUsecaseDeps: deps,
		phase:               model.PhaseInitial,
	}
}

// Upload stores the selfie, clears any prior result and error, and seeds
// the default style selection.
func (h *HeadshotUsecase) Upload(image model.Image) error {
	if h.busy() {
		return ErrBusy
	}
	h.uploadedImage = &image
	h.phase = model.PhaseImageUploaded
	h.lastError = ""
	h.generatedImage = nil
	h.previousImage = nil
	h.activeStyle = nil
	defaultStyle := model.HeadshotStyles[0]
	h.selectedStyle = &defaultStyle
	return nil
}

// SelectStyle records the selection. While a result is on screen, selecting
// a style different from the one that produced it starts exactly one
// regeneration; re-selecting the active style does nothing. Identity is
// compared by style id, so the trigger cannot re-fire for the same
// selection.
func (h *HeadshotUsecase) SelectStyle(ctx context.Context, style model.HeadshotStyle) error {
	if h.busy() {
		return ErrBusy
	}
	h.selectedStyle = &style
	if h.phase == model.PhaseResultReady && h.activeStyle != nil && style.ID != h.activeStyle.ID {
		return h.Generate(ctx)
	}
	return nil
}

// Generate runs one styled generation. On failure the machine rolls back to
// the last known-good phase: a prior result is restored together with the
// style that produced it, otherwise the flow returns to image_uploaded. The
// before/after snapshot is only kept when regeneration succeeds.
func (h *HeadshotUsecase) Generate(ctx context.Context) error {
	if h.busy() {
		return ErrBusy
	}
	if h.uploadedImage == nil {
		return model.ValidationErr(ErrNoUploadedImage)
	}
	if h.selectedStyle == nil {
		return model.ValidationErr(ErrNoStyleSelected)
	}

	if h.phase == model.PhaseResultReady && h.generatedImage != nil {
		h.previousImage = h.generatedImage
	} else {
		h.previousImage = nil
	}
	previousActive := h.activeStyle

	h.phase = model.PhaseGenerating
	h.activeStyle = h.selectedStyle
	h.lastError = ""

	result, err := h.Generator.GenerateHeadshot(ctx, *h.uploadedImage, h.selectedStyle.Prompt)
	if err != nil {
		h.lastError = MessageGenerateFailed
		h.previousImage = nil
		if h.generatedImage != nil {
			h.phase = model.PhaseResultReady
			h.selectedStyle = previousActive
			h.activeStyle = previousActive
		} else {
			h.phase = model.PhaseImageUploaded
			h.activeStyle = nil
		}
		return fmt.Errorf("failed to generate headshot: %w", err)
	}

	h.generatedImage = &result
	h.phase = model.PhaseResultReady
	return nil
}

// Edit applies a free-form edit to the current result. An edit starts a new
// base image, so the before/after snapshot is invalidated up front. A
// failed edit keeps the current image and returns to result_ready.
func (h *HeadshotUsecase) Edit(ctx context.Context, editPrompt string) error {
	if h.busy() {
		return ErrBusy
	}
	if h.generatedImage == nil {
		return model.ValidationErr(ErrNoGeneratedImage)
	}

	h.phase = model.PhaseEditing
	h.lastError = ""
	h.previousImage = nil

	result, err := h.Generator.EditImage(ctx, *h.generatedImage, editPrompt)
	if err != nil {
		h.lastError = MessageEditFailed
		h.phase = model.PhaseResultReady
		return fmt.Errorf("failed to edit image: %w", err)
	}

	h.generatedImage = &result
	h.phase = model.PhaseResultReady
	return nil
}

// Reset returns the machine to its initial state unconditionally.
func (h *HeadshotUsecase) Reset() {
	h.phase = model.PhaseInitial
	h.uploadedImage = nil
	h.selectedStyle = nil
	h.activeStyle = nil
	h.generatedImage = nil
	h.previousImage = nil
	h.lastError = ""
}

func (h *HeadshotUsecase) busy() bool {
	return h.phase == model.PhaseGenerating || h.phase == model.PhaseEditing
}

func (h *HeadshotUsecase) Phase() model.Phase {
	return h.phase
}

func (h *HeadshotUsecase) UploadedImage() *model.Image {
	return h.uploadedImage
}

func (h *HeadshotUsecase) GeneratedImage() *model.Image {
	return h.generatedImage
}

// PreviousImage is the pre-regeneration result kept for before/after
// comparison, or nil when no comparison is meaningful.
func (h *HeadshotUsecase) PreviousImage() *model.Image {
	return h.previousImage
}

func (h *HeadshotUsecase) SelectedStyle() *model.HeadshotStyle {
	return h.selectedStyle
}

// ActiveStyle is the style that produced the current result.
func (h *HeadshotUsecase) ActiveStyle() *model.HeadshotStyle {
	return h.activeStyle
}

// Err is the user-facing message of the last failure, empty when the last
// operation succeeded.
func (h *HeadshotUsecase) Err() string {
	return h.lastError
}
