package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

const (
	MessageDocumentParsed     = "Document parsed successfully. You can now use the chat to modify the data structure."
	MessageDocumentUpdated    = "I've updated the data structure based on your request."
	MessageIngestFailedFormat = "Error: %s"
	MessageDocModifyFailedFmt = "Sorry, I couldn't process that request. Error: %s"
)

const mimeTypePDF = "application/pdf"

var ErrNoDocument = errors.New("no document ingested yet")

type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, image model.Image) (model.Document, error)
	ModifyDocument(ctx context.Context, doc model.Document, command string) (model.Document, error)
}

type Rasterizer interface {
	RasterizeFirstPage(ctx context.Context, document []byte) (model.Image, error)
}

type DocumentUsecaseDeps struct {
	Extractor  DocumentExtractor
	Rasterizer Rasterizer
}

// DocumentUsecase holds one ingested document and a chat transcript of the
// commands applied to it. Every successful command replaces the whole
// document with the structure the AI returned; there are no partial
// updates. The AI is trusted to keep untouched ids intact and to mint
// unique ids for created items.
type DocumentUsecase struct {
	DocumentUsecaseDeps

	preview   *model.Image
	document  model.Document
	parsed    bool
	messages  []model.ChatMessage
	lastError string
}

func NewDocumentUsecase(deps DocumentUsecaseDeps) *DocumentUsecase {
	return &DocumentUsecase{
		DocumentUsecaseDeps: deps,
	}
}

// Ingest accepts an image or a PDF; a PDF is first rendered to a
// first-page image by the external rasterizer. On extraction failure the
// preview is cleared and a system error message is appended.
func (d *DocumentUsecase) Ingest(ctx context.Context, data []byte, mimeType string) error {
	d.document = nil
	d.parsed = false
	d.messages = nil
	d.lastError = ""

	image := model.Image{MimeType: mimeType, Data: data}
	if mimeType == mimeTypePDF {
		rendered, err := d.Rasterizer.RasterizeFirstPage(ctx, data)
		if err != nil {
			d.failIngest(err)
			return fmt.Errorf("failed to rasterize document: %w", err)
		}
		image = rendered
	}
	d.preview = &image

	doc, err := d.Extractor.ExtractDocument(ctx, image)
	if err != nil {
		d.failIngest(err)
		return fmt.Errorf("failed to ingest document: %w", err)
	}

	d.document = doc
	d.parsed = true
	d.addMessage(model.SenderSystem, MessageDocumentParsed)
	return nil
}

func (d *DocumentUsecase) failIngest(err error) {
	d.lastError = err.Error()
	d.addMessage(model.SenderSystem, fmt.Sprintf(MessageIngestFailedFormat, err.Error()))
	d.preview = nil
}

// ApplyCommand sends the whole current document plus the command to the AI
// and replaces the document with whatever comes back. On failure the
// document is left untouched and a failure message is appended.
func (d *DocumentUsecase) ApplyCommand(ctx context.Context, command string) error {
	if !d.parsed {
		return model.ValidationErr(ErrNoDocument)
	}

	d.addMessage(model.SenderUser, command)
	d.lastError = ""

	updated, err := d.Extractor.ModifyDocument(ctx, d.document, command)
	if err != nil {
		d.lastError = err.Error()
		d.addMessage(model.SenderBot, fmt.Sprintf(MessageDocModifyFailedFmt, err.Error()))
		return fmt.Errorf("failed to apply command: %w", err)
	}

	d.document = updated
	d.addMessage(model.SenderBot, MessageDocumentUpdated)
	return nil
}

func (d *DocumentUsecase) addMessage(sender model.Sender, text string) {
	d.messages = append(
		d.messages, model.ChatMessage{
			ID:     uuid.New(),
			Sender: sender,
			Text:   text,
		},
	)
}

func (d *DocumentUsecase) Document() model.Document {
	return d.document
}

func (d *DocumentUsecase) Parsed() bool {
	return d.parsed
}

func (d *DocumentUsecase) Preview() *model.Image {
	return d.preview
}

func (d *DocumentUsecase) Messages() []model.ChatMessage {
	return d.messages
}

func (d *DocumentUsecase) Err() string {
	return d.lastError
}
