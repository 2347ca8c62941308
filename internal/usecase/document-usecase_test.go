package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jleboube/AI-Toolkit/internal/model"
)

type fakeExtractor struct {
	extractDoc  model.Document
	extractErr  error
	modifyDoc   model.Document
	modifyErr   error
	modifyCalls []string
	lastInput   model.Document
}

func (f *fakeExtractor) ExtractDocument(_ context.Context, _ model.Image) (model.Document, error) {
	return f.extractDoc, f.extractErr
}

func (f *fakeExtractor) ModifyDocument(_ context.Context, doc model.Document, command string) (model.Document, error) {
	f.lastInput = doc
	f.modifyCalls = append(f.modifyCalls, command)
	if f.modifyErr != nil {
		return nil, f.modifyErr
	}
	return f.modifyDoc, nil
}

type fakeRasterizer struct {
	image model.Image
	err   error
	calls int
}

func (f *fakeRasterizer) RasterizeFirstPage(_ context.Context, _ []byte) (model.Image, error) {
	f.calls++
	return f.image, f.err
}

func sampleDocument() model.Document {
	return model.Document{
		{
			ID:    "sec-1",
			Title: "Personal Details",
			Fields: []model.Field{
				{ID: "f-1", Key: "Name", Value: "Ada Lovelace"},
				{ID: "f-2", Key: "Born", Value: "1815"},
			},
		},
	}
}

func TestDocumentIngest_Image(t *testing.T) {
	ext := &fakeExtractor{extractDoc: sampleDocument()}
	ras := &fakeRasterizer{}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: ras})

	if err := d.Ingest(context.Background(), []byte("img"), "image/png"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if ras.calls != 0 {
		t.Errorf("rasterizer called %d times for an image, want 0", ras.calls)
	}
	if !d.Parsed() {
		t.Fatal("document not parsed")
	}
	if d.Preview() == nil || d.Preview().MimeType != "image/png" {
		t.Errorf("preview = %v, want the uploaded image", d.Preview())
	}
	msgs := d.Messages()
	if len(msgs) != 1 || msgs[0].Text != MessageDocumentParsed {
		t.Errorf("messages = %v, want single parsed confirmation", msgs)
	}
}

func TestDocumentIngest_PDFGoesThroughRasterizer(t *testing.T) {
	ext := &fakeExtractor{extractDoc: sampleDocument()}
	ras := &fakeRasterizer{image: model.Image{MimeType: "image/png", Data: []byte("page1")}}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: ras})

	if err := d.Ingest(context.Background(), []byte("%PDF-1.7"), "application/pdf"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if ras.calls != 1 {
		t.Errorf("rasterizer called %d times, want 1", ras.calls)
	}
	if d.Preview() == nil || string(d.Preview().Data) != "page1" {
		t.Errorf("preview = %v, want the rendered first page", d.Preview())
	}
}

func TestDocumentIngest_ExtractionFailure(t *testing.T) {
	ext := &fakeExtractor{extractErr: errors.New("unreadable scan")}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: &fakeRasterizer{}})

	if err := d.Ingest(context.Background(), []byte("img"), "image/png"); err == nil {
		t.Fatal("expected ingest failure")
	}
	if d.Parsed() {
		t.Error("document marked parsed after failure")
	}
	if d.Preview() != nil {
		t.Error("preview kept after failed extraction")
	}
	msgs := d.Messages()
	if len(msgs) != 1 || msgs[0].Sender != model.SenderSystem {
		t.Fatalf("messages = %v, want single system error", msgs)
	}
	if msgs[0].Text != "Error: unreadable scan" {
		t.Errorf("error message = %q", msgs[0].Text)
	}
}

func TestDocumentApplyCommand_ReplacesWholeDocument(t *testing.T) {
	updated := model.Document{
		{ID: "sec-1", Title: "Personal Details", Fields: []model.Field{
			{ID: "f-1", Key: "Name", Value: "Ada King"},
		}},
	}
	ext := &fakeExtractor{extractDoc: sampleDocument(), modifyDoc: updated}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: &fakeRasterizer{}})
	ctx := context.Background()
	if err := d.Ingest(ctx, []byte("img"), "image/png"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := d.ApplyCommand(ctx, "rename her to Ada King"); err != nil {
		t.Fatalf("ApplyCommand: %v", err)
	}
	if !reflect.DeepEqual(d.Document(), updated) {
		t.Errorf("document = %v, want the returned structure verbatim", d.Document())
	}
	if !reflect.DeepEqual(ext.lastInput, sampleDocument()) {
		t.Errorf("modify input = %v, want the pre-command document", ext.lastInput)
	}
	msgs := d.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != model.SenderBot || last.Text != MessageDocumentUpdated {
		t.Errorf("last message = %v, want bot confirmation", last)
	}
}

func TestDocumentApplyCommand_NoOpRoundTrip(t *testing.T) {
	ext := &fakeExtractor{extractDoc: sampleDocument(), modifyDoc: sampleDocument()}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: &fakeRasterizer{}})
	ctx := context.Background()
	if err := d.Ingest(ctx, []byte("img"), "image/png"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := d.ApplyCommand(ctx, "change nothing"); err != nil {
		t.Fatalf("ApplyCommand: %v", err)
	}
	if !reflect.DeepEqual(d.Document(), sampleDocument()) {
		t.Errorf("document = %v, want untouched ids and values to survive", d.Document())
	}
}

func TestDocumentApplyCommand_FailureLeavesDocumentUntouched(t *testing.T) {
	ext := &fakeExtractor{extractDoc: sampleDocument(), modifyErr: errors.New("model overloaded")}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: &fakeRasterizer{}})
	ctx := context.Background()
	if err := d.Ingest(ctx, []byte("img"), "image/png"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	before := d.Document()

	if err := d.ApplyCommand(ctx, "delete everything"); err == nil {
		t.Fatal("expected command failure")
	}
	if !reflect.DeepEqual(d.Document(), before) {
		t.Error("document changed on failed command")
	}
	msgs := d.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != model.SenderBot || last.Text != "Sorry, I couldn't process that request. Error: model overloaded" {
		t.Errorf("last message = %v", last)
	}
}

func TestDocumentApplyCommand_BeforeIngest(t *testing.T) {
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: &fakeExtractor{}, Rasterizer: &fakeRasterizer{}})

	err := d.ApplyCommand(context.Background(), "add a field")
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("err = %v, want %v", err, ErrNoDocument)
	}
	if kind := model.KindOf(err); kind != model.KindValidation {
		t.Errorf("kind = %v, want %v", kind, model.KindValidation)
	}
}

func TestDocumentIngest_ResetsPriorSession(t *testing.T) {
	ext := &fakeExtractor{extractDoc: sampleDocument(), modifyDoc: sampleDocument()}
	d := NewDocumentUsecase(DocumentUsecaseDeps{Extractor: ext, Rasterizer: &fakeRasterizer{}})
	ctx := context.Background()
	if err := d.Ingest(ctx, []byte("one"), "image/png"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if err := d.ApplyCommand(ctx, "noop"); err != nil {
		t.Fatalf("ApplyCommand: %v", err)
	}

	if err := d.Ingest(ctx, []byte("two"), "image/png"); err != nil {
		t.Fatalf("second Ingest: %v", err)
	}
	if len(d.Messages()) != 1 {
		t.Errorf("messages = %d after re-ingest, want 1", len(d.Messages()))
	}
}
