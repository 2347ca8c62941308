package model

// Image is an inline image payload as exchanged with the AI service.
type Image struct {
	MimeType string
	Data     []byte
}
