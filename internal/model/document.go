package model

// Field is a single key-value pair extracted from a document image.
type Field struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Section groups related fields under a title.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Document is the section/field tree extracted from an uploaded document
// image. All ids are unique strings within the document, by contract with
// the AI service. Mutations replace the whole document, never patch it.
type Document []Section
