package model

// Product is one entry of the landing-page catalog.
type Product struct {
	Name           string
	Description    string
	Icon           string
	Subdomain      string
	Port           int
	Enabled        bool
	AnimationDelay int
}
