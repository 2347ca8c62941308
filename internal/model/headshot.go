package model

// Phase is the current step of the headshot demo's state machine.
type Phase string

const (
	PhaseInitial       = Phase("initial")
	PhaseImageUploaded = Phase("image_uploaded")
	PhaseGenerating    = Phase("generating")
	PhaseResultReady   = Phase("result_ready")
	PhaseEditing       = Phase("editing")
)

// HeadshotStyle is an immutable style descriptor from the fixed catalog.
type HeadshotStyle struct {
	ID          string
	Name        string
	Description string
	Prompt      string
}

// HeadshotStyles is the fixed style catalog. Read-only.
var HeadshotStyles = []HeadshotStyle{
	{
		ID:          "corporate_grey",
		Name:        "Corporate Grey",
		Description: "A classic professional look with a neutral grey backdrop.",
		Prompt:      "A professional corporate headshot of the person in the image. The background should be a clean, solid, slightly out-of-focus medium grey. The lighting should be soft and flattering, creating a professional and trustworthy appearance. The subject should be wearing professional business attire.",
	},
	{
		ID:          "tech_office",
		Name:        "Modern Tech Office",
		Description: "A contemporary headshot set in a modern office environment.",
		Prompt:      "A professional headshot of the person in the image, taken in a modern tech office environment. The background should be a bright, stylish office with elements like glass walls, modern furniture, and blurred-out computer screens. The lighting should be natural and bright. The subject should be wearing smart casual business attire.",
	},
	{
		ID:          "outdoor_natural",
		Name:        "Outdoor Natural Light",
		Description: "A friendly and approachable headshot with an outdoor, natural setting.",
		Prompt:      "A professional headshot of the person in the image, taken outdoors with beautiful natural light. The background should be a pleasant, out-of-focus natural scene, like a park or green space. The lighting should be soft, golden-hour style. The subject should appear approachable and friendly in casual or business-casual attire.",
	},
	{
		ID:          "black_white",
		Name:        "Classic Black & White",
		Description: "A timeless and dramatic black and white studio portrait.",
		Prompt:      "A dramatic and classic black and white studio headshot of the person in the image. Use strong, artistic lighting (like Rembrandt or split lighting) to create depth and character. The background should be dark and non-distracting. The focus should be on the subject's expression.",
	},
}

// StyleByID looks a style up in the catalog.
func StyleByID(id string) (HeadshotStyle, bool) {
	for _, style := range HeadshotStyles {
		if style.ID == id {
			return style, true
		}
	}
	return HeadshotStyle{}, false
}
