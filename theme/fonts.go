package theme

// Font pairing presets
const (
	PairingModern  = "modern"
	PairingElegant = "elegant"
	PairingPlayful = "playful"
)

type Pairing struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Weights []int  `json:"weights"`
}

// FontPairings -> Google Font pairings yang tersedia di settings editor
var FontPairings = map[string]Pairing{
	PairingModern: {
		Heading: "Inter",
		Body:    "Inter",
		Weights: []int{400, 500, 600, 700},
	},
	PairingElegant: {
		Heading: "Playfair Display",
		Body:    "Lato",
		Weights: []int{400, 500, 600, 700},
	},
	PairingPlayful: {
		Heading: "Poppins",
		Body:    "Nunito",
		Weights: []int{400, 500, 600, 700},
	},
}
