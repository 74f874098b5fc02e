package model

// Suggestion is a planned study that has not been run yet.
type Suggestion struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Question   string    `json:"question" yaml:"question"`
	Squad      Squad     `json:"squad" yaml:"squad"`
	Researcher string    `json:"researcher" yaml:"researcher"`
	Countries  []Country `json:"countries" yaml:"countries"`
	Tags       []string  `json:"tags" yaml:"tags"`
	Month      string    `json:"month,omitempty" yaml:"month,omitempty"`
}

// Researchers is the built-in list of people who run studies.
var Researchers = []string{
	"Anita",
	"Alan Paschoal",
	"Daniel Kaihara",
	"Deleu",
	"Erika Martinez",
	"Fernanda Mujica",
	"Matheus Rahme",
	"Miriam Matus",
	"Yas",
}

// CountryOption is a selectable country in the settings.
type CountryOption struct {
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

// Settings is the process-wide configuration the user edits.
type Settings struct {
	Squads             []string        `json:"squads" yaml:"squads"`
	Countries          []CountryOption `json:"countries" yaml:"countries"`
	Researchers        []string        `json:"researchers" yaml:"researchers"`
	Methodologies      []string        `json:"methodologies" yaml:"methodologies"`
	GeminiAPIKey       string          `json:"geminiApiKey,omitempty" yaml:"geminiApiKey,omitempty"`
	GoogleClientID     string          `json:"googleClientId,omitempty" yaml:"googleClientId,omitempty"`
	GooglePickerAPIKey string          `json:"googlePickerApiKey,omitempty" yaml:"googlePickerApiKey,omitempty"`
}
