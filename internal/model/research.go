// Package model defines the core research catalog data types.
package model

import "time"

// Country is where a study was run.
type Country string

const (
	CountryBrasil   Country = "brasil"
	CountryMexico   Country = "mexico"
	CountryUSA      Country = "usa"
	CountryColombia Country = "colombia"
	CountryGlobal   Country = "global"
)

// Countries lists every country in display order.
var Countries = []Country{CountryBrasil, CountryMexico, CountryUSA, CountryColombia, CountryGlobal}

// CountryLabels are the display names of each country.
var CountryLabels = map[Country]string{
	CountryBrasil:   "Brazil",
	CountryMexico:   "Mexico",
	CountryUSA:      "USA",
	CountryColombia: "Colombia",
	CountryGlobal:   "Global",
}

// CountryEmoji are the flags shown next to each country.
var CountryEmoji = map[Country]string{
	CountryBrasil:   "🇧🇷",
	CountryMexico:   "🇲🇽",
	CountryUSA:      "🇺🇸",
	CountryColombia: "🇨🇴",
	CountryGlobal:   "🌎",
}

// Valid reports whether c is a known country.
func (c Country) Valid() bool {
	_, ok := CountryLabels[c]
	return ok
}

// Label returns the display name, or the raw value for unknown countries.
func (c Country) Label() string {
	if l, ok := CountryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Squad is the organizational team a study belongs to.
type Squad string

const (
	SquadMoneyIn           Squad = "money-in"
	SquadMBAccountXP       Squad = "mb-account-xp"
	SquadPaymentsAssistant Squad = "payments-assistant"
	SquadTroy              Squad = "troy"
	SquadTout              Squad = "tout"
	SquadCrossGBA          Squad = "cross-gba"
	SquadPaymentsCoreInfra Squad = "payments-core-infra"
	SquadExternal          Squad = "external"
	SquadOther             Squad = "other"
)

// Squads lists every squad in display order.
var Squads = []Squad{
	SquadMoneyIn, SquadMBAccountXP, SquadPaymentsAssistant, SquadTroy, SquadTout,
	SquadCrossGBA, SquadPaymentsCoreInfra, SquadExternal, SquadOther,
}

// SquadLabels are the display names of each squad.
var SquadLabels = map[Squad]string{
	SquadMoneyIn:           "Money In",
	SquadMBAccountXP:       "MB & Account XP",
	SquadPaymentsAssistant: "Payments Assistant",
	SquadTroy:              "Troy (GBA Factory)",
	SquadTout:              "TOUT",
	SquadCrossGBA:          "Cross GBA",
	SquadPaymentsCoreInfra: "Payments & Core Infra",
	SquadExternal:          "External",
	SquadOther:             "Other",
}

// ExternalSquads hold research that was not produced by an internal squad.
var ExternalSquads = map[Squad]bool{
	SquadExternal: true,
	SquadOther:    true,
}

// Valid reports whether s is a known squad.
func (s Squad) Valid() bool {
	_, ok := SquadLabels[s]
	return ok
}

// Label returns the display name, or the raw value for unknown squads.
func (s Squad) Label() string {
	if l, ok := SquadLabels[s]; ok {
		return l
	}
	return string(s)
}

// External reports whether s is one of the catch-all external squads.
func (s Squad) External() bool {
	return ExternalSquads[s]
}

// SquadPtr is a convenience for optional squad fields.
func SquadPtr(s Squad) *Squad { return &s }

// StringPtr is a convenience for optional string fields.
func StringPtr(s string) *string { return &s }

// MaxScreenshots is the number of embedded images a study can carry.
const MaxScreenshots = 3

// DateLayout is the calendar date format of Research.Date.
const DateLayout = "2006-01-02"

// Attachment describes an uploaded file. Size is in megabytes.
type Attachment struct {
	Name string  `json:"name" yaml:"name"`
	Size float64 `json:"size" yaml:"size"`
	URL  string  `json:"url,omitempty" yaml:"url,omitempty"`
}

// UsefulLink is a named external reference.
type UsefulLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Research is one completed study.
type Research struct {
	ID              string       `json:"id" yaml:"id"`
	Title           string       `json:"title" yaml:"title"`
	Description     string       `json:"description" yaml:"description"`
	Date            string       `json:"date" yaml:"date"`
	Country         Country      `json:"country" yaml:"country"`
	Squad           *Squad       `json:"squad,omitempty" yaml:"squad,omitempty"`
	Researcher      *string      `json:"researcher,omitempty" yaml:"researcher,omitempty"`
	Methodology     string       `json:"methodology" yaml:"methodology"`
	Team            []string     `json:"team" yaml:"team"`
	Tags            []string     `json:"tags" yaml:"tags"`
	KeyLearnings    []string     `json:"keyLearnings" yaml:"keyLearnings"`
	PresentationURL *string      `json:"presentationUrl,omitempty" yaml:"presentationUrl,omitempty"`
	PPTFile         *Attachment  `json:"pptFile,omitempty" yaml:"pptFile,omitempty"`
	PlanFile        *Attachment  `json:"planFile,omitempty" yaml:"planFile,omitempty"`
	PPTScreenshots  []string     `json:"pptScreenshots,omitempty" yaml:"pptScreenshots,omitempty"`
	UsefulLinks     []UsefulLink `json:"usefulLinks,omitempty" yaml:"usefulLinks,omitempty"`
	CreatedAt       time.Time    `json:"createdAt" yaml:"createdAt"`
}

// SquadLabel returns the label of the record's squad, or "" when unset.
func (r Research) SquadLabel() string {
	if r.Squad == nil {
		return ""
	}
	return r.Squad.Label()
}

// IsExternal reports whether the record belongs to an external squad.
func (r Research) IsExternal() bool {
	return r.Squad != nil && r.Squad.External()
}

// Clone returns a deep copy so callers cannot reach the owner's slices.
func (r Research) Clone() Research {
	c := r
	c.Squad = clonePtr(r.Squad)
	c.Researcher = clonePtr(r.Researcher)
	c.PresentationURL = clonePtr(r.PresentationURL)
	c.PPTFile = clonePtr(r.PPTFile)
	c.PlanFile = clonePtr(r.PlanFile)
	c.Team = cloneSlice(r.Team)
	c.Tags = cloneSlice(r.Tags)
	c.KeyLearnings = cloneSlice(r.KeyLearnings)
	c.PPTScreenshots = cloneSlice(r.PPTScreenshots)
	c.UsefulLinks = cloneSlice(r.UsefulLinks)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
