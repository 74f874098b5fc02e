package model

// Input is the payload of a new study: everything but the generated fields.
type Input struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Date            string       `json:"date"`
	Country         Country      `json:"country"`
	Squad           *Squad       `json:"squad,omitempty"`
	Researcher      *string      `json:"researcher,omitempty"`
	Methodology     string       `json:"methodology"`
	Team            []string     `json:"team"`
	Tags            []string     `json:"tags"`
	KeyLearnings    []string     `json:"keyLearnings"`
	PresentationURL *string      `json:"presentationUrl,omitempty"`
	PPTFile         *Attachment  `json:"pptFile,omitempty"`
	PlanFile        *Attachment  `json:"planFile,omitempty"`
	PPTScreenshots  []string     `json:"pptScreenshots,omitempty"`
	UsefulLinks     []UsefulLink `json:"usefulLinks,omitempty"`
}

// InputFrom strips the generated fields off an existing record.
func InputFrom(r Research) Input {
	c := r.Clone()
	return Input{
		Title:           c.Title,
		Description:     c.Description,
		Date:            c.Date,
		Country:         c.Country,
		Squad:           c.Squad,
		Researcher:      c.Researcher,
		Methodology:     c.Methodology,
		Team:            c.Team,
		Tags:            c.Tags,
		KeyLearnings:    c.KeyLearnings,
		PresentationURL: c.PresentationURL,
		PPTFile:         c.PPTFile,
		PlanFile:        c.PlanFile,
		PPTScreenshots:  c.PPTScreenshots,
		UsefulLinks:     c.UsefulLinks,
	}
}

// ResearchFrom builds a record without id or creation time from in.
func ResearchFrom(in Input) Research {
	return Research{
		Title:           in.Title,
		Description:     in.Description,
		Date:            in.Date,
		Country:         in.Country,
		Squad:           in.Squad,
		Researcher:      in.Researcher,
		Methodology:     in.Methodology,
		Team:            in.Team,
		Tags:            in.Tags,
		KeyLearnings:    in.KeyLearnings,
		PresentationURL: in.PresentationURL,
		PPTFile:         in.PPTFile,
		PlanFile:        in.PlanFile,
		PPTScreenshots:  in.PPTScreenshots,
		UsefulLinks:     in.UsefulLinks,
	}.Clone()
}

// Patch is a partial update. Nil fields are left untouched; a non-nil
// pointer to an empty value clears an optional field.
type Patch struct {
	Title           *string       `json:"title,omitempty"`
	Description     *string       `json:"description,omitempty"`
	Date            *string       `json:"date,omitempty"`
	Country         *Country      `json:"country,omitempty"`
	Squad           *Squad        `json:"squad,omitempty"`
	Researcher      *string       `json:"researcher,omitempty"`
	Methodology     *string       `json:"methodology,omitempty"`
	Team            *[]string     `json:"team,omitempty"`
	Tags            *[]string     `json:"tags,omitempty"`
	KeyLearnings    *[]string     `json:"keyLearnings,omitempty"`
	PresentationURL *string       `json:"presentationUrl,omitempty"`
	PPTFile         *Attachment   `json:"pptFile,omitempty"`
	PlanFile        *Attachment   `json:"planFile,omitempty"`
	PPTScreenshots  *[]string     `json:"pptScreenshots,omitempty"`
	UsefulLinks     *[]UsefulLink `json:"usefulLinks,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply merges p onto r. ID and CreatedAt are never touched.
func (p Patch) Apply(r Research) Research {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Country != nil {
		r.Country = *p.Country
	}
	if p.Squad != nil {
		r.Squad = optional(*p.Squad)
	}
	if p.Researcher != nil {
		r.Researcher = optional(*p.Researcher)
	}
	if p.Methodology != nil {
		r.Methodology = *p.Methodology
	}
	if p.Team != nil {
		r.Team = cloneSlice(*p.Team)
	}
	if p.Tags != nil {
		r.Tags = cloneSlice(*p.Tags)
	}
	if p.KeyLearnings != nil {
		r.KeyLearnings = cloneSlice(*p.KeyLearnings)
	}
	if p.PresentationURL != nil {
		r.PresentationURL = optional(*p.PresentationURL)
	}
	if p.PPTFile != nil {
		r.PPTFile = optionalAttachment(*p.PPTFile)
	}
	if p.PlanFile != nil {
		r.PlanFile = optionalAttachment(*p.PlanFile)
	}
	if p.PPTScreenshots != nil {
		r.PPTScreenshots = cloneSlice(*p.PPTScreenshots)
	}
	if p.UsefulLinks != nil {
		r.UsefulLinks = cloneSlice(*p.UsefulLinks)
	}
	return r
}

// ApplyInput merges p onto an unsaved submission.
func (p Patch) ApplyInput(in Input) Input {
	return InputFrom(p.Apply(ResearchFrom(in)))
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func optionalAttachment(a Attachment) *Attachment {
	if a.Name == "" {
		return nil
	}
	return &a
}
