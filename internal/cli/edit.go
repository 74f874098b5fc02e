package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a study",
		Long:  "Edit a study. Only the flags given are changed; pass an empty value to clear an optional field.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	addRecordFlags(cmd)
	cmd.Flags().String("file", "", "Report (.pdf, .txt, .md) to auto-extract fields from")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	id := args[0]
	file, _ := cmd.Flags().GetString("file")

	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	rec, found := a.repo.Lookup(id)
	if !found {
		exitErr("edit", fmt.Errorf("%w: %s", store.ErrNotFound, id))
	}

	p := readPatch(cmd)
	if file != "" {
		res, err := a.autoFill(cmd.Context(), file, p.ApplyInput(model.InputFrom(rec)))
		if err != nil {
			exitErr("read "+file, err)
		}
		p = fullPatch(res.Input)
		if res.Warning != "" {
			fmt.Fprintln(os.Stderr, "warning:", res.Warning)
		}
	}
	if p.Empty() {
		exitErr("edit", fmt.Errorf("nothing to change"))
	}
	if err := store.ValidatePatch(rec, p); err != nil {
		exitErr("edit", err)
	}

	a.repo.Update(cmd.Context(), id, p)
	updated, _ := a.repo.Lookup(id)
	out(updated, printRecord(updated))
}

// readPatch turns the record flags the user actually set into a Patch.
func readPatch(cmd *cobra.Command) model.Patch {
	var p model.Patch
	fl := cmd.Flags()
	str := func(name string) *string {
		if !fl.Changed(name) {
			return nil
		}
		v, _ := fl.GetString(name)
		return &v
	}
	list := func(name string) *[]string {
		if !fl.Changed(name) {
			return nil
		}
		v, _ := fl.GetString(name)
		l := splitList(v)
		return &l
	}
	array := func(name string) *[]string {
		if !fl.Changed(name) {
			return nil
		}
		v, _ := fl.GetStringArray(name)
		return &v
	}

	p.Title = str("title")
	p.Description = str("description")
	p.Date = str("date")
	p.Researcher = str("researcher")
	p.Methodology = str("methodology")
	p.PresentationURL = str("presentation-url")
	p.Team = list("team")
	p.Tags = list("tags")
	p.KeyLearnings = array("learning")

	if v := str("country"); v != nil {
		c, err := parseCountry(*v)
		if err != nil {
			exitErr("country", err)
		}
		p.Country = &c
	}
	if v := str("squad"); v != nil {
		sq, err := parseSquad(*v)
		if err != nil {
			exitErr("squad", err)
		}
		p.Squad = &sq
	}
	if v := array("screenshot"); v != nil {
		shots, err := screenshots(*v)
		if err != nil {
			exitErr("screenshot", err)
		}
		p.PPTScreenshots = &shots
	}
	if v := array("link"); v != nil {
		links, err := parseLinks(*v)
		if err != nil {
			exitErr("link", err)
		}
		p.UsefulLinks = &links
	}
	for name, dst := range map[string]**model.Attachment{"ppt-file": &p.PPTFile, "plan-file": &p.PlanFile} {
		v := str(name)
		if v == nil {
			continue
		}
		att, err := attachment(strings.TrimSpace(*v))
		if err != nil {
			exitErr(name, err)
		}
		if att == nil {
			att = &model.Attachment{}
		}
		*dst = att
	}
	return p
}

// fullPatch sets every field of in.
func fullPatch(in model.Input) model.Patch {
	p := model.Patch{
		Title:          &in.Title,
		Description:    &in.Description,
		Date:           &in.Date,
		Country:        &in.Country,
		Methodology:    &in.Methodology,
		Team:           &in.Team,
		Tags:           &in.Tags,
		KeyLearnings:   &in.KeyLearnings,
		PPTScreenshots: &in.PPTScreenshots,
		UsefulLinks:    &in.UsefulLinks,
	}
	empty := ""
	p.Squad = new(model.Squad)
	if in.Squad != nil {
		p.Squad = in.Squad
	}
	p.Researcher, p.PresentationURL = &empty, &empty
	if in.Researcher != nil {
		p.Researcher = in.Researcher
	}
	if in.PresentationURL != nil {
		p.PresentationURL = in.PresentationURL
	}
	p.PPTFile, p.PlanFile = &model.Attachment{}, &model.Attachment{}
	if in.PPTFile != nil {
		p.PPTFile = in.PPTFile
	}
	if in.PlanFile != nil {
		p.PlanFile = in.PlanFile
	}
	return p
}
