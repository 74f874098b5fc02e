package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/model"
	"github.com/rcliao/research-hub/internal/query"
)

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseCountry(s string) (model.Country, error) {
	c := model.Country(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("unknown country %q", s)
}

func parseSquad(s string) (model.Squad, error) {
	sq := model.Squad(strings.ToLower(strings.TrimSpace(s)))
	if sq == "" || sq.Valid() {
		return sq, nil
	}
	return "", fmt.Errorf("unknown squad %q", s)
}

// parseLinks reads name=url pairs.
func parseLinks(pairs []string) ([]model.UsefulLink, error) {
	links := make([]model.UsefulLink, 0, len(pairs))
	for _, p := range pairs {
		name, url, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("link %q: want name=url", p)
		}
		links = append(links, model.UsefulLink{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
	}
	return links, nil
}

// attachment describes a local file. Size is reported in megabytes.
func attachment(path string) (*model.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	mb := float64(fi.Size()) / (1024 * 1024)
	return &model.Attachment{Name: fi.Name(), Size: float64(int(mb*10+0.5)) / 10}, nil
}

// screenshots embeds each image file as a data URL. Blank paths are skipped.
func screenshots(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		mime := http.DetectContentType(b)
		if !strings.HasPrefix(mime, "image/") {
			return nil, fmt.Errorf("%s: not an image (%s)", p, mime)
		}
		out = append(out, "data:"+mime+";base64,"+base64.StdEncoding.EncodeToString(b))
	}
	return out, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("tab", "all", "Tab: all, internal or external")
	cmd.Flags().StringP("country", "c", "", "Filter by country")
	cmd.Flags().StringP("squad", "s", "", "Filter by squad")
	cmd.Flags().StringP("tag", "t", "", "Filter by tag")
}

func readFilter(cmd *cobra.Command) query.Filter {
	tabStr, _ := cmd.Flags().GetString("tab")
	countryStr, _ := cmd.Flags().GetString("country")
	squadStr, _ := cmd.Flags().GetString("squad")
	tag, _ := cmd.Flags().GetString("tag")

	tab, err := query.ParseTab(tabStr)
	if err != nil {
		exitErr("filter", err)
	}
	country, err := parseCountry(countryStr)
	if err != nil {
		exitErr("filter", err)
	}
	squad, err := parseSquad(squadStr)
	if err != nil {
		exitErr("filter", err)
	}
	return query.Filter{Tab: tab, Country: country, Squad: squad, Tag: strings.TrimSpace(tag)}
}
