// Package format renders repository lists for the non-interactive
// `list` command.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"repodeck/internal/model"
)

// Repos writes the list in the given format ("table" or "json").
func Repos(w io.Writer, repos []model.Repo, format string) error {
	switch format {
	case "table":
		return reposTable(w, repos)
	case "json":
		return reposJSON(w, repos)
	default:
		return goerr.New("invalid output format, should be 'table' or 'json'", goerr.V("value", format))
	}
}

func reposTable(w io.Writer, repos []model.Repo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := color.New(color.FgCyan, color.Bold).Sprintf
	fmt.Fprintln(tw, header("NAME")+"\t"+header("DESCRIPTION")+"\t"+header("LANGUAGE")+
		"\t"+header("STARS")+"\t"+header("FORKS")+"\t"+header("UPDATED"))

	for _, r := range repos {
		updated := "n/a"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.FullName, clip(r.Description, 60), r.Language, r.Stars, r.Forks, updated)
	}

	return tw.Flush()
}

func reposJSON(w io.Writer, repos []model.Repo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(repos); err != nil {
		return goerr.Wrap(err, "failed to encode repositories")
	}
	return nil
}

func clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
