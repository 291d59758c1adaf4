package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/markdown"
)

// NameKey is the key whose value names a program in the overview table.
const NameKey = "Název"

var summaryHeaders = []string{"Den", "Fyzická/Psychická", "Dopo", "Odpo", "Večer", "Garanti"}

// Options tweak the generated document.
type Options struct {
	// PageBreaks puts every day on its own printed page.
	PageBreaks bool
}

// Document renders the overview table followed by the program of every day.
func Document(days []entity.Day, opts Options) (string, error) {
	table := markdown.NewTable(summaryHeaders...)
	var body strings.Builder

	for _, d := range days {
		row := []string{d.WeekDay(), strconv.Itoa(d.Physical) + "/" + strconv.Itoa(d.Psychical)}
		for _, t := range entity.ProgramTypes {
			v, _ := d.Value(t, NameKey)
			row = append(row, v)
		}
		row = append(row, d.Guarantees)
		if err := table.AddRow(row...); err != nil {
			return "", err
		}

		if opts.PageBreaks {
			body.WriteString(markdown.PageBreak())
		}
		fmt.Fprintf(&body, "\n<h1 style=\"text-align: center\">%s - %s</h1>\n<p style=\"text-align: center\"><b>%s</b></p>\n\n",
			d.SheetName, d.Date.Format("02.01.2006"), d.Guarantees)

		for _, p := range d.Parts {
			if len(p.Values) == 0 {
				continue
			}
			heading := string(p.Name)
			if p.CTH {
				heading += " (CTH)"
			}
			body.WriteString(markdown.Header(3, heading))
			for _, f := range p.Values {
				v := strings.TrimSpace(strings.ReplaceAll(f.Value, "\n", "<br>"))
				body.WriteString(markdown.ListItem("**" + f.Key + "**: " + v + "\n"))
			}
		}
	}

	return markdown.CenteredHeader(1, "Přehled") + table.String() + body.String(), nil
}
