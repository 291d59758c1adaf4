package planner

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sheetprint/pkg/entity"
)

var monday = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

func TestDaySheets(t *testing.T) {
	titles := []string{"Přehled", "den 1", "Den 2", "den 2", "poznámky", "den 3"}
	got := DaySheets(titles, SheetPrefix)
	want := []string{"den 1", "den 2", "den 3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DaySheets() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDays(t *testing.T) {
	summary := [][]string{
		{"3", "2", " Les ", "Anna"},
		{"1", "4", "Voda", "Petr, Jana"},
	}
	days, err := BuildDays(summary, []string{"den 1", "den 2", "den 3"}, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2", len(days))
	}
	d := days[1]
	if d.Number != 2 || d.SheetName != "den 2" || !d.Date.Equal(monday.AddDate(0, 0, 1)) {
		t.Errorf("days[1] = %+v", d)
	}
	if days[0].Theme != "Les" || d.Guarantees != "Petr, Jana" || d.Psychical != 4 {
		t.Errorf("summary fields not parsed: %+v", days)
	}
}

func TestBuildDaysErrors(t *testing.T) {
	if _, err := BuildDays([][]string{{"1", "1", "", ""}, {"1", "1", "", ""}}, []string{"den 1"}, monday); err == nil {
		t.Error("more overview rows than day sheets should fail")
	}

	_, err := BuildDays([][]string{{"x", "1", "", ""}}, []string{"den 1"}, monday)
	var pe *entity.ParseError
	if !errors.As(err, &pe) || pe.Column != "physical" {
		t.Errorf("BuildDays() error = %v, want ParseError on physical", err)
	}
}

func daySheet() [][]string {
	return [][]string{
		{"Dopo: program", "Název", "Popis", "Pomůcky", "", "", "", "", "CTH"},
		{"", "Hra na honěnou", "Běhá se\npo lese", "", "", "", "", "", "TRUE"},
		{},
		{": nic"},
		{"", "Ztraceno"},
		{},
		{"Večer", "Název", "Kde"},
		{"", "Táborák", " u řeky "},
	}
}

func TestParseDayParts(t *testing.T) {
	parts, skipped, err := ParseDayParts("den 1", daySheet())
	if err != nil {
		t.Fatal(err)
	}

	want := []entity.DayPart{
		{
			Name: entity.Morning,
			CTH:  true,
			Values: []entity.Field{
				{Key: "Název", Value: "Hra na honěnou"},
				{Key: "Popis", Value: "Běhá se\npo lese"},
			},
		},
		{
			Name: entity.Evening,
			Values: []entity.Field{
				{Key: "Název", Value: "Táborák"},
				{Key: "Kde", Value: "u řeky"},
			},
		},
	}
	if diff := cmp.Diff(want, parts); diff != "" {
		t.Errorf("ParseDayParts() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Skipped{{Sheet: "den 1", Block: 2}}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDayPartsShortSheet(t *testing.T) {
	parts, skipped, err := ParseDayParts("den 2", [][]string{{"Odpo"}, {"", "Spánek"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 || len(skipped) != 2 {
		t.Errorf("parts=%d skipped=%d, want 1 and 2", len(parts), len(skipped))
	}
}

func TestParseDayPartsUnknownType(t *testing.T) {
	_, _, err := ParseDayParts("den 1", [][]string{{"Noc: hra"}})
	if !errors.Is(err, entity.ErrInvalidEnum) {
		t.Errorf("error = %v, want ErrInvalidEnum", err)
	}
}

func TestDocument(t *testing.T) {
	parts, _, err := ParseDayParts("den 1", daySheet())
	if err != nil {
		t.Fatal(err)
	}
	days := []entity.Day{
		{
			Number:     1,
			Date:       monday,
			SheetName:  "den 1",
			DaySummary: entity.DaySummary{Physical: 3, Psychical: 2, Guarantees: "Anna"},
			Parts:      parts,
		},
		{
			Number:     2,
			Date:       monday.AddDate(0, 0, 1),
			SheetName:  "den 2",
			DaySummary: entity.DaySummary{Physical: 1, Psychical: 1, Guarantees: "Petr"},
			Parts:      []entity.DayPart{{Name: entity.Afternoon}},
		},
	}

	got, err := Document(days, Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := "<h1 style='text-align: center;'>Přehled</h1>\n\n" +
		"| Den | Fyzická/Psychická | Dopo | Odpo | Večer | Garanti |\n" +
		"| :---: | :---: | :---: | :---: | :---: | :---: |\n" +
		"| po | 3/2 | Hra na honěnou |  | Táborák | Anna |\n" +
		"| út | 1/1 |  |  |  | Petr |\n" +
		"\n<h1 style=\"text-align: center\">den 1 - 01.07.2024</h1>\n" +
		"<p style=\"text-align: center\"><b>Anna</b></p>\n\n" +
		"### Dopo (CTH)\n" +
		"* **Název**: Hra na honěnou\n\n" +
		"* **Popis**: Běhá se<br>po lese\n\n" +
		"### Večer\n" +
		"* **Název**: Táborák\n\n" +
		"* **Kde**: u řeky\n\n" +
		"\n<h1 style=\"text-align: center\">den 2 - 02.07.2024</h1>\n" +
		"<p style=\"text-align: center\"><b>Petr</b></p>\n\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Document() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentPageBreaks(t *testing.T) {
	days := []entity.Day{
		{Date: monday, SheetName: "den 1"},
		{Date: monday.AddDate(0, 0, 1), SheetName: "den 2"},
	}
	got, err := Document(days, Options{PageBreaks: true})
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(got, "page-break-after"); n != 2 {
		t.Errorf("got %d page breaks, want 2", n)
	}
}
