package cards

import (
	"strings"
	"testing"

	"github.com/matzehuels/sheetprint/pkg/entity"
	"github.com/matzehuels/sheetprint/pkg/layout"
	"github.com/matzehuels/sheetprint/pkg/svg"
)

func TestRarityColor(t *testing.T) {
	tests := map[int]string{1: "grey", 2: "green", 3: "blue", 4: "#DA70D6", 5: "yellow", 0: "black", 6: "black"}
	for bonus, want := range tests {
		if got := RarityColor(bonus); got != want {
			t.Errorf("RarityColor(%d) = %q, want %q", bonus, got, want)
		}
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Lehký"},
		{4, "Lehký"},
		{5, "Střední"},
		{10, "Těžké"},
		{19, "Smrtící"},
		{20, "Brutální"},
		{29, "Brutální"},
		{30, "Ničitel světů"},
		{34, "Ničitel světů"},
		{35, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := Difficulty(tt.level); got != tt.want {
			t.Errorf("Difficulty(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func render(t *testing.T, c Card) string {
	t.Helper()
	sym, err := NewRenderer(0).Symbol(c)
	if err != nil {
		t.Fatal(err)
	}
	return string(svg.Document{Defs: []svg.Node{sym}}.Bytes())
}

func TestEquipmentSymbol(t *testing.T) {
	out := render(t, entity.Equipment{Name: "Meč", Bonus: 3, Type: entity.Arm, Amount: 2})

	for _, want := range []string{
		`<symbol id="mec" viewBox="0 0 80 30">`,
		`<rect x="0.5" y="0.5" width="79" height="29" fill="none" stroke="#000000" stroke-width="1"/>`,
		`>Meč</text>`,
		`class="big">+3</text>`,
		`text-anchor="end" dominant-baseline="middle" class="small">Ruka</text>`,
		`<path d="M 16,3 62,3" stroke-width="1" stroke="blue"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("symbol missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "<text") != 3 {
		t.Errorf("equipment without condition should have 3 texts:\n%s", out)
	}

	withCond := render(t, entity.Equipment{Name: "Meč", Bonus: 1, Type: entity.Arm, Condition: "Jen elfové", Amount: 1})
	if !strings.Contains(withCond, `<text x="2" y="26" dominant-baseline="middle" class="small">Jen elfové</text>`) {
		t.Errorf("condition text missing:\n%s", withCond)
	}
}

func TestMonsterSymbol(t *testing.T) {
	out := render(t, entity.Monster{Name: "Zlý drak", Level: 12, Amount: 1})
	for _, want := range []string{
		`<symbol id="zly_drak"`,
		`class="big">12</text>`,
		`class="small">Úroveň</text>`,
		`class="small">Těžké</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("symbol missing %q:\n%s", want, out)
		}
	}
}

func TestCurseSymbolWrapsDescription(t *testing.T) {
	c := entity.Curse{
		Name:        "Žabák",
		Description: "Proměníš se v žábu a ztratíš veškeré vybavení, které máš na sobě.",
		Amount:      1,
	}
	out := render(t, c)
	if !strings.Contains(out, `class="big">KLETBA</text>`) {
		t.Errorf("missing KLETBA title:\n%s", out)
	}
	if n := strings.Count(out, "<tspan"); n != 3 {
		t.Errorf("got %d tspans, want 3:\n%s", n, out)
	}
	if !strings.Contains(out, `<tspan dy="4" x="5" class="small">Proměníš se v žábu a ztratíš</tspan>`) {
		t.Errorf("first line not wrapped at 35:\n%s", out)
	}
}

func TestBonusSymbol(t *testing.T) {
	out := render(t, entity.Bonus{Name: "Lektvar", Bonus: 4, Amount: 2})
	for _, want := range []string{
		`class="big">BONUS +4</text>`,
		`font-weight="bold">Lektvar</text>`,
		`>Lze použít jen jednou, musí být v</tspan>`,
		`>batohu</tspan>`,
		`stroke="#DA70D6"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("symbol missing %q:\n%s", want, out)
		}
	}
}

func TestRendererRejectsOtherKinds(t *testing.T) {
	r := NewRenderer(0)
	if _, err := r.Symbol(entity.Person{Name: "Drákula"}); err == nil {
		t.Error("Symbol(Person) should fail")
	}
	if _, err := r.Symbol(nil); err == nil {
		t.Error("Symbol(nil) should fail")
	}
	if _, _, err := r.Labeled(entity.Person{Name: "Drákula"}); err == nil {
		t.Error("Labeled(Person) should fail")
	}

	sym, label, err := r.Labeled(entity.Monster{Name: "Drak", Level: 10, Amount: 1})
	if err != nil || sym.ID != "drak" || label != "Drak" {
		t.Errorf("Labeled(Drak) = %q, %q, %v", sym.ID, label, err)
	}
}

func TestRendererMemoizes(t *testing.T) {
	r := NewRenderer(0)
	m := entity.Monster{Name: "Skřet", Level: 1, Amount: 3}
	a, _ := r.Symbol(m)
	b, _ := r.Symbol(m)
	if len(r.cache) != 1 {
		t.Errorf("cache size = %d, want 1", len(r.cache))
	}
	if a.ID != b.ID || len(a.Children) != len(b.Children) {
		t.Error("equal cards rendered differently")
	}
}

func TestSwordEndToEnd(t *testing.T) {
	sword := entity.Equipment{Name: "Meč", Bonus: 3, Type: entity.Arm, Amount: 2}
	items := layout.Expand([]Card{sword})
	if len(items) != 2 {
		t.Fatalf("Expand() = %d items, want 2", len(items))
	}

	r := NewRenderer(0)
	pages, collisions, err := layout.BuildPages(items, DefaultGrid, r.Labeled)
	if err != nil {
		t.Fatalf("BuildPages() error: %v", err)
	}
	if len(pages) != 1 || len(collisions) != 0 {
		t.Fatalf("pages=%d collisions=%d, want 1 and 0", len(pages), len(collisions))
	}

	out := string(Document(pages[0]).Bytes())
	if n := strings.Count(out, `<symbol id="mec"`); n != 1 {
		t.Errorf("got %d definitions of mec, want 1", n)
	}
	if n := strings.Count(out, `<use href="#mec"`); n != 2 {
		t.Errorf("got %d references to mec, want 2", n)
	}
	for _, want := range []string{
		`width="297mm" height="210mm" viewBox="0 0 297 210"`,
		`<use href="#mec" x="0" y="0" width="80" height="30"/>`,
		`<use href="#mec" x="80" y="0" width="80" height="30"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q:\n%s", want, out)
		}
	}
}
