package layout

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sheetprint/pkg/svg"
)

type card struct {
	name   string
	amount int
}

func (c card) Quantity() int { return c.amount }

func TestExpand(t *testing.T) {
	in := []card{{"a", 2}, {"b", 0}, {"c", 1}, {"d", -3}, {"e", 3}}
	got := Expand(in)

	var names []string
	for _, c := range got {
		names = append(names, c.name)
	}
	want := []string{"a", "a", "c", "e", "e", "e"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandLengthIsSumOfQuantities(t *testing.T) {
	for n := 0; n < 20; n++ {
		var (
			in  []card
			sum int
		)
		for i := range n {
			amount := (i * 7) % 5
			in = append(in, card{name: string(rune('a' + i)), amount: amount})
			sum += amount
		}
		if got := len(Expand(in)); got != sum {
			t.Errorf("n=%d: len(Expand()) = %d, want %d", n, got, sum)
		}
	}
}

func TestCluster(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want []int
	}{
		{"empty", 0, 21, nil},
		{"single partial", 5, 21, []int{5}},
		{"exact", 42, 21, []int{21, 21}},
		{"partial tail", 45, 21, []int{21, 21, 3}},
		{"size one", 3, 1, []int{1, 1, 1}},
		{"no size", 4, 0, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}
			chunks := Cluster(items, tt.size)

			var lens []int
			for _, c := range chunks {
				lens = append(lens, len(c))
			}
			if diff := cmp.Diff(tt.want, lens); diff != "" {
				t.Errorf("chunk lengths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClusterPreservesOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i * 3
	}
	for size := 1; size <= 30; size++ {
		chunks := Cluster(items, size)
		for _, c := range chunks {
			if len(c) > size {
				t.Fatalf("size=%d: chunk of %d elements", size, len(c))
			}
		}
		if got := slices.Concat(chunks...); !slices.Equal(got, items) {
			t.Fatalf("size=%d: concatenated chunks differ from input", size)
		}
	}
}

func TestGridPlace(t *testing.T) {
	g := Grid{Rows: 7, Columns: 3, CellWidth: 80, CellHeight: 30}
	tests := []struct {
		i    int
		x, y float64
	}{
		{0, 0, 0},
		{1, 80, 0},
		{2, 160, 0},
		{3, 0, 30},
		{20, 160, 180},
		{21, 0, 0},
	}
	for _, tt := range tests {
		x, y := g.Place(tt.i)
		if x != tt.x || y != tt.y {
			t.Errorf("Place(%d) = (%v, %v), want (%v, %v)", tt.i, x, y, tt.x, tt.y)
		}
	}
	if g.Capacity() != 21 {
		t.Errorf("Capacity() = %d, want 21", g.Capacity())
	}
}

func TestBuildPages(t *testing.T) {
	g := Grid{Rows: 1, Columns: 2, CellWidth: 80, CellHeight: 30}
	items := []string{"Meč", "Meč", "Štít", "Mec", "Meč"}
	ids := map[string]string{"Meč": "mec", "Mec": "mec", "Štít": "stit"}

	pages, collisions, err := BuildPages(items, g, func(s string) (svg.Symbol, string, error) {
		return svg.Symbol{ID: ids[s], ViewBox: "0 0 80 30"}, s, nil
	})
	if err != nil {
		t.Fatalf("BuildPages() error: %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}

	var gotSymbols [][]string
	refs := 0
	for i, p := range pages {
		if p.Index != i {
			t.Errorf("pages[%d].Index = %d", i, p.Index)
		}
		var syms []string
		for _, s := range p.Symbols {
			syms = append(syms, s.ID)
		}
		gotSymbols = append(gotSymbols, syms)
		refs += len(p.References)
	}
	wantSymbols := [][]string{{"mec"}, {"stit", "mec"}, {"mec"}}
	if diff := cmp.Diff(wantSymbols, gotSymbols); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if refs != len(items) {
		t.Errorf("placed %d references, want %d", refs, len(items))
	}

	if href, _ := pages[1].References[1].Attr("href"); href != "#mec" {
		t.Errorf("second reference on page 1 = %q, want #mec", href)
	}
	if x, _ := pages[1].References[1].Attr("x"); x != "80" {
		t.Errorf("second reference x = %q, want 80", x)
	}

	want := []Collision{{ID: "mec", First: "Meč", Second: "Mec"}}
	if diff := cmp.Diff(want, collisions); diff != "" {
		t.Errorf("collisions mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPagesStopsOnError(t *testing.T) {
	boom := errors.New("cannot render")
	calls := 0
	pages, _, err := BuildPages([]string{"Meč", "Štít", "Helma"}, Grid{Rows: 1, Columns: 1}, func(s string) (svg.Symbol, string, error) {
		calls++
		if s == "Štít" {
			return svg.Symbol{}, s, boom
		}
		return svg.Symbol{ID: s}, s, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if pages != nil || calls != 2 {
		t.Errorf("pages = %v after %d calls, want nil after 2", pages, calls)
	}
}

func TestChain(t *testing.T) {
	c := Neighbors(3)
	tests := []struct {
		i                int
		prev, next       int
		hasPrev, hasNext bool
	}{
		{0, 0, 1, false, true},
		{1, 0, 2, true, true},
		{2, 1, 0, true, false},
	}
	for _, tt := range tests {
		p, okp := c.Prev(tt.i)
		n, okn := c.Next(tt.i)
		if okp != tt.hasPrev || (okp && p != tt.prev) {
			t.Errorf("Prev(%d) = %d, %v", tt.i, p, okp)
		}
		if okn != tt.hasNext || (okn && n != tt.next) {
			t.Errorf("Next(%d) = %d, %v", tt.i, n, okn)
		}
	}

	single := Neighbors(1)
	if _, ok := single.Prev(0); ok {
		t.Error("single record has no predecessor")
	}
	if _, ok := single.Next(0); ok {
		t.Error("single record has no successor")
	}
}
