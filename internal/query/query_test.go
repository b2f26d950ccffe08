package query

import (
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/testutil"
)

func seed(t *testing.T, zs ...models.Zettel) (*store.Store, *Engine) {
	t.Helper()
	st := testutil.TestStore(t)
	for _, z := range zs {
		if err := st.Save(z); err != nil {
			t.Fatalf("seed %s: %v", z.Key(), err)
		}
	}
	_, v := testutil.TestVault(t)
	return st, NewEngine(st, v)
}

func titles(zs []models.Zettel) []string {
	out := make([]string, len(zs))
	for i, z := range zs {
		out[i] = z.Title
	}
	return out
}

func TestLinks(t *testing.T) {
	_, e := seed(t,
		models.Zettel{Title: "A", Links: []string{"C", "B", "C"}},
		models.Zettel{Title: "B", Links: []string{"D"}},
	)

	got, err := e.Links("A")
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	// Sorted and deduplicated.
	if !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Links(A) = %v, want [B C]", got)
	}
}

func TestLinks_PatternSpansRecords(t *testing.T) {
	_, e := seed(t,
		models.Zettel{Title: "Alpha", Links: []string{"X"}},
		models.Zettel{Title: "Alps", Links: []string{"Y"}},
	)
	got, err := e.Links("Al%")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"X", "Y"}) {
		t.Errorf("Links(Al%%) = %v, want [X Y]", got)
	}
}

func TestLinks_NoMatch(t *testing.T) {
	_, e := seed(t, models.Zettel{Title: "A"})
	got, err := e.Links("Missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Links(Missing) = %v, want none", got)
	}
}

func TestSearch(t *testing.T) {
	st := testutil.TestStore(t)
	_, v := testutil.TestVault(t)
	e := NewEngine(st, v)

	notes := map[string]string{
		"A.md":      "thoughts on LATENCY numbers",
		"work/B.md": "latency is fine here",
		"C.md":      "nothing of interest",
	}
	for rel, content := range notes {
		testutil.WriteNote(t, v, rel, content)
		if err := st.Save(models.Zettel{
			Title:   strings.TrimSuffix(filepath.Base(rel), ".md"),
			Project: projectOf(rel),
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := e.Search("latency")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	names := titles(got)
	slices.Sort(names)
	// Case-insensitive, across projects.
	if !reflect.DeepEqual(names, []string{"A", "B"}) {
		t.Errorf("Search(latency) = %v, want [A B]", names)
	}
}

func TestSearch_MissingFileSkipped(t *testing.T) {
	st := testutil.TestStore(t)
	_, v := testutil.TestVault(t)
	e := NewEngine(st, v)

	// Indexed record with no file on disk.
	if err := st.Save(models.Zettel{Title: "Gone"}); err != nil {
		t.Fatal(err)
	}
	got, err := e.Search(".")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Search = %v, want none", titles(got))
	}
}

func TestSearch_BadPattern(t *testing.T) {
	_, e := seed(t)
	if _, err := e.Search("("); err == nil {
		t.Error("Search with invalid pattern: want error, got nil")
	}
}

func projectOf(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}

func TestGhosts(t *testing.T) {
	_, e := seed(t,
		models.Zettel{Title: "A", Links: []string{"B", "Missing"}},
		models.Zettel{Title: "B", Links: []string{"Phantom", "Missing"}},
	)

	got, err := e.Ghosts()
	if err != nil {
		t.Fatalf("Ghosts: %v", err)
	}
	// Sorted, deduplicated, existing titles filtered out.
	want := []string{"Missing", "Phantom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ghosts = %v, want %v", got, want)
	}
}

func TestGhosts_NoneWhenAllResolve(t *testing.T) {
	_, e := seed(t,
		models.Zettel{Title: "A", Links: []string{"B"}},
		models.Zettel{Title: "B"},
	)
	got, err := e.Ghosts()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Ghosts = %v, want none", got)
	}
}

func TestIsolated(t *testing.T) {
	_, e := seed(t,
		models.Zettel{Title: "A", Links: []string{"B"}}, // has outbound
		models.Zettel{Title: "B"},                       // linked from A
		models.Zettel{Title: "Lonely"},                  // fully disconnected
	)

	got, err := e.Isolated()
	if err != nil {
		t.Fatalf("Isolated: %v", err)
	}
	if !reflect.DeepEqual(titles(got), []string{"Lonely"}) {
		t.Errorf("Isolated = %v, want [Lonely]", titles(got))
	}
}

func TestIsolated_EmptyGraph(t *testing.T) {
	_, e := seed(t)
	got, err := e.Isolated()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Isolated over empty store = %v", titles(got))
	}
}

func TestBacklinks(t *testing.T) {
	_, e := seed(t,
		models.Zettel{Title: "A", Links: []string{"Hub"}},
		models.Zettel{Title: "B", Links: []string{"Hub", "A"}},
		models.Zettel{Title: "Hub"},
	)

	got, err := e.Backlinks("Hub")
	if err != nil {
		t.Fatalf("Backlinks: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Backlinks(Hub) = %v, want [A B]", titles(got))
	}
}

func TestTwoFileScenario(t *testing.T) {
	// root/A.md: "[[B]] #x ", root/B.md: "".
	_, e := seed(t,
		models.Zettel{Title: "A", Links: []string{"B"}, Tags: []string{"x"}},
		models.Zettel{Title: "B"},
	)

	ghosts, err := e.Ghosts()
	if err != nil {
		t.Fatal(err)
	}
	if len(ghosts) != 0 {
		t.Errorf("Ghosts = %v, want none (B exists)", ghosts)
	}

	bl, err := e.Backlinks("B")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(titles(bl), []string{"A"}) {
		t.Errorf("Backlinks(B) = %v, want [A]", titles(bl))
	}

	iso, err := e.Isolated()
	if err != nil {
		t.Fatal(err)
	}
	if len(iso) != 0 {
		t.Errorf("Isolated = %v, want none (B is linked, A links out)", titles(iso))
	}

	tags, err := e.ListTags()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tags, []string{"x"}) {
		t.Errorf("ListTags = %v, want [x]", tags)
	}
}
