package layout

import (
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

func mustPos(t *testing.T, g *Grid, id string) Position {
	t.Helper()
	p, ok := g.Position(id)
	if !ok {
		t.Fatalf("%s not placed", id)
	}
	return p
}

func assertNoSharedCells(t *testing.T, g *Grid) {
	t.Helper()
	seen := make(map[Position]string)
	for _, c := range g.Cells() {
		if other, ok := seen[c.Position]; ok {
			t.Errorf("%s and %s share cell %v", c.ID, other, c.Position)
		}
		seen[c.Position] = c.ID
		if id, ok := g.At(c.Position.Row, c.Position.Col); !ok || id != c.ID {
			t.Errorf("At%v = %q, want %q", c.Position, id, c.ID)
		}
	}
}

func TestGridAdd(t *testing.T) {
	g := NewGrid()
	if p := g.Add("A"); p != (Position{0, 0}) {
		t.Errorf("Add(A) = %v, want (0,0)", p)
	}
	g.AddAfter("A", "B")
	if p := g.Add("C"); p != (Position{1, 0}) {
		t.Errorf("Add(C) = %v, want (1,0)", p)
	}
	if g.Rows() != 2 || g.Cols() != 2 || g.Len() != 3 {
		t.Errorf("Rows, Cols, Len = %d, %d, %d; want 2, 2, 3", g.Rows(), g.Cols(), g.Len())
	}
}

func TestGridAddAfterShiftsRow(t *testing.T) {
	g := NewGrid()
	g.Add("A")
	g.AddAfter("A", "B")
	g.AddAfter("B", "C")
	g.Add("X")

	// Inserting right of A pushes B and C one column right.
	if p := g.AddAfter("A", "N"); p != (Position{0, 1}) {
		t.Errorf("AddAfter(A, N) = %v, want (0,1)", p)
	}
	if p := mustPos(t, g, "B"); p != (Position{0, 2}) {
		t.Errorf("B = %v, want (0,2)", p)
	}
	if p := mustPos(t, g, "C"); p != (Position{0, 3}) {
		t.Errorf("C = %v, want (0,3)", p)
	}
	if p := mustPos(t, g, "X"); p != (Position{1, 0}) {
		t.Errorf("X = %v, want (1,0) (other rows untouched)", p)
	}
	assertNoSharedCells(t, g)
}

func TestGridAddBelowInsertsRow(t *testing.T) {
	g := NewGrid()
	g.Add("A")
	g.AddAfter("A", "B")
	g.Add("X")

	if p := g.AddBelow("B", "C"); p != (Position{1, 1}) {
		t.Errorf("AddBelow(B, C) = %v, want (1,1)", p)
	}
	if p := mustPos(t, g, "X"); p != (Position{1, 0}) {
		t.Errorf("X = %v, want (1,0) (free target cell needs no new row)", p)
	}

	// (1,1) is now taken, so a new row is inserted and lower rows move down.
	if p := g.AddBelow("B", "D"); p != (Position{1, 1}) {
		t.Errorf("AddBelow(B, D) = %v, want (1,1)", p)
	}
	if p := mustPos(t, g, "C"); p != (Position{2, 1}) {
		t.Errorf("C = %v, want (2,1)", p)
	}
	if p := mustPos(t, g, "X"); p != (Position{2, 0}) {
		t.Errorf("X = %v, want (2,0)", p)
	}
	assertNoSharedCells(t, g)
}

func TestGridUnknownAnchor(t *testing.T) {
	g := NewGrid()
	g.Add("A")
	if p := g.AddAfter("missing", "B"); p != (Position{1, 0}) {
		t.Errorf("AddAfter(missing) = %v, want (1,0)", p)
	}
	if p := g.AddBelow("missing", "C"); p != (Position{2, 0}) {
		t.Errorf("AddBelow(missing) = %v, want (2,0)", p)
	}
}

func ids(nodes []*bpmn.FlowNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestAddToGridGatewayFanOut(t *testing.T) {
	p := testProcess(t, "G:parallelGateway A B C", "G>A", "G>B", "G>C")
	g := NewGrid()
	visited := VisitedSet{}
	gw, _ := p.Node("G")
	g.Add("G")
	visited.Add("G")

	next := AddToGrid(gw, g, visited, nil)

	want := map[string]Position{"A": {0, 1}, "B": {1, 1}, "C": {2, 1}}
	for id, pos := range want {
		if got := mustPos(t, g, id); got != pos {
			t.Errorf("%s = %v, want %v", id, got, pos)
		}
		if !visited.Has(id) {
			t.Errorf("%s not marked visited", id)
		}
	}
	if got := ids(next); len(got) != 3 || got[0] != "C" || got[1] != "B" || got[2] != "A" {
		t.Errorf("AddToGrid() = %v, want [C B A]", got)
	}
}

func TestAddToGridTaskPlacesAllTargetsRight(t *testing.T) {
	p := testProcess(t, "T A B", "T>A", "T>B")
	g := NewGrid()
	visited := VisitedSet{"T": true}
	task, _ := p.Node("T")
	g.Add("T")

	AddToGrid(task, g, visited, nil)

	if got := mustPos(t, g, "B"); got != (Position{0, 1}) {
		t.Errorf("B = %v, want (0,1)", got)
	}
	if got := mustPos(t, g, "A"); got != (Position{0, 2}) {
		t.Errorf("A = %v, want (0,2)", got)
	}
}

func TestAddToGridGatewaysFirst(t *testing.T) {
	p := testProcess(t, "T A G:exclusiveGateway B", "T>A", "T>G", "T>B")
	g := NewGrid()
	visited := VisitedSet{"T": true}
	task, _ := p.Node("T")
	g.Add("T")

	got := ids(AddToGrid(task, g, visited, nil))
	if len(got) != 3 || got[0] != "G" || got[1] != "B" || got[2] != "A" {
		t.Errorf("AddToGrid() = %v, want [G B A]", got)
	}
}

func TestAddToGridSkipsVisited(t *testing.T) {
	p := testProcess(t, "A B", "A>B", "A>A")
	g := NewGrid()
	visited := VisitedSet{"A": true, "B": true}
	a, _ := p.Node("A")
	g.Add("A")

	if next := AddToGrid(a, g, visited, nil); len(next) != 0 {
		t.Errorf("AddToGrid() = %v, want none", ids(next))
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestAddToGridDefersMergePoint(t *testing.T) {
	p := testProcess(t, "A B C M", "A>M", "B>C", "C>M")
	g := NewGrid()
	visited := VisitedSet{"A": true, "B": true}
	a, _ := p.Node("A")
	b, _ := p.Node("B")
	g.Add("A")
	g.Add("B")

	// C is still unvisited and B remains on the stack, so M waits.
	if next := AddToGrid(a, g, visited, []*bpmn.FlowNode{b}); len(next) != 0 {
		t.Errorf("AddToGrid() = %v, want M deferred", ids(next))
	}
	if visited.Has("M") {
		t.Error("M visited, want deferred")
	}

	// Nothing else to explore: the merge point is placed.
	if next := AddToGrid(a, g, visited, nil); len(next) != 1 || next[0].ID != "M" {
		t.Errorf("AddToGrid() = %v, want [M]", ids(next))
	}
}

func TestAddToGridPlacesLoopEntry(t *testing.T) {
	p := testProcess(t, "G:exclusiveGateway X A B", "G>X", "G>A", "A>B", "B>A")
	g := NewGrid()
	visited := VisitedSet{"G": true}
	gw, _ := p.Node("G")
	g.Add("G")

	// A merges G and B, but B is only reachable through A.
	AddToGrid(gw, g, visited, nil)
	if !visited.Has("A") {
		t.Fatal("A deferred, want placed to break the loop")
	}
	if got := mustPos(t, g, "A"); got != (Position{1, 1}) {
		t.Errorf("A = %v, want (1,1)", got)
	}
}

func TestTraverseMergeAfterLastPredecessor(t *testing.T) {
	p := testProcess(t, "S:startEvent G:exclusiveGateway A B C M",
		"S>G", "G>A", "G>B", "A>M", "B>C", "C>M")
	g := Traverse(p)

	want := map[string]Position{
		"S": {0, 0}, "G": {0, 1},
		"A": {0, 2},
		"B": {1, 2}, "C": {1, 3}, "M": {1, 4},
	}
	for id, pos := range want {
		if got := mustPos(t, g, id); got != pos {
			t.Errorf("%s = %v, want %v", id, got, pos)
		}
	}
	assertNoSharedCells(t, g)
}

func TestTraverseSeedsUnreachedNodes(t *testing.T) {
	p := testProcess(t, "A B C D", "A>B", "B>A", "C>D", "D>C")
	g := Traverse(p)
	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", g.Len())
	}
	if got := mustPos(t, g, "A"); got != (Position{0, 0}) {
		t.Errorf("A = %v, want (0,0)", got)
	}
	if got := mustPos(t, g, "C"); got != (Position{1, 0}) {
		t.Errorf("C = %v, want (1,0)", got)
	}
	assertNoSharedCells(t, g)
}

func TestReachable(t *testing.T) {
	p := testProcess(t, "A B C D", "A>B", "B>C", "C>A", "C>C")
	node := func(id string) *bpmn.FlowNode { n, _ := p.Node(id); return n }

	tests := []struct {
		from, to string
		want     bool
	}{
		{"A", "C", true},
		{"C", "B", true},
		{"A", "A", true},
		{"A", "D", false},
		{"D", "D", false},
	}
	for _, tt := range tests {
		if got := Reachable(node(tt.from), node(tt.to)); got != tt.want {
			t.Errorf("Reachable(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if Reachable(node("A"), nil) {
		t.Error("Reachable(A, nil) = true")
	}
}
