package di

import "testing"

func TestDefaultSize(t *testing.T) {
	tests := []struct {
		typ  string
		want Size
	}{
		{"task", SizeActivity},
		{"userTask", SizeActivity},
		{"callActivity", SizeActivity},
		{"exclusiveGateway", SizeGateway},
		{"parallelGateway", SizeGateway},
		{"startEvent", SizeEvent},
		{"intermediateCatchEvent", SizeEvent},
		{"subProcess", SizeSubProcess},
		{"dataObjectReference", SizeDataObjectRef},
		{"dataStoreReference", SizeDataStoreRef},
		{"somethingElse", SizeActivity},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := DefaultSize(tt.typ); got != tt.want {
				t.Errorf("DefaultSize(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestBoundsAnchors(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 100, Height: 80}

	if got := b.RightCenter(); got != (Point{X: 110, Y: 60}) {
		t.Errorf("RightCenter() = %v, want {110 60}", got)
	}
	if got := b.LeftCenter(); got != (Point{X: 10, Y: 60}) {
		t.Errorf("LeftCenter() = %v, want {10 60}", got)
	}
}

func TestBoundsOverlaps(t *testing.T) {
	a := Bounds{X: 0, Y: 0, Width: 10, Height: 10}

	if !a.Overlaps(Bounds{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Error("expected overlap")
	}
	if a.Overlaps(Bounds{X: 10, Y: 0, Width: 10, Height: 10}) {
		t.Error("touching rectangles should not overlap")
	}
}

func TestDefaultFactory(t *testing.T) {
	f := NewFactory()

	s := f.CreateShape("Task_1", Bounds{Width: 100, Height: 80}, ShapeOptions{Type: "task"})
	if s.ID != "Task_1_di" {
		t.Errorf("shape ID = %q, want Task_1_di", s.ID)
	}
	if s.Element != "Task_1" || s.Type != "task" {
		t.Errorf("unexpected shape %+v", s)
	}

	wps := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	e := f.CreateEdge("Flow_1", wps, EdgeOptions{ID: "custom"})
	if e.ID != "custom" {
		t.Errorf("edge ID = %q, want custom", e.ID)
	}
	wps[0].X = 99
	if e.Waypoints[0].X != 0 {
		t.Error("CreateEdge should copy waypoints")
	}
}

func TestNewDiagram(t *testing.T) {
	d := NewDiagram("Process_1")
	if d.ID != "BPMNDiagram_Process_1" {
		t.Errorf("ID = %q", d.ID)
	}
	if d.Plane.ID != "BPMNPlane_Process_1" || d.Plane.Element != "Process_1" {
		t.Errorf("unexpected plane %+v", d.Plane)
	}
	if d.ShapeCount() != 0 || d.EdgeCount() != 0 {
		t.Error("new diagram should be empty")
	}
}
