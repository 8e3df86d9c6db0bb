// Package layout computes shape bounds and connector waypoints for BPMN
// processes that carry no diagram interchange.
//
// # Overview
//
// A run goes through these stages for each process:
//
//  1. [ExtractTopology] builds incoming and outgoing adjacency by node ID.
//  2. A [Strategy] places the flow nodes:
//     [LevelStrategy] ranks nodes with [BuildLevels] and turns levels and
//     lanes into bounds with [AssignCoordinates];
//     [GridStrategy] walks the graph with [AddToGrid] and maps grid cells
//     to bounds.
//  3. [RouteFlows] connects placed shapes with [Route].
//
// Pools and lanes are laid out by [PoolBands] and [LaneBands] before the
// strategy runs, so lane strips are known when nodes are stacked.
//
// # Entry point
//
// [Layouter] ties the stages together and produces one [di.Diagram] per
// run:
//
//	l, err := layout.New(layout.WithConfig(cfg))
//	if err != nil {
//		return err
//	}
//	res := l.Layout(defs)
//
// Layout never fails. Cycles are broken by forced progress, unresolved flows
// are counted as dropped, and empty definitions yield an empty result.
//
// # State
//
// Shapes and grid positions are kept in lookups owned by the run, never on
// the semantic [bpmn.FlowNode]. The same definitions can be laid out by
// several goroutines at once.
//
// # Configuration
//
// All spacing and page constants live in [Config]; [DefaultConfig] returns
// the stock values.
package layout
