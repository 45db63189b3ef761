// Package dispatch decides, at every tick of a ramp, exactly how many
// instances of each load-generating user class must run on each worker node.
//
// Two dispatcher flavors share one iteration protocol:
//
//   - WeightedDispatcher distributes an explicit target user count across
//     user classes proportionally to their weights (optionally mixing in
//     classes pinned to a fixed count), and across workers so that no two
//     workers' totals differ by more than one.
//   - FixedDispatcher derives the target from each class's fixed count and
//     confines classes sharing a sticky tag to a dedicated worker group, for
//     session- or connection-affine protocols.
//
// # Quick Start
//
//	workers := []dispatch.WorkerNode{{ID: "1"}, {ID: "2"}, {ID: "3"}}
//	classes := []dispatch.UserClass{
//	    {Name: "User1", Weight: 1},
//	    {Name: "User2", Weight: 1},
//	    {Name: "User3", Weight: 1},
//	}
//
//	d, err := dispatch.NewWeighted(workers, classes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := d.NewDispatch(dispatch.Request{TargetUserCount: 9, SpawnRate: 1}); err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    assignment, err := d.Next(ctx)
//	    if errors.Is(err, dispatch.ErrDispatchComplete) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // hand the snapshot to the transport layer
//	    _ = assignment
//	}
//
// Each Next call moves exactly one user (spawn or kill), paced by the spawn
// rate; the first step after NewDispatch fires immediately. AddWorker and
// RemoveWorker may be called mid-ramp; the next iteration then performs a
// single zero-wait rebalance redistributing the existing population across
// the updated worker set before the ramp continues.
//
// Dispatchers compute what should run where; they perform no I/O. The pacing
// wait is the only blocking operation and honors context cancellation, so a
// master event loop can drive a dispatcher alongside its transport
// goroutines.
package dispatch
