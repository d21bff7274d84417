// Package matching scores seeker/candidate pairs and orders a candidate
// pool for one seeker.
//
// The Engine is a pure function of its two inputs and its Weights: no I/O,
// no shared mutable state. That lets the Orchestrator fan scoring out over
// a bounded worker pool and sort only after every worker has returned, so
// the final order never depends on scheduling.
//
//	engine := matching.NewEngine(matching.DefaultWeights())
//	orch := matching.NewOrchestrator(engine, 8)
//	batch, err := orch.RunBatch(ctx, seeker, candidates)
//
// Factors and their default weights:
//
//	university    200  exact match
//	industry      160  preferred industry == candidate industry
//	degree        100  exact match
//	skills         90  per shared skill, capped at 450
//	interests      70  per shared interest, capped at 350
//	mentoring      50  per matching mentoring area, capped at 250
//	company        50  candidate can hire a seeker looking for a job
//	availability   50  Available, 25 Limited, 0 Not Available
package matching
