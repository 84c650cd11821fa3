// Package core is the facade between host shells and the run-sheet engine.
//
// The engine in package timetable is pure: it takes a Project value and
// returns a new one. This package adds everything a host needs around it
// without putting any of it into the engine. It can be used by the web
// server, the CLI, or tests without modification.
//
// # Architecture
//
//   - Service: entry point for all operations. It loads a project from a
//     store.ProjectStore, applies one engine operation, writes the result
//     back and recomputes conflicts.
//   - Sessions: one mutex per project id, so read-modify-write cycles on the
//     same project never interleave. Different projects proceed in parallel.
//   - ImportLimiter: a semaphore bounding concurrent roster imports.
//   - Error mapping: [MapError] turns technical errors into coded messages.
//
// # Mutations
//
// [Service.AddRow], [Service.RemoveRow], [Service.PlaceAct] and [Service.Swap]
// all return an [Outcome] holding the new project and its conflicts:
//
//	out, err := svc.PlaceAct(ctx, id, "1日目", 0, actID)
//	if err != nil {
//	    return err
//	}
//	render(out.Project, out.Conflicts)
//
// By default unknown days, acts and slot indices leave the project unchanged
// and return no error. With Options.Strict they return the timetable
// sentinel errors instead.
//
// # Import
//
// [Service.ImportCSV] ingests a roster CSV with package roster and replaces
// the project's acts. Acts keep their id across imports when their name is
// unchanged, so existing placements survive a corrected roster.
//
// # Error Handling
//
// Each error family has a code prefix for support reference:
//
//   - PRJ: project lookup and document validation
//   - SLT: strict-mode slot targeting
//   - CSV: roster file problems
//   - IMP: import throttling and request lifecycle
//   - DB: storage connectivity
package core
