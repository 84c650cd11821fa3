package timetable

import (
	"fmt"
	"testing"
)

// ============================================================================
// Conflict Detection Benchmarks
// ============================================================================

// BenchmarkDetectConflicts benchmarks a full three-day schedule. The host
// recomputes conflicts after every mutation.
func BenchmarkDetectConflicts(b *testing.B) {
	p := benchProject(3, 40)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		DetectConflicts(p)
	}
}

// BenchmarkUnavailableSlots benchmarks the drag highlight lookup.
func BenchmarkUnavailableSlots(b *testing.B) {
	p := benchProject(3, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		UnavailableSlots(p, "2日目", "a7")
	}
}

// BenchmarkSortByAvailability benchmarks palette ordering.
func BenchmarkSortByAvailability(b *testing.B) {
	p := benchProject(3, 40)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		SortByAvailability(p)
	}
}

// ============================================================================
// Mutation Benchmarks
// ============================================================================

// BenchmarkMutations benchmarks each copy-on-write mutator on a filled day.
func BenchmarkMutations(b *testing.B) {
	p := benchProject(3, 40)

	b.Run("InsertRow", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			InsertRow(p, "1日目", 20)
		}
	})

	b.Run("RemoveRow", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			RemoveRow(p, "1日目", 20)
		}
	})

	b.Run("PlaceAct", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			PlaceAct(p, "1日目", 5, "a1")
		}
	})

	b.Run("Swap", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Swap(p, "1日目", 3, 30)
		}
	})
}

// BenchmarkCoveredHours benchmarks the hour sampling of a single slot.
func BenchmarkCoveredHours(b *testing.B) {
	for i := 0; i < b.N; i++ {
		CoveredHours(90, 120, 23)
	}
}

// BenchmarkDetectConflictsParallel benchmarks concurrent readers of one
// immutable project.
func BenchmarkDetectConflictsParallel(b *testing.B) {
	p := benchProject(3, 40)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			DetectConflicts(p)
		}
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// benchProject builds days days of slots rows each, every slot assigned.
func benchProject(days, slots int) Project {
	p := Project{}
	for d := 1; d <= days; d++ {
		p.Days = append(p.Days, Day{Label: fmt.Sprintf("%d日目", d), Start: "10:00", DefaultDurationMin: 15})
	}
	for a := 0; a < slots; a++ {
		avail := Availability{}
		for _, day := range p.Days {
			avail[day.Label] = HourSetOf(10+a%6, 11+a%6, 12+a%6)
		}
		p.Acts = append(p.Acts, Act{ID: fmt.Sprintf("a%d", a), Name: fmt.Sprintf("Act %d", a), DurationMin: 15 + a%3*10, Availability: avail})
	}

	p = EnsureSchedule(p)
	for _, day := range p.Days {
		for i := 0; i < slots; i++ {
			p = AddRow(p, day.Label)
			p = PlaceAct(p, day.Label, i, p.Acts[i].ID)
		}
	}
	return p
}
