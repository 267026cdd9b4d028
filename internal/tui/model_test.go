package tui

import (
	"testing"

	"github.com/vetta-dev/vetta/internal/api"
)

func TestComputeStats(t *testing.T) {
	interviews := []api.Interview{
		{ID: "4", Status: "completed"},
		{ID: "3", Status: "terminated"},
		{ID: "2", Status: "completed"},
		{ID: "1", Status: "in_progress"},
	}

	stats := ComputeStats(interviews)
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Completed != 2 {
		t.Errorf("Completed = %d, want 2", stats.Completed)
	}
	if stats.Terminated != 1 {
		t.Errorf("Terminated = %d, want 1", stats.Terminated)
	}
	if stats.Active != 1 {
		t.Errorf("Active = %d, want 1", stats.Active)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.Total != 0 || stats.Completed != 0 || stats.Terminated != 0 || stats.Active != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
}
