package profile

import "testing"

func rankedBatch() BatchResult {
	return BatchResult{
		Succeeded("low", Profile{Rating: floatPtr(10), Solved: intPtr(500)}),
		Failed("broken", "broken: fetch failed"),
		Succeeded("high", Profile{Rating: floatPtr(300), Solved: intPtr(50)}),
		Succeeded("mid", Profile{Rating: floatPtr(150), Solved: intPtr(200)}),
		Succeeded("unrated", Profile{Solved: intPtr(900)}),
	}
}

func TestTopByRating(t *testing.T) {
	got := TopByRating(rankedBatch(), 3)

	want := []string{"high", "mid", "low"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, username := range want {
		if got[i].Username != username {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Username, username)
		}
	}
}

func TestTopByRating_UnratedSortLast(t *testing.T) {
	got := TopByRating(rankedBatch(), 0)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 (failures excluded)", len(got))
	}
	if got[3].Username != "unrated" {
		t.Errorf("last = %q, want %q", got[3].Username, "unrated")
	}
}

func TestTopBySolved(t *testing.T) {
	got := TopBySolved(rankedBatch(), 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Username != "unrated" || got[1].Username != "low" {
		t.Errorf("order = [%s %s], want [unrated low]", got[0].Username, got[1].Username)
	}
}

func TestTop_ExcludesFailures(t *testing.T) {
	for _, r := range TopBySolved(rankedBatch(), 0) {
		if !r.Ok() {
			t.Errorf("ranking contains failure record %q", r.Username)
		}
	}
}

func TestTop_NLargerThanBatch(t *testing.T) {
	got := TopByRating(rankedBatch(), 50)
	if len(got) != 4 {
		t.Errorf("len = %d, want 4", len(got))
	}
}
