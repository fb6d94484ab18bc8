package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	if AttrMethod == "" || AttrPath == "" || AttrStatus == "" || AttrTarget == "" {
		t.Fatalf("expected metric attribute keys to be non-empty")
	}
	if TargetSchedule == TargetDetail {
		t.Fatalf("expected distinct fetch targets")
	}
}
