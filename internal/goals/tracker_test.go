package goals

import (
	"testing"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

func goal(target, current string) core.SavingsGoal {
	return core.SavingsGoal{
		Name:          "House Down Payment",
		TargetAmount:  core.MustMoney(target),
		CurrentAmount: core.MustMoney(current),
	}
}

func TestTrack(t *testing.T) {
	p := Track(goal("50000.00", "12000.00"))

	if p.Percentage != 24.0 {
		t.Fatalf("expected 24.0%%, got %.1f", p.Percentage)
	}
	if p.Remaining.String() != "38000.00" {
		t.Fatalf("expected remaining 38000.00, got %s", p.Remaining)
	}
	if p.Achieved {
		t.Fatal("expected goal not achieved")
	}
}

func TestTrack_Achieved(t *testing.T) {
	p := Track(goal("1000.00", "1000.00"))
	if !p.Achieved || p.Percentage != 100.0 || !p.Remaining.IsZero() {
		t.Fatalf("expected exactly met goal, got %+v", p)
	}
}

func TestTrack_Overfunded(t *testing.T) {
	p := Track(goal("1000.00", "1250.00"))

	if !p.Achieved {
		t.Fatal("expected overfunded goal to be achieved")
	}
	if p.Percentage != 125.0 {
		t.Fatalf("expected 125.0%%, got %.1f", p.Percentage)
	}
	if p.Remaining.String() != "-250.00" {
		t.Fatalf("expected remaining -250.00, got %s", p.Remaining)
	}
}

func TestTrack_ZeroProgress(t *testing.T) {
	g := goal("500.00", "0")
	p := Track(g)
	if p.Percentage != 0 || p.Achieved {
		t.Fatalf("expected untouched goal, got %+v", p)
	}
	if p.Remaining.String() != "500.00" {
		t.Fatalf("expected remaining 500.00, got %s", p.Remaining)
	}
}

func TestTrackAll_PreservesOrder(t *testing.T) {
	ps := TrackAll([]core.SavingsGoal{
		goal("100.00", "50.00"),
		goal("200.00", "200.00"),
	})
	if len(ps) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ps))
	}
	if ps[0].Percentage != 50.0 || ps[1].Percentage != 100.0 {
		t.Fatalf("unexpected order: %.1f, %.1f", ps[0].Percentage, ps[1].Percentage)
	}
}
