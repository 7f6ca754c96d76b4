package domain

import "testing"

func TestPeriodOfHour(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hour int
		want Period
	}{
		{0, PeriodNight}, {8, PeriodNight}, {9, PeriodWork}, {12, PeriodWork},
		{17, PeriodWork}, {18, PeriodEvening}, {22, PeriodEvening}, {23, PeriodNight},
	}
	for _, tc := range cases {
		if got := PeriodOfHour(tc.hour); got != tc.want {
			t.Fatalf("PeriodOfHour(%d) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestScore_Bonuses(t *testing.T) {
	t.Parallel()

	// fast network lifts immediate by exactly 2 over its base
	fast := Conditions{Network: NetworkFast, MemoryRatio: 0.9, SuccessRate: 0.5}
	if got := Score(StrategyImmediate, fast); got != BasePriority(StrategyImmediate)+2 {
		t.Fatalf("immediate under fast = %d, want base+2", got)
	}

	// low memory lifts lazy by exactly 1 over its base
	lowMem := Conditions{Network: NetworkSlow, MemoryRatio: 0.3, SuccessRate: 0.5}
	if got := Score(StrategyLazy, lowMem); got != BasePriority(StrategyLazy)+1 {
		t.Fatalf("lazy under low memory = %d, want base+1", got)
	}

	// high success rate lifts smart by exactly 1
	lucky := Conditions{Network: NetworkSlow, MemoryRatio: 0.9, SuccessRate: 0.95}
	if got := Score(StrategySmart, lucky); got != BasePriority(StrategySmart)+1 {
		t.Fatalf("smart under high success = %d, want base+1", got)
	}

	// no bonus applies to an unrelated strategy
	if got := Score(StrategyProgressive, fast); got != BasePriority(StrategyProgressive) {
		t.Fatalf("progressive under fast = %d, want base", got)
	}
}

func TestChoose(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		c    Conditions
		want Strategy
	}{
		{
			"fast network picks immediate",
			Conditions{Network: NetworkFast, MemoryRatio: 0.9, SuccessRate: 0.5},
			StrategyImmediate,
		},
		{
			"high success picks smart",
			Conditions{Network: NetworkSlow, MemoryRatio: 0.9, SuccessRate: 0.95},
			StrategySmart,
		},
		{
			"no signal falls back to smart's base lead",
			Conditions{Network: NetworkSlow, MemoryRatio: 0.9, SuccessRate: 0.5},
			StrategySmart,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, scores := Choose(tc.c)
			if got != tc.want {
				t.Fatalf("Choose = %v (scores %v), want %v", got, scores, tc.want)
			}
			if len(scores) != len(Strategies()) {
				t.Fatalf("scores cover %d strategies, want %d", len(scores), len(Strategies()))
			}
		})
	}
}

func TestChoose_TieGoesToDeclarationOrder(t *testing.T) {
	t.Parallel()

	// fast network and a high success rate put immediate and smart level
	c := Conditions{Network: NetworkFast, MemoryRatio: 0.9, SuccessRate: 0.95}
	got, scores := Choose(c)
	if scores[StrategyImmediate] != scores[StrategySmart] {
		t.Fatalf("expected a tie, got %v", scores)
	}
	if got != StrategyImmediate {
		t.Fatalf("tie broke to %v, want immediate (declared first)", got)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, s := range Strategies() {
		if got, ok := ParseStrategy(string(s)); !ok || got != s {
			t.Fatalf("ParseStrategy(%q) = %v, %v", s, got, ok)
		}
	}
	if _, ok := ParseStrategy("eager"); ok {
		t.Fatal("ParseStrategy accepted an unknown name")
	}
}
