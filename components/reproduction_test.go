package components

import "testing"

func TestAgeIsAdult(t *testing.T) {
	a := Age{TicksAlive: 99, MatureAtTicks: 100}
	if a.IsAdult() {
		t.Error("IsAdult() = true, want false before maturity tick")
	}
	a.TicksAlive = 100
	if !a.IsAdult() {
		t.Error("IsAdult() = false, want true at exact maturity tick")
	}
}

func baseEligibleFixture() (ReproductionConfig, Age, ReproductionCooldown, StatsBundle, WellFedStreak) {
	cfg := ReproductionConfig{
		MaturityAgeTicks:     100,
		MinEnergyNormalized:  0.5,
		MinHealthNormalized:  0.5,
		WellFedRequiredTicks: 50,
	}
	age := Age{TicksAlive: 200, MatureAtTicks: 100}
	cooldown := ReproductionCooldown{RemainingTicks: 0}
	stats := StatsBundle{
		Energy: Stat{Current: 0.8, Min: 0, Max: 1},
		Health: Stat{Current: 0.9, Min: 0, Max: 1},
	}
	wellFed := WellFedStreak{Ticks: 60}
	return cfg, age, cooldown, stats, wellFed
}

func TestIsEligibleAllPreconditionsMet(t *testing.T) {
	cfg, age, cooldown, stats, wellFed := baseEligibleFixture()
	if !IsEligible(cfg, age, cooldown, stats, wellFed, false) {
		t.Error("IsEligible() = false, want true when every precondition is met")
	}
}

func TestIsEligibleRejectsPregnant(t *testing.T) {
	cfg, age, cooldown, stats, wellFed := baseEligibleFixture()
	if IsEligible(cfg, age, cooldown, stats, wellFed, true) {
		t.Error("IsEligible() = true while pregnant, want false")
	}
}

func TestIsEligibleRejectsJuvenile(t *testing.T) {
	cfg, _, cooldown, stats, wellFed := baseEligibleFixture()
	age := Age{TicksAlive: 10, MatureAtTicks: 100}
	if IsEligible(cfg, age, cooldown, stats, wellFed, false) {
		t.Error("IsEligible() = true for a juvenile, want false")
	}
}

func TestIsEligibleRejectsActiveCooldown(t *testing.T) {
	cfg, age, _, stats, wellFed := baseEligibleFixture()
	cooldown := ReproductionCooldown{RemainingTicks: 5}
	if IsEligible(cfg, age, cooldown, stats, wellFed, false) {
		t.Error("IsEligible() = true during cooldown, want false")
	}
}

func TestIsEligibleRejectsLowEnergyOrHealth(t *testing.T) {
	cfg, age, cooldown, stats, wellFed := baseEligibleFixture()
	lowEnergy := stats
	lowEnergy.Energy.Current = 0.1
	if IsEligible(cfg, age, cooldown, lowEnergy, wellFed, false) {
		t.Error("IsEligible() = true with energy below minimum, want false")
	}

	lowHealth := stats
	lowHealth.Health.Current = 0.1
	if IsEligible(cfg, age, cooldown, lowHealth, wellFed, false) {
		t.Error("IsEligible() = true with health below minimum, want false")
	}
}

func TestIsEligibleRejectsNotWellFedLongEnough(t *testing.T) {
	cfg, age, cooldown, stats, _ := baseEligibleFixture()
	wellFed := WellFedStreak{Ticks: 10}
	if IsEligible(cfg, age, cooldown, stats, wellFed, false) {
		t.Error("IsEligible() = true before well-fed streak requirement, want false")
	}
}
