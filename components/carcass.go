package components

// Carcass is a transient on-map entity spawned when prey dies to a Hunt
// action's on-site kill effect. Scavengeable by the Scavenge action until
// its nutrition is exhausted.
type Carcass struct {
	NutritionRemaining float32
	SpawnedTick        uint64
	SpeciesOrigin      SpeciesID
}
