package models

// The methods below let engine.Sort order every record type.

func (o Observation) RegionName() string { return o.Region }
func (o Observation) Magnitude() float64 { return o.Value }

// Growth is always 0: a single observation has no growth.
func (o Observation) Growth() float64 { return 0 }

func (g WindowGrowth) RegionName() string { return g.Region }
func (g WindowGrowth) Magnitude() float64 { return g.TargetValue }
func (g WindowGrowth) Growth() float64    { return g.GrowthPercent }

func (g YearGrowth) RegionName() string { return g.Region }
func (g YearGrowth) Magnitude() float64 { return 0 }
func (g YearGrowth) Growth() float64    { return g.GrowthPercent }

func (t RegionTotal) RegionName() string { return t.Region }
func (t RegionTotal) Magnitude() float64 { return t.Total }
func (t RegionTotal) Growth() float64    { return 0 }
