package dto

type TagShareOutput struct {
	Tag     string
	Minutes float64
	Percent float64
}

type SnapshotOutput struct {
	Period       string
	Hours        [24]float64
	Tags         []TagShareOutput
	TotalMinutes float64
	SessionCount int
}
