package config

// DashboardConfig seeds the initial selection and the scenario catalog.
type DashboardConfig struct {
	DefaultSeason int // 0 selects the latest available season
	DefaultRound  int
	RaceDataPath  string
}

func loadDashboard() DashboardConfig {
	return DashboardConfig{
		DefaultSeason: intEnvOrDefault(envDefaultSeason, 0),
		DefaultRound:  intEnvOrDefault(envDefaultRound, defaultRound),
		RaceDataPath:  envOrDefault(envRaceDataPath, ""),
	}
}
