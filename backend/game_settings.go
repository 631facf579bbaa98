package main

import "fmt"

type GameSettings struct {
	Color          ColorAssignment `json:"-"`
	PlayerStrategy StrategyName    `json:"player_strategy"`
	CpuStrategy    StrategyName    `json:"cpu_strategy"`
	PlayerAuto     bool            `json:"player_auto"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		Color:          AssignBlack,
		PlayerStrategy: StrategyRandom,
		CpuStrategy:    StrategyRandom,
		PlayerAuto:     false,
	}
}

// SettingsFromConfig reads the start-up seat configuration out of cfg.
func SettingsFromConfig(cfg Config) (GameSettings, error) {
	settings := DefaultGameSettings()
	color, err := ParseColorAssignment(cfg.PlayerColor)
	if err != nil {
		return settings, err
	}
	playerStrategy, err := ParseStrategyName(cfg.PlayerStrategy)
	if err != nil {
		return settings, fmt.Errorf("player strategy: %w", err)
	}
	cpuStrategy, err := ParseStrategyName(cfg.CpuStrategy)
	if err != nil {
		return settings, fmt.Errorf("cpu strategy: %w", err)
	}
	settings.Color = color
	settings.PlayerStrategy = playerStrategy
	settings.CpuStrategy = cpuStrategy
	return settings, nil
}
