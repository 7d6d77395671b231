package provider

import "fate-server/internal/game"

var fallbackScenarios = []game.Scenario{
	{
		ID:        "fallback_phone_screen",
		Situation: "Your phone screen cracked and you need to decide what to do.",
		Choices: []game.Choice{
			{ID: "choice_1", Label: "Get it repaired at the local shop", BalanceChange: -800, RiskChange: 5},
			{ID: "choice_2", Label: "Use a screen protector and ignore it", BalanceChange: -100, RiskChange: 0},
			{ID: "choice_3", Label: "Ask parents for help with repair cost", BalanceChange: 0, RiskChange: -10},
		},
	},
	{
		ID:        "fallback_weekend_trip",
		Situation: "Your friends are planning a weekend trip to a nearby hill station.",
		Choices: []game.Choice{
			{ID: "choice_1", Label: "Join the trip and split costs", BalanceChange: -1500, RiskChange: 10},
			{ID: "choice_2", Label: "Skip the trip and study instead", BalanceChange: 0, RiskChange: -5},
			{ID: "choice_3", Label: "Go for just one day to save money", BalanceChange: -600, RiskChange: 5},
		},
	},
	{
		ID:        "fallback_semester_books",
		Situation: "The semester books list is out and you need study materials.",
		Choices: []game.Choice{
			{ID: "choice_1", Label: "Buy new books from the store", BalanceChange: -2000, RiskChange: -5},
			{ID: "choice_2", Label: "Get second-hand books from seniors", BalanceChange: -500, RiskChange: 0},
			{ID: "choice_3", Label: "Use library copies and photocopies", BalanceChange: -200, RiskChange: 5},
		},
	},
	{
		ID:        "fallback_tutoring_job",
		Situation: "A senior offers you a part-time tutoring job for school students.",
		Choices: []game.Choice{
			{ID: "choice_1", Label: "Accept the job for extra income", BalanceChange: 1500, RiskChange: 10},
			{ID: "choice_2", Label: "Decline to focus on studies", BalanceChange: 0, RiskChange: -5},
			{ID: "choice_3", Label: "Try it for one month first", BalanceChange: 800, RiskChange: 5},
		},
	},
	{
		ID:        "fallback_slow_laptop",
		Situation: "Your laptop is running slow and affecting your assignments.",
		Choices: []game.Choice{
			{ID: "choice_1", Label: "Buy a new budget laptop", BalanceChange: -25000, RiskChange: 5},
			{ID: "choice_2", Label: "Get RAM upgrade from local shop", BalanceChange: -2000, RiskChange: 0},
			{ID: "choice_3", Label: "Use college computer lab instead", BalanceChange: 0, RiskChange: -5},
		},
	},
}

// FallbackScenarios возвращает копию встроенного запасного списка.
func FallbackScenarios() []game.Scenario {
	out := make([]game.Scenario, len(fallbackScenarios))
	for i, sc := range fallbackScenarios {
		out[i] = sc.Clone()
	}
	return out
}
