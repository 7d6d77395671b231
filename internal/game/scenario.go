package game

// Choice - один из вариантов решения внутри сценария.
// Отсутствующие дельты считаются нулевыми.
type Choice struct {
	ID            string `json:"id" yaml:"id"`
	Label         string `json:"label" yaml:"label"`
	BalanceChange int64  `json:"balanceChange" yaml:"balanceChange"`
	SavingsChange int64  `json:"savingsChange" yaml:"savingsChange"`
	RiskChange    int    `json:"riskChange" yaml:"riskChange"`
	StressChange  int    `json:"stressChange,omitempty" yaml:"stressChange"`
	FortuneChange int    `json:"fortuneChange,omitempty" yaml:"fortuneChange"`
}

// Scenario - финансовая дилемма месяца. Situation может содержать простую
// inline-разметку для выделения.
type Scenario struct {
	ID        string   `json:"id,omitempty" yaml:"id"`
	Situation string   `json:"situation" yaml:"situation"`
	Choices   []Choice `json:"choices" yaml:"choices"`
}

// Clone копирует сценарий вместе со срезом вариантов.
func (sc Scenario) Clone() Scenario {
	out := sc
	out.Choices = make([]Choice, len(sc.Choices))
	copy(out.Choices, sc.Choices)
	return out
}

// FindChoice ищет вариант по id.
func (sc Scenario) FindChoice(id string) (Choice, bool) {
	for _, c := range sc.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}
