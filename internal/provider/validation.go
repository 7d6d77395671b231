package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"fate-server/internal/game"

	"github.com/go-playground/validator/v10"
)

// GeneratedChoiceCount - ровно столько вариантов должно быть в сгенерированном сценарии.
const GeneratedChoiceCount = 3

// ValidationResult - результат проверки ответа генератора: Valid или Invalid.
type ValidationResult interface {
	isValidationResult()
}

// Valid - ответ прошел проверку формы.
type Valid struct {
	Scenario game.Scenario
}

// Invalid - ответ отклонен, Reason описывает первую найденную проблему.
type Invalid struct {
	Reason string
}

func (Valid) isValidationResult()   {}
func (Invalid) isValidationResult() {}

// Числовые поля - указатели: отсутствие поля отличается от нуля.
// Строка вместо числа (или наоборот) ломает декодирование и отклоняется.
// Границы не дают значению переполнить int64 при округлении.
type generatedChoice struct {
	ID            string   `json:"id" validate:"required"`
	Label         string   `json:"label" validate:"required"`
	BalanceChange *float64 `json:"balanceChange" validate:"required,min=-1000000000,max=1000000000"`
	RiskChange    *float64 `json:"riskChange" validate:"required,min=-100,max=100"`
	SavingsChange *float64 `json:"savingsChange" validate:"omitempty,min=-1000000000,max=1000000000"`
}

type generatedScenario struct {
	Situation string            `json:"situation" validate:"required"`
	Choices   []generatedChoice `json:"choices" validate:"len=3,unique=ID,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет форму JSON-ответа генератора и превращает его в сценарий.
func Validate(raw []byte) ValidationResult {
	var gs generatedScenario
	if err := json.Unmarshal(raw, &gs); err != nil {
		return Invalid{Reason: "malformed scenario: " + err.Error()}
	}
	gs.Situation = strings.TrimSpace(gs.Situation)
	for i := range gs.Choices {
		gs.Choices[i].ID = strings.TrimSpace(gs.Choices[i].ID)
		gs.Choices[i].Label = strings.TrimSpace(gs.Choices[i].Label)
	}

	if err := validate.Struct(gs); err != nil {
		return Invalid{Reason: describeValidationError(err)}
	}

	sc := game.Scenario{
		Situation: gs.Situation,
		Choices:   make([]game.Choice, 0, len(gs.Choices)),
	}
	for _, ch := range gs.Choices {
		c := game.Choice{
			ID:            ch.ID,
			Label:         ch.Label,
			BalanceChange: roundAmount(*ch.BalanceChange),
			RiskChange:    int(roundAmount(*ch.RiskChange)),
		}
		if ch.SavingsChange != nil {
			c.SavingsChange = roundAmount(*ch.SavingsChange)
		}
		sc.Choices = append(sc.Choices, c)
	}
	return Valid{Scenario: sc}
}

func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}

func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "len":
		return fmt.Sprintf("expected exactly %s choices, got %d", fe.Param(), reflectLen(fe.Value()))
	case "unique":
		return "choice ids must be unique"
	case "min", "max":
		return fmt.Sprintf("%s is out of range", fe.Namespace())
	default:
		return fmt.Sprintf("%s failed %q check", fe.Namespace(), fe.Tag())
	}
}

func reflectLen(v any) int {
	if choices, ok := v.([]generatedChoice); ok {
		return len(choices)
	}
	return -1
}
