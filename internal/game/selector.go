package game

// SelectScenario возвращает сценарий месяца: catalog[(month-1) mod len].
// Месяцы меньше 1 трактуются как первый. Возвращается копия, чтобы
// вызывающий код не мог испортить общий каталог.
func SelectScenario(month int, catalog *Catalog) Scenario {
	if month < InitialMonth {
		month = InitialMonth
	}
	idx := (month - 1) % catalog.Len()
	return catalog.scenarios[idx].Clone()
}
