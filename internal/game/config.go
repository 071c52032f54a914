package game

import "time"

// Игровые константы. Значения зафиксированы протоколом и клиентами.
const (
	// MaxNameLength - максимум символов в имени игрока; остальное
	// отрезается при санитизации.
	MaxNameLength = 50

	// MaxPlayers - вместимость ростера. Буквы-псевдонимы выдаются по
	// порядку входа, так что больше 26 игроков быть не может.
	MaxPlayers = 26

	// GoldTotal - суммарное золото на карте в начале игры.
	GoldTotal = 250

	// Количество куч выбирается из [GoldMinNumPiles, GoldMaxNumPiles).
	GoldMinNumPiles = 10
	GoldMaxNumPiles = 30
)

// Config хранит параметры запуска игры.
type Config struct {
	// Seed - зерно генератора. От него зависят количество и раскладка
	// куч золота и точки появления игроков.
	Seed int64
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed: time.Now().UnixNano(),
	}
}
