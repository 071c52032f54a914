package api

// ViewerFrame это DTO для веб-зрителя: полный снимок игры, публикуемый
// после каждой рассылки. Зритель пассивен - кадры идут только от сервера.
type ViewerFrame struct {
	// Tick порядковый номер рассылки с момента старта.
	Tick int `json:"tick"`

	// NRows и NCols размеры карты.
	NRows int `json:"nrows"`
	NCols int `json:"ncols"`

	// GoldCollected, GoldLeft и PilesLeft - состояние экономики.
	GoldCollected int `json:"goldCollected"`
	GoldLeft      int `json:"goldLeft"`
	PilesLeft     int `json:"pilesLeft"`

	// Players текущая таблица игроков в порядке входа.
	Players []ScoreRow `json:"players"`

	// Display мастер-грид, сериализованный построчно.
	Display string `json:"display"`

	// Over true в финальном кадре.
	Over bool `json:"over,omitempty"`
}
