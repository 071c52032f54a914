// Package game содержит авторитетное состояние игры и его переходы.
//
// Весь пакет рассчитан на один логический поток: мутации происходят
// только из обработчиков, которые message.Loop вызывает последовательно,
// поэтому блокировок здесь нет.
package game

import (
	"fmt"
	"math/rand"
	"net/netip"

	"github.com/sirupsen/logrus"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/api"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/grid"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
)

// Sender отправляет одно сообщение по адресу. Реализуется
// message.Messenger; в тестах подменяется записывающей заглушкой.
type Sender interface {
	Send(to netip.AddrPort, msg string)
}

// FrameSink принимает кадры для веб-зрителей. Реализуется
// network.Broadcaster. Публикация не должна блокировать.
type FrameSink interface {
	Publish(frame api.ViewerFrame)
}

// Game - единственный агрегат состояния.
//
// Инварианты: goldCollected + goldLeft == GoldTotal; число игроков в
// ростере не превышает MaxPlayers; каждая занятая клетка мастер-грида
// соответствует ровно одному живому игроку.
type Game struct {
	cfg Config
	log *logrus.Entry
	rng *rand.Rand
	out Sender

	// master - что сейчас занято (источник истины для отрисовки и
	// коллизий); raw - только рельеф, по нему восстанавливается клетка,
	// когда игрок ее покидает.
	master *grid.Grid
	raw    *grid.Grid
	nrow   int
	ncol   int

	// Экономика золота.
	goldCollected int
	goldLeft      int
	pilesLeft     int

	// Ростер: порядок входа + поиск по адресу за O(1).
	players []*Player
	byAddr  map[netip.AddrPort]*Player
	// joined монотонно растет и задает букву-псевдоним; буквы ушедших
	// игроков не переиспользуются.
	joined int

	spectator netip.AddrPort

	// Веб-зрители (опционально).
	sink FrameSink
	tick int
	over bool
}

// New создает игру поверх загруженной карты и раскладывает золото.
// master и raw должны быть независимыми гридами одной и той же карты.
func New(cfg Config, master, raw *grid.Grid, out Sender) (*Game, error) {
	if master == nil || raw == nil {
		return nil, fmt.Errorf("game: nil grid")
	}
	if master.NRows() != raw.NRows() || master.NCols() != raw.NCols() {
		return nil, fmt.Errorf("game: master %dx%d and raw %dx%d disagree",
			master.NRows(), master.NCols(), raw.NRows(), raw.NCols())
	}

	g := &Game{
		cfg:       cfg,
		log:       logger.Log.WithField("component", "game"),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		out:       out,
		master:    master,
		raw:       raw,
		nrow:      master.NRows(),
		ncol:      master.NCols(),
		byAddr:    make(map[netip.AddrPort]*Player),
		spectator: netip.AddrPort{},
	}

	if err := g.dropGold(); err != nil {
		return nil, err
	}
	return g, nil
}

// SetFrameSink подключает рассылку кадров веб-зрителям.
func (g *Game) SetFrameSink(sink FrameSink) {
	g.sink = sink
}

// NumPlayers возвращает текущий размер ростера.
func (g *Game) NumPlayers() int {
	return len(g.players)
}

// GoldLeft возвращает еще не подобранное золото.
func (g *Game) GoldLeft() int {
	return g.goldLeft
}

// dropGold выбирает количество куч из [GoldMinNumPiles, GoldMaxNumPiles)
// и раскладывает каждую на случайную свободную клетку пола.
func (g *Game) dropGold() error {
	piles := GoldMinNumPiles + g.rng.Intn(GoldMaxNumPiles-GoldMinNumPiles)

	if spots := g.countEmptyRoomSpots(); spots < piles+1 {
		// +1: хотя бы одна клетка должна остаться под спавн игрока.
		return fmt.Errorf("game: map has %d floor cells, need %d for gold piles", spots, piles+1)
	}

	g.pilesLeft = piles
	g.goldCollected = 0
	g.goldLeft = GoldTotal

	for i := 0; i < piles; i++ {
		row, col := g.randomEmptyRoomSpot()
		g.master.Update(row, col, '*')
	}

	g.log.WithFields(logrus.Fields{"piles": piles, "gold": GoldTotal}).Info("gold dropped")
	return nil
}

// randomEmptyRoomSpot возвращает случайную клетку '.', отбрасывая
// занятые кандидаты. Вызывающий обязан убедиться, что такая клетка есть.
func (g *Game) randomEmptyRoomSpot() (row, col int) {
	row = g.rng.Intn(g.nrow)
	col = g.rng.Intn(g.ncol)
	for !g.master.IsEmptyRoomSpot(row, col) {
		row = g.rng.Intn(g.nrow)
		col = g.rng.Intn(g.ncol)
	}
	return row, col
}

func (g *Game) countEmptyRoomSpots() int {
	n := 0
	for r := 0; r < g.nrow; r++ {
		for c := 0; c < g.ncol; c++ {
			if g.master.IsEmptyRoomSpot(r, c) {
				n++
			}
		}
	}
	return n
}

// pickupGold выдает игроку содержимое кучи, на которую он наступил.
// Пока куч больше одной, размер кучи случаен в [1, goldLeft-pilesLeft+1];
// последняя куча отдает весь остаток, чтобы сумма сошлась точно.
func (g *Game) pickupGold(p *Player) {
	var gold int
	if g.pilesLeft != 1 {
		maxPerPile := g.goldLeft - g.pilesLeft + 1
		gold = 1 + g.rng.Intn(maxPerPile)
	} else {
		gold = g.goldLeft
	}

	p.Gold += gold
	p.JustCollected = gold

	g.goldCollected += gold
	g.goldLeft -= gold
	g.pilesLeft--

	g.log.WithFields(logrus.Fields{
		"alias": string(p.Alias),
		"gold":  gold,
		"left":  g.goldLeft,
		"piles": g.pilesLeft,
	}).Info("gold picked up")
}

// broadcast рассылает всем подключенным их актуальное состояние:
// зрителю - сводку и полный мастер-грид, каждому игроку - персональную
// сводку и срез карты, ограниченный его видимостью.
func (g *Game) broadcast() {
	if g.spectator.IsValid() {
		g.out.Send(g.spectator, api.Gold(0, 0, g.goldLeft))
		g.out.Send(g.spectator, api.Display(g.master.String()))
	}

	for _, p := range g.players {
		g.out.Send(p.Addr, api.Gold(p.JustCollected, p.Gold, g.goldLeft))
		p.JustCollected = 0

		grid.SetVisibility(g.master, g.raw, p.Known, p.Row, p.Col)
		g.out.Send(p.Addr, api.Display(p.Known.String()))
	}

	g.publishFrame()
}

// scoreRows возвращает таблицу игроков в порядке входа.
func (g *Game) scoreRows() []api.ScoreRow {
	rows := make([]api.ScoreRow, 0, len(g.players))
	for _, p := range g.players {
		rows = append(rows, api.ScoreRow{Alias: p.Alias, Gold: p.Gold, Name: p.Name})
	}
	return rows
}

// publishFrame отдает снимок игры веб-зрителям, если они подключены.
func (g *Game) publishFrame() {
	if g.sink == nil {
		return
	}
	g.tick++
	g.sink.Publish(api.ViewerFrame{
		Tick:          g.tick,
		NRows:         g.nrow,
		NCols:         g.ncol,
		GoldCollected: g.goldCollected,
		GoldLeft:      g.goldLeft,
		PilesLeft:     g.pilesLeft,
		Players:       g.scoreRows(),
		Display:       g.master.String(),
		Over:          g.over,
	})
}

// GameOver рассылает финальное QUIT-сообщение с таблицей результатов
// всем подключенным и закрывает игру. Вызывается после выхода из
// message.Loop - как по сбору последней кучи, так и по команде оператора.
func (g *Game) GameOver() {
	g.over = true
	summary := api.GameOver(g.scoreRows())

	if g.spectator.IsValid() {
		g.out.Send(g.spectator, summary)
	}
	for _, p := range g.players {
		g.out.Send(p.Addr, summary)
	}

	g.publishFrame()
	g.log.WithFields(logrus.Fields{
		"collected": g.goldCollected,
		"players":   len(g.players),
	}).Info("game over")
}
