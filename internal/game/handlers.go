package game

import (
	"net/netip"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/api"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/grid"
)

// Смещения восьми направлений движения по клавише нижнего регистра.
var directions = map[byte][2]int{
	'h': {0, -1},  // влево
	'l': {0, 1},   // вправо
	'j': {1, 0},   // вниз
	'k': {-1, 0},  // вверх
	'y': {-1, -1}, // влево-вверх
	'u': {-1, 1},  // вправо-вверх
	'b': {1, -1},  // влево-вниз
	'n': {1, 1},   // вправо-вниз
}

// HandleMessage - точка входа для каждой входящей датаграммы.
// Возвращает true, когда игру пора завершать.
//
// Обработчики тотальны: любой мусор во входе деградирует до ответа
// ERROR/QUIT или записи в лог, но не до паники и не до порчи состояния.
func (g *Game) HandleMessage(from netip.AddrPort, msg string) bool {
	switch {
	case strings.HasPrefix(msg, api.CmdPlay+" "):
		return g.handlePlay(from, msg[len(api.CmdPlay)+1:])

	case strings.HasPrefix(msg, api.CmdSpectate):
		return g.handleSpectate(from)

	case strings.HasPrefix(msg, api.CmdKey+" "):
		return g.handleKey(from, msg[len(api.CmdKey)+1:])

	default:
		g.log.WithFields(logrus.Fields{
			"from": from.String(),
			"msg":  msg,
		}).Warn("invalid message")
		g.out.Send(from, api.Error("unknown command"))
		return false
	}
}

// handlePlay регистрирует нового игрока: санирует имя, выдает букву,
// ставит на случайную свободную клетку пола и подтверждает вход парой
// OK + GRID, после чего все клиенты получают свежие состояния.
func (g *Game) handlePlay(from netip.AddrPort, name string) bool {
	if g.joined >= MaxPlayers {
		g.out.Send(from, api.Quit("Game is full: no more players can join."))
		return false
	}
	if nameIsEmpty(name) {
		g.out.Send(from, api.Quit("Sorry: you must provide player's name."))
		return false
	}
	if g.countEmptyRoomSpots() == 0 {
		// Все клетки пола заняты золотом и игроками; спавн невозможен.
		g.out.Send(from, api.Quit("Sorry: no room to spawn."))
		return false
	}

	known, err := grid.New(g.nrow, g.ncol)
	if err != nil {
		g.log.WithError(err).Error("known grid allocation failed")
		return false
	}

	p := &Player{
		Addr:  from,
		Name:  sanitizeName(name),
		Alias: byte('A' + g.joined),
		Known: known,
	}
	p.Row, p.Col = g.randomEmptyRoomSpot()
	g.joined++

	g.players = append(g.players, p)
	g.byAddr[from] = p
	g.master.Update(p.Row, p.Col, p.Alias)

	g.log.WithFields(logrus.Fields{
		"alias": string(p.Alias),
		"name":  p.Name,
		"from":  from.String(),
	}).Info("player joined")

	g.out.Send(from, api.OK(p.Alias))
	g.out.Send(from, api.Grid(g.nrow, g.ncol))
	g.broadcast()
	return false
}

// handleSpectate регистрирует зрителя. Слот один: предыдущий зритель
// получает уведомление о замене.
func (g *Game) handleSpectate(from netip.AddrPort) bool {
	if g.spectator.IsValid() {
		g.out.Send(g.spectator, api.Quit("You have been replaced by a new spectator."))
	}
	g.spectator = from

	g.log.WithField("from", from.String()).Info("spectator joined")

	g.out.Send(from, api.Grid(g.nrow, g.ncol))
	g.broadcast()
	return false
}

// handleKey обрабатывает одно нажатие. Нижний регистр - шаг, верхний -
// повтор в том же направлении до упора, 'Q' - выход. После обработки
// игра завершается, если подобрана последняя куча золота.
func (g *Game) handleKey(from netip.AddrPort, key string) bool {
	if key == "" {
		g.out.Send(from, api.Error("empty keystroke"))
		return false
	}
	ch := key[0]

	if ch == 'Q' {
		g.handleQuit(from)
		return false
	}

	p, ok := g.byAddr[from]
	if !ok {
		g.log.WithField("from", from.String()).Warn("keystroke before join dropped")
		return false
	}

	if d, ok := directions[ch]; ok {
		g.movePlayer(p, p.Row+d[0], p.Col+d[1])
	} else if d, ok := directions[ch+('a'-'A')]; ok && ch >= 'A' && ch <= 'Z' {
		// Повторяем шаг, пока очередная попытка не упрется.
		for g.movePlayer(p, p.Row+d[0], p.Col+d[1]) {
		}
	} else {
		g.log.WithField("key", string(ch)).Info("invalid keystroke")
		g.out.Send(from, api.Error("Unknown Keystroke: "+string(ch)))
	}

	// Единственный штатный повод остановить цикл - золото кончилось.
	return g.pilesLeft == 0
}

// handleQuit завершает сессию отправителя: зритель освобождает слот,
// игрок покидает ростер, его клетка возвращается к рельефу.
func (g *Game) handleQuit(from netip.AddrPort) {
	if g.spectator.IsValid() && from == g.spectator {
		g.out.Send(g.spectator, api.Quit("Thanks for watching!"))
		g.spectator = netip.AddrPort{}
		g.log.Info("spectator left")
	}

	if p, ok := g.byAddr[from]; ok {
		g.out.Send(from, api.Quit("Thanks for playing!"))
		g.master.Update(p.Row, p.Col, g.raw.GetChar(p.Row, p.Col))
		g.removePlayer(p)
		g.log.WithField("alias", string(p.Alias)).Info("player left")
	}

	g.broadcast()
}

// removePlayer выкидывает игрока из ростера, сохраняя порядок входа
// остальных. Его буква - за ним и не переиспользуется.
func (g *Game) removePlayer(p *Player) {
	delete(g.byAddr, p.Addr)
	for i, q := range g.players {
		if q == p {
			g.players = append(g.players[:i], g.players[i+1:]...)
			break
		}
	}
}

// movePlayer пытается передвинуть игрока в (newRow, newCol).
// Возвращает true, если ход состоялся (и повтор имеет смысл).
//
// Три исхода разрешенного хода: обмен местами с другим игроком,
// подбор золота, обычный шаг. Во всех трех покинутая клетка
// восстанавливается по raw-гриду, и все клиенты получают обновление.
func (g *Game) movePlayer(p *Player, newRow, newCol int) bool {
	oldRow, oldCol := p.Row, p.Col

	if !g.master.CanMoveTo(newRow, newCol) {
		return false
	}

	switch {
	case g.master.IsPlayer(newRow, newCol):
		for _, other := range g.players {
			if other.Row == newRow && other.Col == newCol {
				// Обмен позициями: каждый штампует свою букву заново.
				other.Row, other.Col = oldRow, oldCol
				g.master.Update(other.Row, other.Col, other.Alias)

				p.Row, p.Col = newRow, newCol
				g.master.Update(p.Row, p.Col, p.Alias)

				g.broadcast()
				return true
			}
		}
		// Маркер игрока без игрока в ростере - рассинхронизация.
		g.log.WithFields(logrus.Fields{"row": newRow, "col": newCol}).
			Error("occupied cell with no roster entry")
		return false

	case g.master.IsGold(newRow, newCol):
		p.Row, p.Col = newRow, newCol
		g.master.Update(oldRow, oldCol, g.raw.GetChar(oldRow, oldCol))
		g.master.Update(p.Row, p.Col, p.Alias)
		g.pickupGold(p)
		g.broadcast()
		return true

	default:
		// Пол комнаты или проход.
		p.Row, p.Col = newRow, newCol
		g.master.Update(oldRow, oldCol, g.raw.GetChar(oldRow, oldCol))
		g.master.Update(p.Row, p.Col, p.Alias)
		g.broadcast()
		return true
	}
}
