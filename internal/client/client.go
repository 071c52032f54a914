package client

import (
	"fmt"
	"net/netip"

	"github.com/sirupsen/logrus"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/api"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/message"
)

// Client держит все состояние терминального клиента. Единственное, что
// он помнит о мире - размеры карты и последнюю сводку по золоту;
// остальное приходит готовыми строками в DISPLAY.
type Client struct {
	server  netip.AddrPort
	display *Display
	log     *logrus.Entry

	// name пустое - подключаемся зрителем.
	name     string
	isPlayer bool

	letter        byte
	nrow          int
	ncol          int
	purse         int
	justCollected int
	goldLeft      int
}

// New создает клиент для данного сервера. Пустое имя - режим зрителя.
func New(server netip.AddrPort, playerName string) *Client {
	return &Client{
		server:   server,
		display:  NewDisplay(),
		log:      logger.Log.WithField("component", "client"),
		name:     playerName,
		isPlayer: playerName != "",
	}
}

// Run подключается, отправляет запрос на вход и крутит цикл сообщений
// до QUIT от сервера или EOF на stdin.
func (c *Client) Run() error {
	m, err := message.Init()
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	defer m.Close()

	if c.isPlayer {
		m.Send(c.server, api.Play(c.name))
	} else {
		m.Send(c.server, api.Spectate())
	}

	c.display.PrintInfo("Connecting... (keys: h l j k y u b n, uppercase for sprint, Q to quit)")

	return m.Loop(0, message.Handlers{
		Input: func(line string) bool {
			return c.handleInput(m, line)
		},
		Message: c.handleMessage,
	})
}

// handleInput отправляет первый символ введенной строки как нажатие.
func (c *Client) handleInput(m *message.Messenger, line string) bool {
	if line == "" {
		return false
	}
	m.Send(c.server, api.Key(line[0]))
	return false
}

// handleMessage разбирает ответ сервера и обновляет экран.
// Возвращает true на QUIT - это конец сессии.
func (c *Client) handleMessage(from netip.AddrPort, msg string) bool {
	keyword, rest := api.Keyword(msg)

	switch keyword {
	case api.MsgOK:
		if rest != "" {
			c.letter = rest[0]
		}
		c.log.WithField("letter", rest).Debug("join accepted")

	case api.MsgGrid:
		nrow, ncol, err := api.ParseGrid(rest)
		if err != nil {
			c.log.WithError(err).Warn("bad GRID message")
			return false
		}
		c.nrow, c.ncol = nrow, ncol

	case api.MsgGold:
		justCollected, purse, left, err := api.ParseGold(rest)
		if err != nil {
			c.log.WithError(err).Warn("bad GOLD message")
			return false
		}
		c.justCollected, c.purse, c.goldLeft = justCollected, purse, left

	case api.MsgDisplay:
		c.display.Render(c.statusLine(), rest)

	case api.MsgError:
		c.display.PrintWarning(rest)

	case api.MsgQuit:
		c.display.PrintInfo(rest)
		return true

	default:
		c.log.WithField("msg", msg).Warn("unknown server message")
	}
	return false
}

// statusLine собирает строку над картой.
func (c *Client) statusLine() string {
	if !c.isPlayer {
		return fmt.Sprintf("Spectator: %d nuggets unclaimed.", c.goldLeft)
	}
	status := fmt.Sprintf("Player %c has %d nuggets (%d nuggets unclaimed).",
		c.letter, c.purse, c.goldLeft)
	if c.justCollected > 0 {
		status += fmt.Sprintf("  GOLD received: %d", c.justCollected)
	}
	return status
}
