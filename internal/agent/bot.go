// Package agent содержит headless-бота: внешнего клиента, который
// подключается к серверу по тому же проводному протоколу, что и
// терминальный клиент, и ходит случайным образом. Используется для
// нагрузочных прогонов (tools/loadbot) и ручной обкатки сервера.
package agent

import (
	"fmt"
	"math/rand"
	"net/netip"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/api"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/message"
)

// Клавиши восьми направлений.
const moveKeys = "hljkyubn"

// Bot - один автономный игрок.
type Bot struct {
	Name   string
	Server netip.AddrPort

	// Interval - пауза между ходами; Moves - сколько ходов сделать
	// перед выходом (0 - играть, пока сервер не завершит игру).
	Interval time.Duration
	Moves    int

	rng      *rand.Rand
	log      *logrus.Entry
	sent     int
	quitSent bool
}

// New создает бота с собственным генератором случайных ходов.
func New(name string, server netip.AddrPort, interval time.Duration, moves int, seed int64) *Bot {
	return &Bot{
		Name:     name,
		Server:   server,
		Interval: interval,
		Moves:    moves,
		rng:      rand.New(rand.NewSource(seed)),
		log:      logger.Log.WithFields(logrus.Fields{"component": "bot", "name": name}),
	}
}

// Run подключается и играет до QUIT от сервера. Блокируется; каждому
// боту - своя горутина.
func (b *Bot) Run() error {
	m, err := message.Init()
	if err != nil {
		return fmt.Errorf("bot %s: %w", b.Name, err)
	}
	defer m.Close()

	m.Send(b.Server, api.Play(b.Name))
	b.log.Info("joined")

	// Ходим по таймауту цикла; stdin боту не нужен.
	return m.Loop(b.Interval, message.Handlers{
		Timeout: func() bool {
			return b.step(m)
		},
		Message: b.handleMessage,
	})
}

// step делает один случайный ход. После исчерпания лимита ходов бот
// просит выход и на следующем тике уходит сам - на случай, если
// ответный QUIT потеряется в сети.
func (b *Bot) step(m *message.Messenger) bool {
	if b.quitSent {
		b.log.Debug("no QUIT from server, leaving anyway")
		return true
	}
	if b.Moves > 0 && b.sent >= b.Moves {
		m.Send(b.Server, api.Key('Q'))
		b.quitSent = true
		return false
	}

	key := moveKeys[b.rng.Intn(len(moveKeys))]
	m.Send(b.Server, api.Key(key))
	b.sent++
	return false
}

// handleMessage интересуется только QUIT; остальные ответы сервера
// боту безразличны.
func (b *Bot) handleMessage(from netip.AddrPort, msg string) bool {
	keyword, rest := api.Keyword(msg)
	if keyword == api.MsgQuit {
		b.log.WithField("reason", rest).Info("session ended by server")
		return true
	}
	b.log.WithField("keyword", keyword).Debug("server message")
	return false
}
