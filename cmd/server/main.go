// Сервер игры nuggets.
//
// Использование: server [-http port] map.txt [seed]
//
// Сервер печатает в stdout порт, на котором ждет игроков; дальше вся
// игра идет по текстовому UDP-протоколу (см. pkg/api). Флаг -http
// дополнительно поднимает пассивный веб-интерфейс наблюдения.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leoxie2000/nuggets-hemlock-main/internal/game"
	"github.com/leoxie2000/nuggets-hemlock-main/internal/network"
	"github.com/leoxie2000/nuggets-hemlock-main/internal/server"
	"github.com/leoxie2000/nuggets-hemlock-main/internal/version"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/grid"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/message"
)

func init() {
	logger.Init()
}

func main() {
	var httpPort string
	flag.StringVar(&httpPort, "http", os.Getenv("NUGGETS_HTTP"),
		"port for the web viewer interface (empty to disable)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [-http port] map.txt [seed]\n", os.Args[0])
		os.Exit(3)
	}

	logger.Log.Info("Starting nuggets server...")
	logger.Log.Info(version.String())

	// Сид: по умолчанию случайный, позиционным аргументом - заданный.
	cfg := game.NewConfig()
	if len(args) == 2 {
		seed, err := strconv.Atoi(args[1])
		if err != nil || seed <= 0 {
			fmt.Fprintln(os.Stderr, "Error: Seed should be a positive integer")
			os.Exit(2)
		}
		cfg.Seed = int64(seed)
	}

	// Карта грузится дважды: master мутирует всю игру, raw хранит
	// нетронутый рельеф для восстановления покинутых клеток.
	mapFile := args[0]
	master, err := grid.Load(mapFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: fail to load map: %s: %v\n", mapFile, err)
		os.Exit(1)
	}
	raw, err := grid.Load(mapFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: fail to load map: %s: %v\n", mapFile, err)
		os.Exit(1)
	}

	messenger, err := message.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: serverPort initialization failed: %v\n", err)
		os.Exit(6)
	}
	defer messenger.Close()

	g, err := game.New(cfg, master, raw, messenger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Опциональный веб-интерфейс наблюдения.
	if httpPort != "" {
		hub := network.NewBroadcaster()
		g.SetFrameSink(hub)
		srv := server.New(hub, httpPort)
		go func() {
			if err := srv.Run(); err != nil {
				logger.Log.WithError(err).Error("viewer interface stopped")
			}
		}()
	}

	// Эту строку читают скрипты запуска - она идет в stdout, не в лог.
	fmt.Printf("Ready to play, waiting at port %d\n", messenger.Port())

	err = messenger.Loop(0, message.Handlers{
		// Оператор завершает игру словом "quit" или EOF (Ctrl-D).
		Input: func(line string) bool {
			if strings.TrimSpace(line) == "quit" {
				return true
			}
			logger.Log.WithField("line", line).Info("console input ignored (type \"quit\" to stop)")
			return false
		},
		Message: g.HandleMessage,
	})
	if err != nil {
		logger.Log.WithError(err).Error("message loop failed")
	}

	// Итоговая таблица и QUIT всем подключенным.
	g.GameOver()
	logger.Log.Info("Done.")
}
