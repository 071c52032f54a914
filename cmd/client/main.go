// Терминальный клиент игры nuggets.
//
// Использование: client hostname port [playername]
//
// Без имени клиент подключается зрителем и видит всю карту; с именем -
// игроком с видимостью, ограниченной сервером. Клавиши вводятся
// построчно: символ + Enter.
package main

import (
	"fmt"
	"os"

	"github.com/leoxie2000/nuggets-hemlock-main/internal/client"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/message"
)

func init() {
	logger.Init()
}

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintf(os.Stderr, "usage: %s hostname port [playername]\n", os.Args[0])
		os.Exit(1)
	}

	server, err := message.SetAddr(os.Args[1], os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad server address: %v\n", err)
		os.Exit(1)
	}

	playerName := ""
	if len(os.Args) == 4 {
		playerName = os.Args[3]
	}

	if err := client.New(server, playerName).Run(); err != nil {
		logger.Log.WithError(err).Error("client failed")
		os.Exit(1)
	}
}
