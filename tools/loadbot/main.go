// loadbot - нагрузочный прогон сервера: поднимает N ботов, каждый
// подключается игроком и ходит случайно.
//
// Использование: loadbot -host localhost -port 12345 -n 5 -moves 200
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/leoxie2000/nuggets-hemlock-main/internal/agent"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/message"
)

func init() {
	logger.Init()
}

func main() {
	var (
		host     = flag.String("host", "localhost", "server hostname")
		port     = flag.Int("port", 0, "server port (required)")
		n        = flag.Int("n", 3, "number of bots")
		moves    = flag.Int("moves", 0, "moves per bot before quitting (0 = until game over)")
		interval = flag.Duration("interval", 200*time.Millisecond, "delay between moves")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "randomness seed")
	)
	flag.Parse()

	if *port == 0 {
		fmt.Fprintln(os.Stderr, "loadbot: -port is required")
		os.Exit(1)
	}

	server, err := message.SetAddr(*host, strconv.Itoa(*port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loadbot: %v\n", err)
		os.Exit(1)
	}

	logger.Log.Infof("starting %d bots against %s", *n, server)

	var wg sync.WaitGroup
	for i := 0; i < *n; i++ {
		bot := agent.New(
			fmt.Sprintf("bot-%d", i+1),
			server,
			*interval,
			*moves,
			*seed+int64(i),
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bot.Run(); err != nil {
				logger.Log.WithError(err).Errorf("%s failed", bot.Name)
			}
		}()
	}
	wg.Wait()
	logger.Log.Info("all bots finished")
}
