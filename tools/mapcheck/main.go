// mapcheck - валидатор файлов карт перед запуском сервера.
//
// Проверяет: прямоугольность (все строки равны первой по длине),
// допустимый алфавит рельефа и наличие хотя бы одной клетки пола -
// без нее негде раскладывать золото и спавнить игроков.
//
// Использование: mapcheck map.txt
package main

import (
	"fmt"
	"os"
	"strings"
)

// Авторский файл карты содержит только рельеф: маркеры игроков и
// золота появляются во время игры.
const terrainAlphabet = " -|+.#"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s map.txt\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapcheck: %v\n", err)
		os.Exit(1)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		fmt.Fprintln(os.Stderr, "mapcheck: empty map")
		os.Exit(1)
	}

	ncol := len(lines[0])
	floor := 0
	passages := 0
	bad := 0

	for r, line := range lines {
		if len(line) != ncol {
			fmt.Fprintf(os.Stderr, "mapcheck: line %d is %d chars, want %d\n",
				r+1, len(line), ncol)
			bad++
		}
		for c := 0; c < len(line); c++ {
			ch := line[c]
			if !strings.ContainsRune(terrainAlphabet, rune(ch)) {
				fmt.Fprintf(os.Stderr, "mapcheck: illegal char %q at row %d col %d\n",
					ch, r+1, c+1)
				bad++
			}
			switch ch {
			case '.':
				floor++
			case '#':
				passages++
			}
		}
	}

	if floor == 0 {
		fmt.Fprintln(os.Stderr, "mapcheck: map has no floor cells ('.')")
		bad++
	}

	if bad > 0 {
		fmt.Fprintf(os.Stderr, "mapcheck: %d problem(s) found\n", bad)
		os.Exit(2)
	}

	fmt.Printf("OK: rows=%d cols=%d floor=%d passages=%d\n",
		len(lines), ncol, floor, passages)
}
