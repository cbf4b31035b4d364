package main

import (
	"fmt"
	"os"

	"github.com/stockpulse/stockpulse/cmd/cli/auth"
	"github.com/stockpulse/stockpulse/cmd/cli/root"
	"github.com/stockpulse/stockpulse/cmd/cli/stocks"
	"github.com/stockpulse/stockpulse/cmd/cli/watchlist"
)

func main() {
	rootCmd := root.GetRoot()

	auth.InitAuth(rootCmd)
	watchlist.InitWatchlist(rootCmd)
	stocks.InitStocks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
