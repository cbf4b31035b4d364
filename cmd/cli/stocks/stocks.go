package stocks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/stockpulse/stockpulse/cmd/cli/config"
	"github.com/stockpulse/stockpulse/cmd/cli/output"
)

type stock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
}

// ==========================
// Init Stocks
// ==========================
func InitStocks(rootCmd *cobra.Command) {

	stocksCmd := &cobra.Command{
		Use:   "stocks",
		Short: "Browse market data",
	}

	stocksCmd.AddCommand(
		listCmd(),
		moversCmd(),
	)

	rootCmd.AddCommand(stocksCmd)
}

// ==========================
// LIST
// ==========================
func listCmd() *cobra.Command {

	var search string
	var sector string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quoted stocks",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			if search != "" {
				q.Set("search", search)
			}
			if sector != "" {
				q.Set("sector", sector)
			}
			path := "/api/stocks"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var stocks []stock
			if err := getJSON(path, &stocks); err != nil {
				fmt.Println(err)
				return
			}
			renderStocks(stocks)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match symbol or name")
	cmd.Flags().StringVar(&sector, "sector", "", "filter by sector")

	return cmd
}

// ==========================
// MOVERS
// ==========================
func moversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movers",
		Short: "Show top gainers and losers",
		Run: func(cmd *cobra.Command, args []string) {
			var overview struct {
				Gainers []stock `json:"gainers"`
				Losers  []stock `json:"losers"`
			}
			if err := getJSON("/api/market/overview", &overview); err != nil {
				fmt.Println(err)
				return
			}

			fmt.Println("Top gainers:")
			renderStocks(overview.Gainers)
			fmt.Println("Top losers:")
			renderStocks(overview.Losers)
		},
	}
}

func getJSON(path string, out any) error {
	resp, err := http.Get(config.APIURL() + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	return json.Unmarshal(raw, out)
}

func renderStocks(stocks []stock) {
	rows := make([][]interface{}, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, []interface{}{
			s.Symbol, s.Name, s.Sector,
			fmt.Sprintf("%.2f", s.Price),
			fmt.Sprintf("%+.2f%%", s.ChangePercent),
			s.Volume,
		})
	}
	output.RenderTable([]string{"Symbol", "Name", "Sector", "Price", "Change", "Volume"}, rows)
}
