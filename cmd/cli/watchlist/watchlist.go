package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/stockpulse/stockpulse/cmd/cli/config"
	"github.com/stockpulse/stockpulse/cmd/cli/output"
)

type item struct {
	Symbol      string    `json:"symbol"`
	CompanyName string    `json:"companyName"`
	AddedAt     time.Time `json:"addedAt"`
}

// ==========================
// Init Watchlist
// ==========================
func InitWatchlist(rootCmd *cobra.Command) {

	watchlistCmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage your watchlist",
	}

	watchlistCmd.AddCommand(
		listCmd(),
		addCmd(),
		removeCmd(),
	)

	rootCmd.AddCommand(watchlistCmd)
}

// ==========================
// LIST
// ==========================
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show tracked symbols",
		Run: func(cmd *cobra.Command, args []string) {
			items, err := doRequest("GET", "/api/watchlist", nil)
			if err != nil {
				fmt.Println(err)
				return
			}
			renderItems(items)
		},
	}
}

// ==========================
// ADD
// ==========================
func addCmd() *cobra.Command {

	var symbol string
	var companyName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a symbol",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]string{
				"symbol":      symbol,
				"companyName": companyName,
			}
			body, _ := json.Marshal(payload)

			items, err := doRequest("POST", "/api/watchlist", bytes.NewBuffer(body))
			if err != nil {
				fmt.Println(err)
				return
			}
			renderItems(items)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "ticker symbol")
	cmd.Flags().StringVar(&companyName, "company", "", "company display name")

	return cmd
}

// ==========================
// REMOVE
// ==========================
func removeCmd() *cobra.Command {

	var symbol string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Stop tracking a symbol",
		Run: func(cmd *cobra.Command, args []string) {
			items, err := doRequest("DELETE", "/api/watchlist/"+symbol, nil)
			if err != nil {
				fmt.Println(err)
				return
			}
			renderItems(items)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "ticker symbol")

	return cmd
}

func doRequest(method, path string, body io.Reader) ([]item, error) {
	token, err := config.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("please login first")
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	var items []item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func renderItems(items []item) {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{it.Symbol, it.CompanyName, it.AddedAt.Format("2006-01-02 15:04")})
	}
	output.RenderTable([]string{"Symbol", "Company", "Added"}, rows)
}
