// In file: internal/tools/crypto.go
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const coinGeckoURL = "https://api.coingecko.com/api/v3/simple/price"

// symbolAliases maps common ticker shorthands to CoinGecko coin IDs.
var symbolAliases = map[string]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"doge": "dogecoin",
	"ada":  "cardano",
	"dot":  "polkadot",
}

// CryptoTool fetches cryptocurrency prices from CoinGecko.
type CryptoTool struct {
	client  *resty.Client
	baseURL string
}

var _ Tool = (*CryptoTool)(nil)

func NewCryptoTool() *CryptoTool {
	return &CryptoTool{client: newToolClient(), baseURL: coinGeckoURL}
}

func (t *CryptoTool) Name() string     { return "crypto" }
func (t *CryptoTool) Category() string { return "finance" }

func (t *CryptoTool) Describe() Description {
	return Description{
		Description: "Get current cryptocurrency prices and 24h changes",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"symbol": {
					Type:        "string",
					Description: "Cryptocurrency symbol (e.g., bitcoin, ethereum, btc, eth)",
				},
			},
			Required: []string{"symbol"},
		},
	}
}

func (t *CryptoTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	symbol := strings.ToLower(stringParam(params, "bitcoin", "symbol", "coin"))
	if canonical, ok := symbolAliases[symbol]; ok {
		symbol = canonical
	}

	// CoinGecko keys the response by coin ID: {"bitcoin": {"usd": ..., ...}}.
	var payload map[string]map[string]float64
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                symbol,
			"vs_currencies":      "usd,eur",
			"include_24hr_change": "true",
		}).
		SetResult(&payload).
		Get(t.baseURL)
	if err == nil && resp.IsSuccess() {
		if coin, ok := payload[symbol]; ok {
			return map[string]any{
				"symbol":     strings.ToUpper(symbol),
				"name":       titleCase(symbol),
				"price_usd":  fmt.Sprintf("$%.2f", coin["usd"]),
				"price_eur":  fmt.Sprintf("€%.2f", coin["eur"]),
				"change_24h": fmt.Sprintf("%.2f%%", coin["usd_24h_change"]),
				"timestamp":  "real-time",
			}, nil
		}
	}

	return t.demoData(symbol), nil
}

// demoPrices back the crypto tool when CoinGecko is unreachable.
var demoPrices = map[string][2]string{
	"bitcoin":  {"$45,123.45", "+2.34%"},
	"ethereum": {"$2,456.78", "-1.23%"},
	"dogecoin": {"$0.08", "+5.67%"},
}

func (t *CryptoTool) demoData(symbol string) map[string]any {
	price, change := "$1,234.56", "+0.00%"
	if demo, ok := demoPrices[symbol]; ok {
		price, change = demo[0], demo[1]
	}
	return map[string]any{
		"symbol":     strings.ToUpper(symbol),
		"name":       titleCase(symbol),
		"price_usd":  price,
		"change_24h": change,
		"status":     "demo_data",
	}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
