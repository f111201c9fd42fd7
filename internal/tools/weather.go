// In file: internal/tools/weather.go
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const openWeatherURL = "http://api.openweathermap.org/data/2.5/weather"

// WeatherTool fetches current weather from OpenWeatherMap. It holds its own
// configured HTTP client so external calls are bounded independently of the
// engine's per-call timeout.
type WeatherTool struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

var _ Tool = (*WeatherTool)(nil)

// NewWeatherTool creates the weather tool. apiKey may be the placeholder
// "demo_key"; the tool then serves demo data.
func NewWeatherTool(apiKey string) *WeatherTool {
	return &WeatherTool{
		client:  newToolClient(),
		apiKey:  apiKey,
		baseURL: openWeatherURL,
	}
}

func (t *WeatherTool) Name() string     { return "weather" }
func (t *WeatherTool) Category() string { return "information" }

func (t *WeatherTool) Describe() Description {
	return Description{
		Description: "Get current weather information for any city worldwide",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"location": {
					Type:        "string",
					Description: "City name or location to get weather for",
				},
			},
			Required: []string{"location"},
		},
	}
}

// openWeatherResponse covers the fields we render; the API returns more.
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (t *WeatherTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	location := stringParam(params, "London", "location", "city")

	var payload openWeatherResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     location,
			"appid": t.apiKey,
			"units": "metric",
		}).
		SetResult(&payload).
		Get(t.baseURL)
	if err != nil || !resp.IsSuccess() || len(payload.Weather) == 0 {
		return t.demoData(location), nil
	}

	return map[string]any{
		"location":    payload.Name,
		"temperature": fmt.Sprintf("%g°C", payload.Main.Temp),
		"description": titleCase(payload.Weather[0].Description),
		"humidity":    fmt.Sprintf("%d%%", payload.Main.Humidity),
		"pressure":    fmt.Sprintf("%d hPa", payload.Main.Pressure),
		"wind_speed":  fmt.Sprintf("%g m/s", payload.Wind.Speed),
	}, nil
}

// demoData is the static substitute served when the live call is unavailable.
func (t *WeatherTool) demoData(location string) map[string]any {
	return map[string]any{
		"location":    location,
		"temperature": "22°C",
		"description": "Partly Cloudy",
		"humidity":    "65%",
		"pressure":    "1013 hPa",
		"wind_speed":  "3.2 m/s",
		"status":      "demo_data",
	}
}

// newToolClient builds the shared resty configuration for external tool APIs.
// Some services block default Go HTTP clients, so a User-Agent is always set.
func newToolClient() *resty.Client {
	return resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "MCP-Gateway/1.0")
}
