package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// forecastPayload builds an OpenWeatherMap-shaped response body with n
// identical 3-hour periods.
func forecastPayload(n int, temp, tempMax, humidity float64) map[string]any {
	list := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, map[string]any{
			"dt": 1750000000 + int64(i)*10800,
			"main": map[string]any{
				"temp":     temp,
				"temp_max": tempMax,
				"temp_min": temp - 5,
				"humidity": humidity,
			},
		})
	}
	return map[string]any{"list": list}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		json.NewEncoder(w).Encode(forecastPayload(16, 25, 28, 60))
	}))
	t.Cleanup(srv.Close)

	client := NewClient("secret", "Jeddah", "SA", srv.URL, time.Second, nil)
	forecast, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotQuery["q"] != "Jeddah,SA" || gotQuery["appid"] != "secret" || gotQuery["units"] != "metric" {
		t.Errorf("query = %v", gotQuery)
	}
	if len(forecast.List) != 16 {
		t.Fatalf("forecast holds %d periods, want 16", len(forecast.List))
	}
	if forecast.List[0].Main.TempMax != 28 || forecast.List[0].Main.Humidity != 60 {
		t.Errorf("first period = %+v", forecast.List[0].Main)
	}
}

func TestFetchServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("bad-key", "Jeddah", "SA", srv.URL, time.Second, nil)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Error("expected an error on a non-200 response")
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(forecastPayload(16, 40, 42, 30))
	}))
	t.Cleanup(srv.Close)

	client := NewClient("secret", "Jeddah", "SA", srv.URL, time.Second, nil)
	report := client.Report(context.Background())
	if report == nil {
		t.Fatal("Report = nil, want an analyzed snapshot")
	}
	if !report.HeatWave {
		t.Errorf("42 degrees across the window must flag a heat wave: %+v", report)
	}
	if report.GoodFertilizerTime {
		t.Errorf("42 degrees is outside the fertilizer window: %+v", report)
	}
}

func TestReportToleratesFailures(t *testing.T) {
	t.Parallel()

	t.Run("no API key", func(t *testing.T) {
		t.Parallel()

		client := NewClient("", "Jeddah", "SA", "", time.Second, nil)
		if report := client.Report(context.Background()); report != nil {
			t.Errorf("Report without a key = %+v, want nil", report)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		client := NewClient("secret", "Jeddah", "SA", "http://127.0.0.1:1", time.Second, nil)
		if report := client.Report(context.Background()); report != nil {
			t.Errorf("Report against a dead server = %+v, want nil", report)
		}
	})

	t.Run("empty forecast", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"list": []any{}})
		}))
		t.Cleanup(srv.Close)

		client := NewClient("secret", "Jeddah", "SA", srv.URL, time.Second, nil)
		if report := client.Report(context.Background()); report != nil {
			t.Errorf("Report on an empty forecast = %+v, want nil", report)
		}
	})
}
