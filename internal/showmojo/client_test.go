package showmojo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"leaseintel/server/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.ShowMojo.Email = "agent@example.com"
	cfg.ShowMojo.Password = "secret"
	cfg.ShowMojo.BaseURL = baseURL
	cfg.ShowMojo.Timeout = 5
	return NewClient(cfg, logrus.New())
}

func loginHandler(t *testing.T, token string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "agent@example.com", creds["email"])
		assert.Equal(t, "secret", creds["password"])
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}

func TestGetShowings(t *testing.T) {
	var reportQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, "tok-1"))
	mux.HandleFunc("/reports/prospect_showing_data", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		reportQuery = r.URL.RawQuery
		w.Write([]byte(`{"showings": [
			{"id": "s1", "property_address": "12 Oak St", "prospect_name": "Dana", "showing_date": "2024-01-05", "showing_time": "10:00", "status": "scheduled", "confirmed": true, "attended": false},
			{"showing_id": "s2", "address": "34 Elm St", "name": "Lee", "date": "2024-01-06", "time": "14:30", "cancelled": true}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	propertyID := "prop-9"
	result := client.GetShowings(7, &propertyID)

	assert.True(t, result.Success)
	assert.Len(t, result.Showings, 2)
	assert.Contains(t, reportQuery, "property_id=prop-9")
	assert.Contains(t, reportQuery, "start_date="+time.Now().AddDate(0, 0, -7).Format("2006-01-02"))
	assert.Contains(t, reportQuery, "end_date="+time.Now().Format("2006-01-02"))
	assert.Equal(t, time.Now().Format("2006-01-02"), result.EndDate)
	assert.NotEmpty(t, result.SyncTimestamp)

	first := result.Showings[0]
	assert.Equal(t, "s1", first.ShowingID)
	assert.Equal(t, "12 Oak St", *first.PropertyAddress)
	assert.Equal(t, "Dana", *first.ProspectName)
	assert.True(t, first.Confirmed)
	assert.False(t, *first.Attended)
	assert.False(t, first.Cancelled)

	second := result.Showings[1]
	assert.Equal(t, "s2", second.ShowingID)
	assert.Equal(t, "34 Elm St", *second.PropertyAddress)
	assert.Equal(t, "Lee", *second.ProspectName)
	assert.Equal(t, "2024-01-06", *second.ShowingDate)
	assert.Equal(t, "14:30", *second.ShowingTime)
	assert.True(t, second.Cancelled)
	assert.Nil(t, second.Attended)
	assert.Nil(t, second.Notes)
}

func TestGetShowingsNestedEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, "tok-1"))
	mux.HandleFunc("/reports/prospect_showing_data", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"data": [{"id": "a1", "showtime": "2024-01-01T10:00"}]}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.GetShowings(30, nil)

	assert.True(t, result.Success)
	assert.Len(t, result.Showings, 1)
	record := result.Showings[0]
	assert.Equal(t, "a1", record.ShowingID)
	assert.Equal(t, "2024-01-01T10:00", *record.ShowingDate)
	assert.Equal(t, "2024-01-01T10:00", *record.ShowingTime)
}

func TestGetShowingsResponseShapes(t *testing.T) {
	shapes := []struct {
		name string
		body string
	}{
		{"bare list", `[{"id": "x"}]`},
		{"data key", `{"data": [{"id": "x"}]}`},
		{"results key", `{"results": [{"id": "x"}]}`},
		{"rows key", `{"rows": [{"id": "x"}]}`},
		{"value scan", `{"meta": 3, "records": [{"id": "x"}]}`},
	}

	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/auth/login", loginHandler(t, "tok-1"))
			mux.HandleFunc("/reports/prospect_showing_data", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			server := httptest.NewServer(mux)
			defer server.Close()

			client := newTestClient(server.URL)
			result := client.GetShowings(30, nil)
			assert.True(t, result.Success)
			assert.Len(t, result.Showings, 1)
			assert.Equal(t, "x", result.Showings[0].ShowingID)
		})
	}
}

func TestGetShowingsSynthesizedID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, "tok-1"))
	mux.HandleFunc("/reports/prospect_showing_data", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "Dana"}, {"id": 42}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.GetShowings(30, nil)

	assert.True(t, result.Success)
	assert.Equal(t, "showing-0", result.Showings[0].ShowingID)
	assert.Equal(t, "42", result.Showings[1].ShowingID)
}

func TestGetShowingsTokenExpiredRetriesOnce(t *testing.T) {
	logins := 0
	reports := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		logins++
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	})
	mux.HandleFunc("/reports/prospect_showing_data", func(w http.ResponseWriter, r *http.Request) {
		reports++
		if reports == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[{"id": "s1"}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.GetShowings(30, nil)

	assert.True(t, result.Success)
	assert.Equal(t, 2, logins)
	assert.Equal(t, 2, reports)
	assert.Len(t, result.Showings, 1)
}

func TestGetShowingsSecond401IsTerminal(t *testing.T) {
	reports := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	})
	mux.HandleFunc("/reports/prospect_showing_data", func(w http.ResponseWriter, r *http.Request) {
		reports++
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.GetShowings(30, nil)

	assert.False(t, result.Success)
	assert.Equal(t, 2, reports)
	assert.Empty(t, result.Showings)
	assert.NotEmpty(t, result.Error)
}

func TestGetShowingsAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.GetShowings(30, nil)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "authentication failed")
	assert.Empty(t, result.Showings)
}

func TestGetShowingsTransportFailure(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	result := client.GetShowings(30, nil)

	assert.False(t, result.Success)
	assert.Empty(t, result.Showings)
}

func TestTestConnection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, "tok-1"))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	assert.True(t, client.TestConnection())

	bad := newTestClient("http://127.0.0.1:1")
	assert.False(t, bad.TestConnection())
}
