package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeMux(t *testing.T) {
	svc, cleanup := setup(t)
	defer cleanup()

	server := httptest.NewServer(NewServeMux(svc))
	defer server.Close()

	res, err := http.Get(server.URL + "/overview")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var overview Overview
	err = json.NewDecoder(res.Body).Decode(&overview)
	require.NoError(t, err)
	require.Equal(t, int64(4), overview.TotalRunners)

	res, err = http.Get(server.URL + "/partners?pace=8:00&tolerance=15")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var partners []Partner
	err = json.NewDecoder(res.Body).Decode(&partners)
	require.NoError(t, err)
	require.Len(t, partners, 3)

	res, err = http.Get(server.URL + "/partners?pace=nope")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = http.Get(server.URL + "/runners")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
