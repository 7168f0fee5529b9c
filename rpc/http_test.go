package rpc

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lumenstake/crypto"
	"lumenstake/native/bank"
	"lumenstake/native/lpstaking"
	"lumenstake/storage"
)

const testToken = "test-token"

func newTestServer(t *testing.T) (*httptest.Server, [20]byte) {
	t.Helper()
	db := storage.NewMemDB()
	engine := lpstaking.NewEngine()
	engine.SetState(lpstaking.NewKeeper(db))
	engine.SetToken(bank.NewLedger(db))

	var admin [20]byte
	admin[0] = 0xAD
	require.NoError(t, engine.Initialize(admin, admin, big.NewInt(1)))

	server := httptest.NewServer(NewServer(engine, testToken).Handler())
	t.Cleanup(server.Close)
	return server, admin
}

func rpcCall(t *testing.T, url, token, method string, params interface{}) (*http.Response, RPCResponse) {
	t.Helper()
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
	}
	if params != nil {
		request["params"] = []interface{}{params}
	}
	body, err := json.Marshal(request)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func bech32Addr(addr [20]byte) string {
	return crypto.NewAddress(crypto.LumePrefix, addr[:]).String()
}

func TestQueryMethodsNeedNoToken(t *testing.T) {
	server, _ := newTestServer(t)

	resp, decoded := rpcCall(t, server.URL, "", "lpstaking_poolCount", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, decoded.Error)

	result, ok := decoded.Result.(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, 0, result["count"])
}

func TestMutatingMethodRequiresToken(t *testing.T) {
	server, admin := newTestServer(t)
	params := addPoolParams{Caller: bech32Addr(admin), PoolID: strings.Repeat("ab", 32)}

	resp, decoded := rpcCall(t, server.URL, "", "lpstaking_addPool", params)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, decoded.Error)
	require.Equal(t, codeUnauthorized, decoded.Error.Code)

	resp, decoded = rpcCall(t, server.URL, "wrong-token", "lpstaking_addPool", params)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, decoded.Error)
}

func TestAddPoolRoundTrip(t *testing.T) {
	server, admin := newTestServer(t)
	params := addPoolParams{Caller: bech32Addr(admin), PoolID: strings.Repeat("ab", 32)}

	resp, decoded := rpcCall(t, server.URL, testToken, "lpstaking_addPool", params)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, decoded.Error)

	result, ok := decoded.Result.(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, 0, result["poolIndex"])

	resp, decoded = rpcCall(t, server.URL, "", "lpstaking_poolId", poolRefParams{PoolIndex: 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, decoded.Error)
	result, ok = decoded.Result.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, strings.Repeat("ab", 32), result["poolId"])
}

func TestEngineErrorsMapToRPCCodes(t *testing.T) {
	server, _ := newTestServer(t)

	var stranger [20]byte
	stranger[0] = 0x99
	params := addPoolParams{Caller: bech32Addr(stranger), PoolID: strings.Repeat("cd", 32)}
	resp, decoded := rpcCall(t, server.URL, testToken, "lpstaking_addPool", params)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, decoded.Error)
	require.Equal(t, codeUnauthorized, decoded.Error.Code)

	resp, decoded = rpcCall(t, server.URL, "", "lpstaking_poolState", poolRefParams{PoolIndex: 7})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, decoded.Error)
	require.Equal(t, codeInvalidParams, decoded.Error.Code)
}

func TestUnknownMethodAndBadTransport(t *testing.T) {
	server, _ := newTestServer(t)

	resp, decoded := rpcCall(t, server.URL, "", "lpstaking_noSuchMethod", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, decoded.Error)
	require.Equal(t, codeMethodNotFound, decoded.Error.Code)

	getResp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, getResp.StatusCode)
}
