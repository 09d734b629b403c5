package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTestAddress = "0x000000000000000000000000000000000000dEaD"

// newChain serves eth_chainId and answers the IThirdwebContract getters
func newChain(t *testing.T, remoteName string, version uint8) *httptest.Server {
	t.Helper()
	iface, err := abis.Default().Asset(abis.IThirdwebContractAsset)
	require.NoError(t, err)

	answers := map[string][]byte{}
	pack := func(method string, value interface{}) {
		m := iface.Methods[method]
		out, err := m.Outputs.Pack(value)
		require.NoError(t, err)
		answers[hex.EncodeToString(m.ID)] = out
	}
	pack("contractType", blockchain.EncodeBytes32(remoteName))
	pack("contractVersion", version)
	pack("contractURI", "ipfs://QmContract")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var result interface{}
		switch req.Method {
		case "eth_chainId":
			result = "0x89"
		case "eth_call":
			var call struct {
				Input string `json:"input"`
				Data  string `json:"data"`
			}
			if len(req.Params) == 0 || json.Unmarshal(req.Params[0], &call) != nil {
				http.Error(w, "bad eth_call params", http.StatusBadRequest)
				return
			}
			input := strings.TrimPrefix(call.Input, "0x")
			if input == "" {
				input = strings.TrimPrefix(call.Data, "0x")
			}
			if len(input) < 8 {
				http.Error(w, "short calldata", http.StatusBadRequest)
				return
			}
			result = "0x" + hex.EncodeToString(answers[input[:8]])
		default:
			http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"resolve"}, args...))
	return out.String(), err
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	assert.Contains(t, out, `"type": "nft-drop"`)
	assert.Contains(t, out, `"legacyAbi": "DropERC721_V3"`)
}

func TestDetectCommand(t *testing.T) {
	srv := newChain(t, "DropERC1155", 2)

	out, err := run(t, "--rpc", srv.URL, "detect", cliTestAddress)
	require.NoError(t, err)
	assert.Contains(t, out, `"contractType": "edition-drop"`)
	assert.Contains(t, out, `"version": 2`)
}

func TestInitCommand(t *testing.T) {
	srv := newChain(t, "DropERC721", 3)

	out, err := run(t, "--rpc", srv.URL, "init", "--type", "nft-drop", cliTestAddress)
	require.NoError(t, err)
	assert.Contains(t, out, `"abiAsset": "DropERC721_V3"`)
	assert.Contains(t, out, `"chainId": "137"`)

	_, err = run(t, "--rpc", srv.URL, "init", "--type", "token", cliTestAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Contract is not a token")
}

func TestCommandArgumentErrors(t *testing.T) {
	_, err := run(t, "detect", cliTestAddress)
	assert.ErrorContains(t, err, "--rpc is required")

	_, err = run(t, "--rpc", "http://127.0.0.1:0", "detect")
	assert.ErrorContains(t, err, "exactly one ADDRESS")

	_, err = run(t, "--rpc", "http://127.0.0.1:0", "init", "--type", "nope", cliTestAddress)
	assert.ErrorContains(t, err, "unsupported contract type")

	_, err = run(t, "--log-level", "loud", "types")
	assert.Error(t, err)
}

func TestMetadataCommand(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/QmContract":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"CLI Drop","seller_fee_basis_points":250}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(gateway.Close)
	srv := newChain(t, "DropERC721", 3)

	out, err := run(t, "--rpc", srv.URL, "metadata", "--type", "nft-drop", "--gateway", gateway.URL, cliTestAddress)
	require.NoError(t, err)

	var got struct {
		ContractType string                 `json:"contractType"`
		ChainID      string                 `json:"chainId"`
		Metadata     map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "nft-drop", got.ContractType)
	assert.Equal(t, "137", got.ChainID)
	assert.Equal(t, "CLI Drop", got.Metadata["name"])
}

func TestMetadataCommandErrors(t *testing.T) {
	_, err := run(t, "--rpc", "http://127.0.0.1:0", "metadata", cliTestAddress)
	assert.ErrorContains(t, err, "type")

	_, err = run(t, "--rpc", "http://127.0.0.1:0", "metadata", "--type", "nft-drop")
	assert.ErrorContains(t, err, "exactly one ADDRESS")

	missing := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(missing.Close)
	srv := newChain(t, "DropERC721", 3)
	_, err = run(t, "--rpc", srv.URL, "metadata", "--type", "nft-drop", "--gateway", missing.URL, cliTestAddress)
	assert.Error(t, err)
}
