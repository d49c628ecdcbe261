package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRoot("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", "testdata"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestScanCommand_JSON(t *testing.T) {
	out, err := run(t, "", "scan", "-o", "json", "http://192.168.1.1/login")
	require.NoError(t, err)

	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "http://192.168.1.1/login", v["normalized_url"])
	assert.Equal(t, "logistic_regression", v["model_used"])
	assert.Contains(t, []interface{}{"phishing", "suspicious", "legitimate"}, v["prediction"])
}

func TestScanCommand_Table(t *testing.T) {
	out, err := run(t, "", "scan", "example.com", "http://paypal-secure-login.xyz/verify")
	require.NoError(t, err)
	assert.Contains(t, out, "PREDICTION")
	assert.Contains(t, out, "http://paypal-secure-login.xyz/verify")
	assert.Contains(t, out, "example.com")
}

func TestScanCommand_RequiresURL(t *testing.T) {
	_, err := run(t, "", "scan")
	assert.Error(t, err)
}

func TestScanCommand_UnknownOutput(t *testing.T) {
	_, err := run(t, "", "scan", "-o", "yaml", "example.com")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestBatchCommand_FileTruncatedToUploadCap(t *testing.T) {
	out, err := run(t, "", "batch", "-o", "json", "--file", "testdata/urls.txt")
	require.NoError(t, err)

	var res struct {
		Count     int  `json:"count"`
		Truncated bool `json:"truncated"`
		Results   []struct {
			Index int    `json:"index"`
			URL   string `json:"url"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Count)
	assert.True(t, res.Truncated)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "http://paypal-secure-login.xyz/verify", res.Results[0].URL)
	assert.Equal(t, "http://192.168.1.1/login", res.Results[1].URL)
	assert.Equal(t, "https://example.com/", res.Results[2].URL)
}

func TestBatchCommand_Stdin(t *testing.T) {
	out, err := run(t, "http://192.168.1.1/login\nhttps://example.com/\n", "batch", "--file", "-", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "scanned 1")
	assert.Contains(t, out, "list truncated")
}

func TestBatchCommand_EmptyList(t *testing.T) {
	_, err := run(t, "# nothing\n\n", "batch", "--file", "-")
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestFeaturesCommand(t *testing.T) {
	out, err := run(t, "", "features", "-o", "json", "http://192.168.1.1/login")
	require.NoError(t, err)

	var report struct {
		Features map[string]interface{} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, true, report.Features["has_ip_address"])
	assert.Equal(t, true, report.Features["enrichment_skipped"])
}

func TestModelCommand(t *testing.T) {
	out, err := run(t, "", "model")
	require.NoError(t, err)
	assert.Contains(t, out, "mode:      model")
	assert.Contains(t, out, "logistic_regression")
	assert.Contains(t, out, "f1 0.912")
}
