package verdict_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		risk int
		want verdict.Label
	}{
		{0, verdict.LabelLegitimate},
		{39, verdict.LabelLegitimate},
		{40, verdict.LabelSuspicious},
		{69, verdict.LabelSuspicious},
		{70, verdict.LabelPhishing},
		{100, verdict.LabelPhishing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, verdict.LabelFor(tt.risk), "risk %d", tt.risk)
	}
}

func TestNewBatchResult(t *testing.T) {
	items := []verdict.BatchItem{
		{Index: 0, URL: "a", Verdict: &verdict.Verdict{Prediction: verdict.LabelPhishing}},
		{Index: 1, URL: "b", Err: errors.New("invalid url")},
		{Index: 2, URL: "c", Verdict: &verdict.Verdict{Prediction: verdict.LabelLegitimate}},
		{Index: 3, URL: "d", Verdict: &verdict.Verdict{Prediction: verdict.LabelSuspicious}},
	}

	res := verdict.NewBatchResult(items, false)

	assert.Equal(t, 4, res.Count)
	assert.Equal(t, 2, res.ThreatCount)
	assert.Equal(t, verdict.Stats{Phishing: 1, Suspicious: 1, Legitimate: 1, Error: 1}, res.Stats)
}

func TestBatchItem_MarshalJSON(t *testing.T) {
	t.Run("error item keeps url and index", func(t *testing.T) {
		raw, err := json.Marshal(verdict.BatchItem{Index: 2, URL: "not a url", Err: errors.New("invalid url")})
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "not a url", out["url"])
		assert.Equal(t, float64(2), out["index"])
		assert.Equal(t, "error", out["prediction"])
		assert.Equal(t, "invalid url", out["error"])
	})

	t.Run("verdict item is flattened", func(t *testing.T) {
		raw, err := json.Marshal(verdict.BatchItem{
			Index:   0,
			URL:     "https://example.com/",
			Verdict: &verdict.Verdict{URL: "https://example.com/", Prediction: verdict.LabelLegitimate},
		})
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "https://example.com/", out["url"])
		assert.Equal(t, "legitimate", out["prediction"])
		assert.Equal(t, float64(0), out["index"])
	})
}
