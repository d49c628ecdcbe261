package feature_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	names := feature.Names()
	require.GreaterOrEqual(t, len(names), 28)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate feature %s", n)
		seen[n] = true
	}
	assert.Equal(t, feature.URLLength, names[0])
}

func TestDefaults(t *testing.T) {
	vec := feature.Defaults()

	assert.Equal(t, feature.Len(), vec.Len())
	assert.Equal(t, 0.0, vec.Float(feature.URLLength))
	assert.False(t, vec.Bool(feature.HasHTTPS))
	assert.True(t, vec.Value(feature.DomainAgeDays).IsUnknown())
	assert.Equal(t, feature.UnknownInput, vec.Float(feature.DomainAgeDays))
	assert.False(t, vec.Value(feature.EnrichmentSkipped).IsUnknown())
}

func TestBuilder_IsImmutable(t *testing.T) {
	b := feature.NewBuilder().Set(feature.URLLength, feature.Int(10))
	first := b.Build()
	b.Set(feature.URLLength, feature.Int(20))

	assert.Equal(t, 10.0, first.Float(feature.URLLength))
	assert.Equal(t, 20.0, b.Build().Float(feature.URLLength))
}

func TestBuilder_UnknownNamePanics(t *testing.T) {
	assert.Panics(t, func() {
		feature.NewBuilder().Set("not_a_feature", feature.Int(1))
	})
}

func TestVector_Floats(t *testing.T) {
	vec := feature.NewBuilder().
		Set(feature.HasHTTPS, feature.Bool(true)).
		Set(feature.URLLength, feature.Int(42)).
		Build()

	x, err := vec.Floats([]string{feature.URLLength, feature.HasHTTPS, feature.DomainAgeDays})
	require.NoError(t, err)
	assert.Equal(t, []float64{42, 1, -1}, x)

	_, err = vec.Floats([]string{"page_rank"})
	assert.Error(t, err)
}

func TestVector_MarshalJSON(t *testing.T) {
	vec := feature.NewBuilder().Set(feature.HasIPAddress, feature.Bool(true)).Build()

	first, err := json.Marshal(vec)
	require.NoError(t, err)
	second, err := json.Marshal(vec)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.True(t, strings.HasPrefix(string(first), `{"url_length":0,`))
	assert.Contains(t, string(first), `"has_ip_address":true`)
	assert.Contains(t, string(first), `"domain_age_days":null`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Len(t, decoded, feature.Len())
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var values []feature.Value
	require.NoError(t, json.Unmarshal([]byte(`[1.5, true, null]`), &values))

	assert.Equal(t, feature.Number(1.5), values[0])
	assert.Equal(t, feature.Bool(true), values[1])
	assert.True(t, values[2].IsUnknown())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Has Ip Address", feature.Label(feature.HasIPAddress))
	assert.Equal(t, "Url Length", feature.Label(feature.URLLength))
}
