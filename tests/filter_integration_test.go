package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wehubfusion/scriptfilter/pkg/filter"
	"github.com/wehubfusion/scriptfilter/pkg/reading"
)

func TestPluginInformationDescriptor(t *testing.T) {
	info := filter.Info()

	assert.Equal(t, "scriptfilter", info.Name)
	assert.Equal(t, "filter", info.Type)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Interface)

	// The default configuration must be valid category JSON carrying the
	// recognized items with execution disabled out of the box.
	category, err := filter.ParseCategory(info.DefaultConfig)
	require.NoError(t, err)
	require.True(t, category.ItemExists("enable"))
	require.True(t, category.ItemExists("code"))
	assert.False(t, category.BoolValue("enable"))
	assert.Empty(t, category.Value("code"))
}

func TestFilterLifecycleEndToEnd(t *testing.T) {
	// Start from the plugin's own default configuration, the way a host
	// pipeline would, then enable it through reconfiguration.
	category, err := filter.ParseCategory(filter.Info().DefaultConfig)
	require.NoError(t, err)

	var forwarded []*reading.Set
	f, err := filter.New("e2e-filter", category, func(batch *reading.Set) {
		forwarded = append(forwarded, batch)
	}, filter.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer f.Shutdown()

	// Disabled by default: batch passes through untouched.
	first := reading.NewSet(reading.New("TI1", reading.NewIntDatapoint("temperature", 23)))
	f.Ingest(context.Background(), first)
	require.Len(t, forwarded, 1)
	assert.Same(t, first, forwarded[0])

	require.NoError(t, f.Reconfigure(`{
		"enable": {"value": "true"},
		"code": {"value": "reading['temperature'] = reading['temperature'] + 1"}
	}`))

	second := reading.NewSet(reading.New("TI1", reading.NewIntDatapoint("temperature", 23)))
	f.Ingest(context.Background(), second)
	require.Len(t, forwarded, 2)

	out := forwarded[1]
	require.Equal(t, 1, out.Len())
	dp := out.At(0).Datapoint("temperature")
	require.NotNil(t, dp)
	assert.Equal(t, reading.KindInt, dp.Value.Kind())
	assert.Equal(t, int64(24), dp.Value.Int())
}

func TestConcurrentIngestSharesOneEngine(t *testing.T) {
	const batches = 8
	const perBatch = 5

	newFilter := func(name string, sink func(*reading.Set)) *filter.Filter {
		category := filter.Category{
			"enable": {Value: "true"},
			"code":   {Value: "user_data['n'] = (user_data['n'] || 0) + 1; reading['n'] = user_data['n']"},
		}
		f, err := filter.New(name, category, sink, filter.WithLogger(zap.NewNop()))
		require.NoError(t, err)
		return f
	}

	var mu sync.Mutex
	counts := map[string]int{}

	fa := newFilter("instance-a", func(batch *reading.Set) {
		mu.Lock()
		counts["a"] += batch.Len()
		mu.Unlock()
	})
	defer fa.Shutdown()
	fb := newFilter("instance-b", func(batch *reading.Set) {
		mu.Lock()
		counts["b"] += batch.Len()
		mu.Unlock()
	})
	defer fb.Shutdown()

	makeBatch := func() *reading.Set {
		s := reading.NewSet()
		for i := 0; i < perBatch; i++ {
			s.Append(reading.New(fmt.Sprintf("ASSET%d", i),
				reading.NewIntDatapoint("value", int64(i))))
		}
		return s
	}

	var wg sync.WaitGroup
	for i := 0; i < batches; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			fa.Ingest(context.Background(), makeBatch())
		}()
		go func() {
			defer wg.Done()
			fb.Ingest(context.Background(), makeBatch())
		}()
	}
	wg.Wait()

	// Every record of every batch survives: the shared-state counter is
	// per ingestion call, so no record ever yields an empty result.
	assert.Equal(t, batches*perBatch, counts["a"])
	assert.Equal(t, batches*perBatch, counts["b"])
}

func TestTrackingTuplesSerializeToJSON(t *testing.T) {
	// The NATS tracker publishes tuples in this wire form; make sure the
	// log-based default and the wire form agree on the fields.
	type tuple struct {
		Service string `json:"service"`
		Asset   string `json:"asset"`
		Event   string `json:"event"`
	}

	payload, err := json.Marshal(tuple{Service: "f1", Asset: "TI1", Event: filter.TrackingRole})
	require.NoError(t, err)
	assert.JSONEq(t, `{"service":"f1","asset":"TI1","event":"Filter"}`, string(payload))
}
