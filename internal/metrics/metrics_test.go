package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.UpstreamOK()
	m.UpstreamError()
	m.BuildFailed()
	m.BuildFinished(0.25, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.buildFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.registryArcher))
}

func TestIndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.CacheHit()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.cacheLookups.WithLabelValues("hit")))
}
