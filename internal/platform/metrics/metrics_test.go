package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CartMutation("add")
	m.CartMutation("add")
	m.CartMutation("clear")
	m.SlotWriteFailed()
	m.CheckoutLink("order")
	m.FilterApplied()
	m.SessionsActive(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CartMutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartMutations.WithLabelValues("clear")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotWriteFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutLinks.WithLabelValues("order")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilterApplications))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) }, "second registration on the same registry collides")
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
