package extraction

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Count())
	assert.False(t, r.IsRunning("job_a"))

	_, cancel := context.WithCancel(context.Background())
	r.Add("job_a", cancel)

	assert.True(t, r.IsRunning("job_a"))
	assert.Equal(t, 1, r.Count())

	r.Remove("job_a")
	assert.False(t, r.IsRunning("job_a"))
	assert.Equal(t, 0, r.Count())
}

func TestRegistryCancel(t *testing.T) {
	r := NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	r.Add("job_a", cancel)

	assert.True(t, r.Cancel("job_a"))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	// Cancelled jobs stay registered until the task removes itself
	assert.True(t, r.IsRunning("job_a"))
}

func TestRegistryCancelUnknownJob(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Cancel("missing"))
}

func TestRegistryActiveIDs(t *testing.T) {
	r := NewRegistry()
	_, cancelA := context.WithCancel(context.Background())
	_, cancelB := context.WithCancel(context.Background())
	r.Add("job_a", cancelA)
	r.Add("job_b", cancelB)

	ids := r.ActiveIDs()
	sort.Strings(ids)
	assert.Equal(t, []string{"job_a", "job_b"}, ids)
}

func TestIndependentRegistries(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	_, cancel := context.WithCancel(context.Background())
	a.Add("job_a", cancel)

	assert.True(t, a.IsRunning("job_a"))
	assert.False(t, b.IsRunning("job_a"))
}
