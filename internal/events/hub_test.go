package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubPublishOrder(t *testing.T) {
	var h Hub[int]
	var got []string

	h.Subscribe(func(v int) { got = append(got, "a") })
	h.Subscribe(func(v int) { got = append(got, "b") })
	h.Publish(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestHubCancel(t *testing.T) {
	var h Hub[string]
	count := 0

	cancel := h.Subscribe(func(string) { count++ })
	h.Publish("x")
	cancel()
	cancel()
	h.Publish("y")

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, h.Len())
}

func TestHubCancelDuringPublish(t *testing.T) {
	var h Hub[int]
	calls := 0

	var cancel func()
	cancel = h.Subscribe(func(int) {
		calls++
		cancel()
	})
	h.Subscribe(func(int) { calls++ })

	h.Publish(1)
	assert.Equal(t, 2, calls)

	h.Publish(2)
	assert.Equal(t, 3, calls)
}

func TestHubNilAndClear(t *testing.T) {
	var h Hub[int]
	h.Subscribe(nil)()
	assert.Equal(t, 0, h.Len())

	h.Subscribe(func(int) {})
	h.Clear()
	assert.Equal(t, 0, h.Len())
}
