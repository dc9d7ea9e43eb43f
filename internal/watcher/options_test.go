package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}
	opts.setDefaults()
	assert.Equal(t, 100*time.Millisecond, opts.SettleDelay)
}

func TestOptions_CustomValues(t *testing.T) {
	opts := Options{SettleDelay: 20 * time.Millisecond}
	opts.setDefaults()
	assert.Equal(t, 20*time.Millisecond, opts.SettleDelay)
}
