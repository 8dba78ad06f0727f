package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	c := New(true)
	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)

	data, gotTag, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), data)
	assert.Equal(t, etag, gotTag)
}

func TestExpiredEntryMisses(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("x"), -time.Second)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCacheStillComputesETag(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("x"), time.Minute)
	assert.NotEmpty(t, etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestFlush(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("x"), time.Minute)
	c.Flush()
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
