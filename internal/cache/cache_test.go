package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewKey(t *testing.T) {
	assert.Equal(t, "view:/users?page=0", ViewKey("/users?page=0"))
	assert.Equal(t, "view:/users/u-1", ViewKey("/users/u-1"))
}

func TestClient_NilSafety(t *testing.T) {
	var c *Client

	data, err := c.Get(context.Background(), "view:/users?page=0")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Second))
	assert.NoError(t, c.Delete(context.Background(), "k"))
	assert.NoError(t, c.DeleteByPrefix(context.Background(), "view:"))
}

func TestClient_FailSafeWithoutRedis(t *testing.T) {
	// Points at a port nothing listens on: every call degrades to a miss.
	c := New("localhost:1", "", 0)

	data, err := c.Get(context.Background(), "view:/users?page=0")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(context.Background(), "view:/users?page=0", []byte("{}"), time.Minute))
	assert.NoError(t, c.DeleteByPrefix(context.Background(), "view:/users"))
}

func TestRevalidator_NilClientIsSafe(t *testing.T) {
	r := NewRevalidator(nil)
	assert.NotPanics(t, func() {
		r.Revalidate(context.Background(), "/users")
	})
}
