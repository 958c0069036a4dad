package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedis_Key(t *testing.T) {
	t.Parallel()

	require.Equal(t, "goodvibes:content:2026-10-19", NewRedis[string](nil, "goodvibes", time.Hour).key("content:2026-10-19"))
	require.Equal(t, "goodvibes:content:2026-10-19", NewRedis[string](nil, "goodvibes:", time.Hour).key("content:2026-10-19"))
	require.Equal(t, "content:2026-10-19", NewRedis[string](nil, "", time.Hour).key("content:2026-10-19"))
}
