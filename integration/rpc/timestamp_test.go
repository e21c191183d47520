package rpc_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

func TestTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Unix(1714557600, 500).UTC()
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2024-05-01T10:00:00.0000005Z"`, want},
		{"object", `{"seconds":1714557600,"nanos":500}`, want},
		{"object with string seconds", `{"seconds":"1714557600","nanos":500}`, want},
		{"epoch seconds", `1714557600`, want.Truncate(time.Second)},
		{"null", `null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var ts rpc.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	var ts rpc.Timestamp
	require.ErrorIs(t, json.Unmarshal([]byte(`"yesterday"`), &ts), rpc.ErrInvalidTimestamp)
}
