package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReleaseChannel_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ReleaseChannel
	}{
		{"Live", ChannelLive},
		{"live", ChannelLive},
		{"LIVE", ChannelLive},
		{"Test", ChannelTest},
		{"test", ChannelTest},
		{"None", ChannelNone},
		{" none ", ChannelNone},
		{"", ChannelNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseChannel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReleaseChannel_Invalid(t *testing.T) {
	for _, input := range []string{"Beta", "production", "livetest", "0"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseReleaseChannel(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown release channel")
		})
	}
}

func TestReleaseChannel_FormValue(t *testing.T) {
	assert.Equal(t, "1", ChannelLive.FormValue())
	assert.Equal(t, "2", ChannelTest.FormValue())
	assert.Equal(t, "0", ChannelNone.FormValue())
}
