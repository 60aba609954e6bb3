package forge

import (
	"fmt"
	"strings"
)

// ReleaseChannel is the distribution track a build is published under.
type ReleaseChannel string

const (
	// ChannelLive publishes the build to all subscribers.
	ChannelLive ReleaseChannel = "Live"

	// ChannelTest publishes the build to the test track only.
	ChannelTest ReleaseChannel = "Test"

	// ChannelNone uploads the build without assigning any channel.
	ChannelNone ReleaseChannel = "None"
)

// formValue maps each channel to the option value used by the build-management
// combobox on the storefront.
var formValues = map[ReleaseChannel]string{
	ChannelLive: "1",
	ChannelTest: "2",
	ChannelNone: "0",
}

// ParseReleaseChannel validates a configured channel string. Matching is
// case-insensitive. Unknown values are a configuration error and must be
// rejected before any browser interaction.
func ParseReleaseChannel(s string) (ReleaseChannel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live":
		return ChannelLive, nil
	case "test":
		return ChannelTest, nil
	case "none", "":
		return ChannelNone, nil
	}
	return "", fmt.Errorf("unknown release channel %q (must be Live, Test, or None)", s)
}

// FormValue returns the option value submitted for this channel.
func (c ReleaseChannel) FormValue() string {
	return formValues[c]
}

func (c ReleaseChannel) String() string {
	return string(c)
}
