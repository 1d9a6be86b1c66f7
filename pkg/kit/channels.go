package kit

// MapChannels routes every kit channel to a channel of a file with fileChannels channels,
// round-robin: kit channel i reads file channel (i mod fileChannels). A sample with an
// unknown channel count is treated as mono.
func MapChannels(channels, mainChannels []string, fileChannels int) []ChannelRoute {
	if fileChannels < 1 {
		fileChannels = 1
	}

	main := make(map[string]struct{}, len(mainChannels))
	for _, name := range mainChannels {
		main[name] = struct{}{}
	}

	routes := make([]ChannelRoute, len(channels))
	for i, name := range channels {
		_, isMain := main[name]
		routes[i] = ChannelRoute{
			In:          name,
			Out:         name,
			Main:        isMain,
			FileChannel: i%fileChannels + 1,
		}
	}

	return routes
}
