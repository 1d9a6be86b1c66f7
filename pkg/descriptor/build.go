// Package descriptor builds and writes the XML descriptors of a kit: drumkit.xml, one
// descriptor per instrument and midimap.xml.
package descriptor

import (
	"path"
	"path/filepath"
	"strconv"

	"github.com/drumgizmo-tools/dgkit/pkg/audio"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
)

// Descriptor format versions
const (
	DrumkitVersion    = "1.0"
	InstrumentVersion = "2.0"
)

// File names at the kit root
const (
	DrumkitFile = "drumkit.xml"
	MIDIMapFile = "midimap.xml"
)

// InstrumentFile returns the descriptor path of an instrument relative to the kit root.
func InstrumentFile(instrument string) string {
	return path.Join(instrument, instrument+".xml")
}

// BuildDrumkit returns the drumkit descriptor of a run; created is the rendered
// creation line.
func BuildDrumkit(rs *state.RunState, created string) *Drumkit {
	cfg := rs.Config()

	doc := &Drumkit{
		Version:    DrumkitVersion,
		Name:       cfg.Name,
		SampleRate: cfg.SampleRate,
		Metadata: Metadata{
			Title:       cfg.Name,
			Version:     cfg.Version,
			Description: cfg.Description,
			Notes:       cfg.Notes,
			Author:      cfg.Author,
			License:     cfg.License,
			SampleRate:  cfg.SampleRate,
			Website:     cfg.Website,
			Created:     created,
		},
		Channels:    make([]Channel, len(cfg.Channels)),
		Instruments: make([]InstrRef, 0, rs.Len()),
	}

	if cfg.Logo != "" {
		doc.Metadata.Logo = &Logo{Src: filepath.Base(cfg.Logo)}
	}

	for i, name := range cfg.Channels {
		doc.Channels[i] = Channel{Name: name}
	}

	for _, in := range rs.Instruments() {
		ref := InstrRef{
			Name:        in.Sample.Instrument,
			File:        InstrumentFile(in.Sample.Instrument),
			ChannelMaps: make([]ChannelMap, len(in.Routes)),
		}

		for i, route := range in.Routes {
			ref.ChannelMaps[i] = ChannelMap{In: route.In, Out: route.Out}
			if route.Main {
				ref.ChannelMaps[i].Main = "true"
			}
		}

		doc.Instruments = append(doc.Instruments, ref)
	}

	return doc
}

// BuildInstrument returns the descriptor of one instrument.
func BuildInstrument(in state.Instrument) *Instrument {
	doc := &Instrument{
		Version: InstrumentVersion,
		Name:    in.Sample.Instrument,
		Samples: make([]Sample, len(in.Variations)),
	}

	for i, v := range in.Variations {
		sample := Sample{
			Name:       v.SampleName(in.Sample.Instrument),
			Power:      strconv.FormatFloat(v.Power, 'f', 6, 64),
			AudioFiles: make([]AudioFile, len(in.Routes)),
		}

		file := path.Join(audio.SamplesDir, v.FileName(in.Sample.Instrument, in.Sample.Extension()))

		for j, route := range in.Routes {
			sample.AudioFiles[j] = AudioFile{
				Channel:     route.In,
				File:        file,
				FileChannel: route.FileChannel,
			}
		}

		doc.Samples[i] = sample
	}

	return doc
}

// BuildMIDIMap returns the note map of a run, one entry per instrument.
func BuildMIDIMap(rs *state.RunState) *MIDIMap {
	doc := &MIDIMap{Maps: make([]NoteMap, 0, rs.Len())}

	for _, in := range rs.Instruments() {
		doc.Maps = append(doc.Maps, NoteMap{
			Note:   in.Note,
			Instr:  in.Sample.Instrument,
			VelMin: kit.VelocityMin,
			VelMax: kit.VelocityMax,
		})
	}

	return doc
}
