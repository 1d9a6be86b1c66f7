package descriptor

import "encoding/xml"

// Drumkit is the root element of drumkit.xml.
type Drumkit struct {
	XMLName     xml.Name   `xml:"drumkit"`
	Version     string     `xml:"version,attr"`
	Name        string     `xml:"name,attr"`
	SampleRate  int        `xml:"samplerate,attr"`
	Metadata    Metadata   `xml:"metadata"`
	Channels    []Channel  `xml:"channels>channel"`
	Instruments []InstrRef `xml:"instruments>instrument"`
}

// Metadata describes the kit. Empty optional fields are left out.
type Metadata struct {
	Title       string `xml:"title"`
	Version     string `xml:"version,omitempty"`
	Description string `xml:"description,omitempty"`
	Notes       string `xml:"notes,omitempty"`
	Author      string `xml:"author,omitempty"`
	License     string `xml:"license,omitempty"`
	SampleRate  int    `xml:"samplerate"`
	Website     string `xml:"website,omitempty"`
	Logo        *Logo  `xml:"logo,omitempty"`
	Created     string `xml:"created"`
}

// Logo references an image file at the kit root.
type Logo struct {
	Src string `xml:"src,attr"`
}

// Channel declares a kit output channel.
type Channel struct {
	Name string `xml:"name,attr"`
}

// InstrRef points the kit at an instrument descriptor.
type InstrRef struct {
	Name        string       `xml:"name,attr"`
	File        string       `xml:"file,attr"`
	ChannelMaps []ChannelMap `xml:"channelmap"`
}

// ChannelMap routes an instrument channel to a kit channel.
type ChannelMap struct {
	In   string `xml:"in,attr"`
	Out  string `xml:"out,attr"`
	Main string `xml:"main,attr,omitempty"`
}

// Instrument is the root element of an instrument descriptor.
type Instrument struct {
	XMLName xml.Name `xml:"instrument"`
	Version string   `xml:"version,attr"`
	Name    string   `xml:"name,attr"`
	Samples []Sample `xml:"samples>sample"`
}

// Sample is one velocity variation of an instrument.
type Sample struct {
	Name       string      `xml:"name,attr"`
	Power      string      `xml:"power,attr"`
	AudioFiles []AudioFile `xml:"audiofile"`
}

// AudioFile binds a kit channel to one channel of a variation file.
type AudioFile struct {
	Channel     string `xml:"channel,attr"`
	File        string `xml:"file,attr"`
	FileChannel int    `xml:"filechannel,attr"`
}

// MIDIMap is the root element of midimap.xml.
type MIDIMap struct {
	XMLName xml.Name  `xml:"midimap"`
	Maps    []NoteMap `xml:"map"`
}

// NoteMap triggers an instrument from a MIDI note.
type NoteMap struct {
	Note   int    `xml:"note,attr"`
	Instr  string `xml:"instr,attr"`
	VelMin int    `xml:"velmin,attr"`
	VelMax int    `xml:"velmax,attr"`
}
