package domain

import "time"

// Waveform names the oscillator shape of a tone.
type Waveform string

const (
	WaveSine   Waveform = "sine"
	WaveSquare Waveform = "square"
)

// Tone is a single audible cue.
type Tone struct {
	Frequency float64 // Hz
	Duration  time.Duration
	Waveform  Waveform
}

// ToneStep schedules a tone relative to the start of its sequence.
type ToneStep struct {
	Delay time.Duration
	Tone  Tone
}

// ToneSequence is an ordered list of tone steps.
type ToneSequence struct {
	Name  string
	Steps []ToneStep
}

// StartSequence is the ascending "tu-tu-tu" played when focus begins.
var StartSequence = ToneSequence{
	Name: "start",
	Steps: []ToneStep{
		{Delay: 0, Tone: Tone{Frequency: 880, Duration: 100 * time.Millisecond, Waveform: WaveSquare}},
		{Delay: 150 * time.Millisecond, Tone: Tone{Frequency: 880, Duration: 100 * time.Millisecond, Waveform: WaveSquare}},
		{Delay: 300 * time.Millisecond, Tone: Tone{Frequency: 1760, Duration: 200 * time.Millisecond, Waveform: WaveSquare}},
	},
}

// EndSequence is the single low tone played when focus ends.
var EndSequence = ToneSequence{
	Name: "end",
	Steps: []ToneStep{
		{Delay: 0, Tone: Tone{Frequency: 440, Duration: 300 * time.Millisecond, Waveform: WaveSine}},
	},
}

// CountdownSequence is the short beep played on each of the final seconds.
var CountdownSequence = ToneSequence{
	Name: "countdown",
	Steps: []ToneStep{
		{Delay: 0, Tone: Tone{Frequency: 880, Duration: 100 * time.Millisecond, Waveform: WaveSine}},
	},
}
