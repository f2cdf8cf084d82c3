// Package midi renders a drum sheet as a Standard MIDI File.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DrumChannel is General MIDI channel 10, zero based.
const DrumChannel = 9

// FileExtension is appended to exported MIDI files.
const FileExtension = ".mid"

// Options controls resolution and dynamics of the exported file.
type Options struct {
	TicksPerQuarter uint16
	Velocity        uint8
	GhostVelocity   uint8
	AccentVelocity  uint8
}

// DefaultOptions returns 480 ticks per quarter and moderate velocities.
func DefaultOptions() Options {
	return Options{
		TicksPerQuarter: 480,
		Velocity:        96,
		GhostVelocity:   40,
		AccentVelocity:  120,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TicksPerQuarter == 0 {
		o.TicksPerQuarter = def.TicksPerQuarter
	}
	if o.Velocity == 0 {
		o.Velocity = def.Velocity
	}
	if o.GhostVelocity == 0 {
		o.GhostVelocity = def.GhostVelocity
	}
	if o.AccentVelocity == 0 {
		o.AccentVelocity = def.AccentVelocity
	}
	return o
}

// General MIDI percussion keys.
var drumKeys = map[sheet.Part]uint8{
	sheet.Crash:   49,
	sheet.Ride:    51,
	sheet.HiHat:   42,
	sheet.HighTom: 50,
	sheet.MidTom:  47,
	sheet.LowTom:  45,
	sheet.Snare:   38,
	sheet.Bass:    36,
}

const openHiHatKey = 46

// KeyFor returns the General MIDI key of a note.
func KeyFor(n sheet.DrumNote) uint8 {
	if n.Part == sheet.HiHat && n.IsOpen {
		return openHiHatKey
	}
	return drumKeys[n.Part]
}

// VelocityFor picks the velocity for a note; accent wins over ghost.
func (o Options) VelocityFor(n sheet.DrumNote) uint8 {
	switch {
	case n.HasAccent:
		return o.AccentVelocity
	case n.IsGhost:
		return o.GhostVelocity
	default:
		return o.Velocity
	}
}

// PlaybackOrder lists measure indexes in playing order. Every span closed by
// a repeat-end barline is played twice; the span starts at the latest
// repeat-start, or right after the previous repeat-end.
func PlaybackOrder(s *sheet.Sheet) []int {
	order := make([]int, 0, len(s.Measures))
	start := 0
	for i, m := range s.Measures {
		if m.HasRepeatStart {
			start = i
		}
		order = append(order, i)
		if m.HasRepeatEnd {
			for j := start; j <= i; j++ {
				order = append(order, j)
			}
			start = i + 1
		}
	}
	return order
}

type timedMessage struct {
	tick uint32
	off  bool
	msg  []byte
}

type hit struct {
	tick     uint32
	duration uint32
	key      uint8
	velocity uint8
}

// Build converts the sheet into an in-memory SMF with a conductor track and
// a drum track.
func Build(s *sheet.Sheet, opts Options) (*smf.SMF, error) {
	if s == nil || len(s.Measures) == 0 {
		return nil, sheet.ErrNoMeasures
	}
	opts = opts.withDefaults()
	tpq := float64(opts.TicksPerQuarter)

	var conductor []timedMessage
	var hits []hit

	conductor = append(conductor, timedMessage{tick: 0, msg: smf.MetaTrackSequenceName(s.Title)})
	if s.Artist != "" {
		conductor = append(conductor, timedMessage{tick: 0, msg: smf.MetaText(s.Artist)})
	}
	tempo := s.Tempo
	if tempo <= 0 {
		tempo = sheet.DefaultTempo
	}
	conductor = append(conductor, timedMessage{tick: 0, msg: smf.MetaTempo(float64(tempo))})

	var (
		cursor float64
		lastTS sheet.TimeSignature
	)
	for _, idx := range PlaybackOrder(s) {
		m := s.Measures[idx]
		ts := m.TimeSignature
		if ts.Beats <= 0 || ts.NoteValue <= 0 {
			return nil, fmt.Errorf("measure %d has invalid time signature %d/%d", idx+1, ts.Beats, ts.NoteValue)
		}
		if ts != lastTS {
			conductor = append(conductor, timedMessage{
				tick: toTicks(cursor),
				msg:  smf.MetaMeter(uint8(ts.Beats), uint8(ts.NoteValue)),
			})
			lastTS = ts
		}

		beatTicks := tpq * 4 / float64(ts.NoteValue)
		for _, n := range m.Notes {
			key := KeyFor(n)
			if key == 0 {
				logger.Warnf("MIDI: skipping note with unknown part %q", n.Part)
				continue
			}
			hits = append(hits, hit{
				tick:     toTicks(cursor + n.Beat*beatTicks),
				duration: toTicks(float64(n.Value) * 4 * tpq),
				key:      key,
				velocity: opts.VelocityFor(n),
			})
		}
		cursor += float64(ts.Beats) * beatTicks
	}
	end := toTicks(cursor)

	file := smf.New()
	file.TimeFormat = smf.MetricTicks(opts.TicksPerQuarter)
	if err := file.Add(toTrack(conductor, end)); err != nil {
		return nil, fmt.Errorf("add conductor track: %w", err)
	}
	if err := file.Add(toTrack(drumMessages(hits), end)); err != nil {
		return nil, fmt.Errorf("add drum track: %w", err)
	}
	logger.DebugTagf("midi", "MIDI: built %d hits over %d ticks", len(hits), end)
	return file, nil
}

func toTicks(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(math.Round(v))
}

// drumMessages turns hits into note on/off pairs. A hit is cut short when
// the same key sounds again before it would end.
func drumMessages(hits []hit) []timedMessage {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].tick < hits[j].tick })

	next := make(map[uint8]uint32)
	durations := make([]uint32, len(hits))
	for i := len(hits) - 1; i >= 0; i-- {
		h := hits[i]
		d := h.duration
		if n, ok := next[h.key]; ok && n > h.tick && n-h.tick < d {
			d = n - h.tick
		}
		if d == 0 {
			d = 1
		}
		durations[i] = d
		next[h.key] = h.tick
	}

	out := make([]timedMessage, 0, len(hits)*2)
	for i, h := range hits {
		out = append(out,
			timedMessage{tick: h.tick, msg: midi.NoteOn(DrumChannel, h.key, h.velocity)},
			timedMessage{tick: h.tick + durations[i], off: true, msg: midi.NoteOff(DrumChannel, h.key)},
		)
	}
	return out
}

// toTrack sorts messages by tick, note-offs first, and converts to deltas.
func toTrack(msgs []timedMessage, end uint32) smf.Track {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	var last uint32
	for _, m := range msgs {
		tr.Add(m.tick-last, m.msg)
		last = m.tick
	}
	if end < last {
		end = last
	}
	tr.Close(end - last)
	return tr
}

// Export writes the sheet as a Standard MIDI File to w.
func Export(w io.Writer, s *sheet.Sheet, opts Options) error {
	file, err := Build(s, opts)
	if err != nil {
		return err
	}
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write midi: %w", err)
	}
	return nil
}

// ExportFile writes the sheet as a Standard MIDI File at path.
func ExportFile(path string, s *sheet.Sheet, opts Options) error {
	var buf bytes.Buffer
	if err := Export(&buf, s, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write midi file '%s': %w", path, err)
	}
	logger.Infof("MIDI: exported %q to %s", s.Title, path)
	return nil
}
