// Package sound plays short generated effects on gopxl/beep. Effects are
// drawn from a shuffle bag so the same pop never plays twice in a row until
// the bag is exhausted.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate effects are generated at.
const SampleRate = beep.SampleRate(44100)

// PopDuration is the length of a pop.
const PopDuration = 120 * time.Millisecond

// Sound makes a fresh streamer each time it is played.
type Sound func() beep.Streamer

// Sink accepts streamers for playback.
type Sink interface {
	Play(s beep.Streamer)
}

// popGenerator is a sine whose pitch falls off exponentially under a fast
// decay envelope.
type popGenerator struct {
	sr    beep.SampleRate
	freq  float64
	phase float64
	pos   int
}

func newPopGenerator(sr beep.SampleRate, freq float64) *popGenerator {
	return &popGenerator{sr: sr, freq: freq}
}

func (g *popGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		f := g.freq * (0.5 + 0.5*math.Exp(-t*30))
		env := math.Exp(-t * 25)
		if g.pos < g.sr.N(2*time.Millisecond) {
			env *= float64(g.pos) / float64(g.sr.N(2*time.Millisecond))
		}

		v := env * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = v
		samples[i][1] = v

		g.phase += f / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *popGenerator) Err() error { return nil }

// Pop returns a pop at freq Hz scaled to volume (0..1).
func Pop(freq, volume float64) Sound {
	return func() beep.Streamer {
		s := beep.Take(SampleRate.N(PopDuration), newPopGenerator(SampleRate, freq))
		return withVolume(s, volume)
	}
}

// PopSounds returns the three pops the demo plays on reveal.
func PopSounds(volume float64) []Sound {
	return []Sound{
		Pop(440, volume),
		Pop(587.33, volume),
		Pop(783.99, volume),
	}
}

// math.Log2(0) is -Inf, so zero volume is mapped to silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Pool plays one of its sounds at random without repeats until every sound
// has played once.
type Pool struct {
	sink   Sink
	rng    *rand.Rand
	sounds []Sound
	bag    []int
}

// NewPool returns a pool playing into sink. A nil rng uses a time seed.
func NewPool(sink Sink, rng *rand.Rand, sounds ...Sound) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pool{sink: sink, rng: rng, sounds: sounds}
}

// Len returns the number of sounds in the pool.
func (p *Pool) Len() int { return len(p.sounds) }

// Play draws the next sound from the bag and plays it, refilling the bag
// when it runs empty. It returns the index of the sound, or -1 for an empty
// pool.
func (p *Pool) Play() int {
	if len(p.sounds) == 0 {
		return -1
	}
	if len(p.bag) == 0 {
		p.refill()
	}
	i := p.bag[len(p.bag)-1]
	p.bag = p.bag[:len(p.bag)-1]
	p.sink.Play(p.sounds[i]())
	return i
}

func (p *Pool) refill() {
	for i := range p.sounds {
		p.bag = append(p.bag, i)
	}
	p.rng.Shuffle(len(p.bag), func(i, j int) {
		p.bag[i], p.bag[j] = p.bag[j], p.bag[i]
	})
}

// SpeakerSink mixes streamers into the system speaker.
type SpeakerSink struct {
	mixer *beep.Mixer
}

// NewSpeakerSink initializes the speaker with a 100ms buffer and starts an
// empty mixer on it. The speaker can only be initialized once per process.
func NewSpeakerSink() (*SpeakerSink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &SpeakerSink{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play implements Sink.
func (s *SpeakerSink) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Silent is a Sink that drops everything. It stands in when no audio device
// is available or audio is disabled.
type Silent struct{}

// Play implements Sink.
func (Silent) Play(beep.Streamer) {}
