package stores

import "sync"

// Player defaults
const (
	DefaultVolume       = 0.8
	DefaultPlaybackRate = 1.0
)

// PlayerState is a copy of the player fields; CurrentItemID "" means none
type PlayerState struct {
	CurrentItemID string  `json:"currentItemId"`
	IsPlaying     bool    `json:"isPlaying"`
	Volume        float64 `json:"volume"`
	IsMuted       bool    `json:"isMuted"`
	PlaybackRate  float64 `json:"playbackRate"`
}

func defaultPlayer() PlayerState {
	return PlayerState{Volume: DefaultVolume, PlaybackRate: DefaultPlaybackRate}
}

// Player is transient playback state; it is never persisted
type Player struct {
	mu sync.Mutex
	st PlayerState
}

// NewPlayer returns a Player at defaults
func NewPlayer() *Player { return &Player{st: defaultPlayer()} }

// State returns a copy of the current state
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// SetCurrentItem selects an item; selecting starts playback, clearing stops it
func (p *Player) SetCurrentItem(id string) {
	p.mu.Lock()
	p.st.CurrentItemID = id
	p.st.IsPlaying = id != ""
	p.mu.Unlock()
}

// SetPlaying sets playback explicitly
func (p *Player) SetPlaying(on bool) {
	p.mu.Lock()
	p.st.IsPlaying = on
	p.mu.Unlock()
}

// TogglePlayPause flips playback
func (p *Player) TogglePlayPause() {
	p.mu.Lock()
	p.st.IsPlaying = !p.st.IsPlaying
	p.mu.Unlock()
}

// SetVolume clamps v to [0,1]; zero mutes, anything else unmutes
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.st.Volume = min(max(v, 0), 1)
	p.st.IsMuted = v == 0
	p.mu.Unlock()
}

// SetMuted sets mute without touching the volume
func (p *Player) SetMuted(on bool) {
	p.mu.Lock()
	p.st.IsMuted = on
	p.mu.Unlock()
}

// ToggleMute flips mute
func (p *Player) ToggleMute() {
	p.mu.Lock()
	p.st.IsMuted = !p.st.IsMuted
	p.mu.Unlock()
}

// SetPlaybackRate sets the rate as given
func (p *Player) SetPlaybackRate(r float64) {
	p.mu.Lock()
	p.st.PlaybackRate = r
	p.mu.Unlock()
}

// Reset restores defaults
func (p *Player) Reset() {
	p.mu.Lock()
	p.st = defaultPlayer()
	p.mu.Unlock()
}
