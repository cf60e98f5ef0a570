package assets

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

var audioContext = sync.OnceValue(func() *audio.Context {
	return audio.NewContext(sampleRate)
})

type decodedStream interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Length() int64
}

// LoadLoopingTrack fetches an mp3 or wav asset and returns a player that
// loops it forever. The player is created paused.
func LoadLoopingTrack(ctx context.Context, src Source, name string) (*audio.Player, error) {
	b, err := ReadAll(ctx, src, name)
	if err != nil {
		return nil, err
	}

	actx := audioContext()
	reader := bytes.NewReader(b)

	var stream decodedStream
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(actx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %q: %w", name, err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(actx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", name, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("audio %q: unsupported format", name)
	}

	player, err := actx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("audio %q: new player: %w", name, err)
	}
	return player, nil
}
