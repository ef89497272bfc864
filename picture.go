package drawing

import (
	"fmt"
	"sync"
)

// PicturePlayer replays a decoded picture onto a canvas.
type PicturePlayer interface {
	Playback(canvas Canvas, rect *Rect)
}

// PictureDecoder turns serialized picture bytes into a player.
type PictureDecoder func(data []byte) (PicturePlayer, error)

var (
	pictureDecoderMu sync.RWMutex
	pictureDecoder   PictureDecoder
)

// RegisterPictureDecoder installs the decoder used by Picture.Playback.
// The recording package registers itself from init.
func RegisterPictureDecoder(dec PictureDecoder) {
	if dec == nil {
		panic("drawing: RegisterPictureDecoder decoder is nil")
	}
	pictureDecoderMu.Lock()
	defer pictureDecoderMu.Unlock()
	pictureDecoder = dec
}

func currentPictureDecoder() PictureDecoder {
	pictureDecoderMu.RLock()
	defer pictureDecoderMu.RUnlock()
	return pictureDecoder
}

// Picture is an opaque, serialized recording.
type Picture struct {
	data []byte

	once   sync.Once
	player PicturePlayer
	err    error
}

// NewPicture wraps serialized recording bytes.
func NewPicture(data []byte) *Picture {
	return &Picture{data: data}
}

// Serialize returns the picture bytes.
func (p *Picture) Serialize() []byte { return p.data }

// DeserializePicture wraps a copy of data.
func DeserializePicture(data []byte) (*Picture, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("drawing: decode picture: %w", ErrEmptyData)
	}
	return NewPicture(append([]byte(nil), data...)), nil
}

// Playback decodes the picture once and replays it onto canvas.
func (p *Picture) Playback(canvas Canvas) error {
	p.once.Do(func() {
		dec := currentPictureDecoder()
		if dec == nil {
			p.err = fmt.Errorf("drawing: no picture decoder registered (forgotten import?)")
			return
		}
		p.player, p.err = dec(p.data)
	})
	if p.err != nil {
		return p.err
	}
	p.player.Playback(canvas, nil)
	return nil
}
