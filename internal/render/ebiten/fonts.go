package ebiten

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/daruma/internal/render"
)

// Font is a loaded face source and whether it covers Japanese.
type Font struct {
	Name      string
	Source    *text.GoTextFaceSource
	Localized bool
}

// FontLoader is one attempt in a font fallback chain.
type FontLoader struct {
	Name      string
	Localized bool
	Load      func() (*text.GoTextFaceSource, error)
}

var (
	// ErrNoJapaneseGlyphs is returned for a font file that cannot draw kana.
	ErrNoJapaneseGlyphs = errors.New("font has no Japanese glyphs")

	errEmptyCollection = errors.New("empty font collection")
)

// kanaSample must map to a real glyph for a font to count as localized.
const kanaSample = 'あ'

// FileFont loads a TrueType/OpenType font or the first face of a collection
// from disk. Files without Japanese glyphs fail with ErrNoJapaneseGlyphs so
// the chain moves on.
func FileFont(path string) FontLoader {
	return FontLoader{
		Name:      path,
		Localized: true,
		Load: func() (*text.GoTextFaceSource, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			collection := isCollection(path)
			if err := checkJapanese(data, collection); err != nil {
				return nil, err
			}
			if !collection {
				return text.NewGoTextFaceSource(bytes.NewReader(data))
			}
			sources, err := text.NewGoTextFaceSourcesFromCollection(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			if len(sources) == 0 {
				return nil, errEmptyCollection
			}
			return sources[0], nil
		},
	}
}

func isCollection(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		return true
	}
	return false
}

// checkJapanese looks kanaSample up in the cmap of the face that will be used.
func checkJapanese(data []byte, collection bool) error {
	var face *font.Face
	if collection {
		faces, err := font.ParseTTC(bytes.NewReader(data))
		if err != nil {
			return err
		}
		if len(faces) == 0 {
			return errEmptyCollection
		}
		face = faces[0]
	} else {
		f, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return err
		}
		face = f
	}

	if gid, ok := face.NominalGlyph(kanaSample); !ok || gid == 0 {
		return ErrNoJapaneseGlyphs
	}
	return nil
}

// EmbeddedFont is the Go Regular face compiled into the binary. It has no
// Japanese glyphs.
func EmbeddedFont() FontLoader {
	return FontLoader{
		Name:      "Go Regular (embedded)",
		Localized: false,
		Load: func() (*text.GoTextFaceSource, error) {
			return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		},
	}
}

// LoadFont tries each loader in order and returns the first that succeeds.
func LoadFont(logger *slog.Logger, loaders ...FontLoader) (*Font, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, l := range loaders {
		src, err := l.Load()
		if err != nil {
			logger.Debug("font unavailable", "font", l.Name, "error", err)
			continue
		}
		if !l.Localized {
			logger.Warn("no Japanese font found, using fallback", "font", l.Name)
		} else {
			logger.Info("font loaded", "font", l.Name)
		}
		return &Font{Name: l.Name, Source: src, Localized: l.Localized}, nil
	}
	return nil, render.ErrNoFont
}

// FontChain builds the usual chain: each candidate file, then the embedded font.
func FontChain(candidates []string) []FontLoader {
	loaders := make([]FontLoader, 0, len(candidates)+1)
	for _, path := range candidates {
		loaders = append(loaders, FileFont(path))
	}
	return append(loaders, EmbeddedFont())
}
