package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/renderer"

	"go.uber.org/zap"
)

// Loader fetches and decodes an asset without blocking the caller. Exactly one
// of onSuccess or onError runs, once, on a later turn of the host loop.
type Loader interface {
	Load(url string, onSuccess func(*renderer.Node), onError func(error))
}

// Dispatcher runs fn on the host thread between frames.
type Dispatcher interface {
	Post(fn func())
}

var (
	ErrHTTPStatus        = errors.New("unexpected HTTP status")
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// AssetLoader loads glTF (.gltf, .glb) and Wavefront OBJ assets from local
// paths, file:// URLs or http(s) URLs.
type AssetLoader struct {
	Client  *http.Client
	Timeout time.Duration

	dispatch Dispatcher
}

// NewAssetLoader returns a loader whose continuations are posted to dispatch.
// With a nil dispatch continuations run on the loading goroutine.
func NewAssetLoader(dispatch Dispatcher) *AssetLoader {
	return &AssetLoader{
		Client:   http.DefaultClient,
		Timeout:  60 * time.Second,
		dispatch: dispatch,
	}
}

func (l *AssetLoader) Load(url string, onSuccess func(*renderer.Node), onError func(error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), l.Timeout)
		defer cancel()

		start := time.Now()
		node, err := l.LoadSync(ctx, url)
		if err != nil {
			logger.Log.Debug("Asset fetch or decode failed", zap.String("url", url), zap.Error(err))
		} else {
			logger.Log.Info("Asset loaded", zap.String("url", url), zap.Duration("took", time.Since(start)))
		}

		l.post(func() {
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			onSuccess(node)
		})
	}()
}

func (l *AssetLoader) post(fn func()) {
	if l.dispatch == nil {
		fn()
		return
	}
	l.dispatch.Post(fn)
}

// LoadSync fetches and decodes the asset at location on the calling goroutine.
func (l *AssetLoader) LoadSync(ctx context.Context, location string) (*renderer.Node, error) {
	data, fsys, name, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".obj":
		return DecodeOBJ(bytes.NewReader(data), name)
	case ".gltf", ".glb", "":
		return DecodeGLTF(bytes.NewReader(data), fsys, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// open returns the main file contents and a file system rooted at its
// directory, used to resolve relative references (buffers).
func (l *AssetLoader) open(ctx context.Context, location string) ([]byte, fs.FS, string, error) {
	u, err := url.Parse(location)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		hfs := &httpFS{ctx: ctx, client: l.Client, base: u}
		data, err := hfs.fetch(u)
		if err != nil {
			return nil, nil, "", err
		}
		return data, hfs, path.Base(u.Path), nil
	}

	p := location
	if err == nil && u.Scheme == "file" {
		p = u.Path
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read asset: %w", err)
	}
	return data, os.DirFS(filepath.Dir(p)), filepath.Base(p), nil
}
