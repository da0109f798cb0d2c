package studio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func NewDownloader(dir string, logger *zap.Logger) (*Downloader, error) {
	d := &Downloader{
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}

	if dir == "" {
		return d, nil
	}

	if fs, err := newFs(dir); err != nil {
		return nil, fmt.Errorf("create downloader failed: %w", err)
	} else {
		d.fs = fs
	}

	return d, nil
}

// Downloader fetches source images over HTTP and can keep the originals in
// a local directory so re-runs don't re-download.
type Downloader struct {
	fs  afero.Fs
	cli *resty.Client
	log *zap.Logger
}

// Filename derives a local name from the URL path.
func (d *Downloader) Filename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return path.Base(u.Path)
}

func (d *Downloader) Exists(rawURL string) (bool, error) {
	if d.fs == nil {
		return false, nil
	}
	return afero.Exists(d.fs, d.Filename(rawURL))
}

// Fetch returns the raw bytes of the image at rawURL, preferring the saved
// original when one exists.
func (d *Downloader) Fetch(rawURL string) ([]byte, error) {
	if d.fs != nil {
		file := d.Filename(rawURL)
		if exists, err := afero.Exists(d.fs, file); err != nil {
			return nil, err
		} else if exists {
			return afero.ReadFile(d.fs, file)
		}
	}

	resp, err := d.cli.R().Get(rawURL)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", rawURL))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save keeps the original bytes, re-fetching when bs is empty.
func (d *Downloader) Save(rawURL string, bs []byte) error {
	if d.fs == nil {
		return errors.New("no originals dir configured")
	}

	file := d.Filename(rawURL)

	if exists, err := afero.Exists(d.fs, file); err != nil {
		return err
	} else if exists {
		return errors.New("already saved")
	}

	if len(bs) == 0 {
		var err error
		bs, err = d.Fetch(rawURL)
		if err != nil {
			return fmt.Errorf("re-download failed: %w", err)
		}
	}

	if err := afero.WriteFile(d.fs, file, bs, 0644); err != nil {
		return err
	}

	d.log.With(zap.String("url", rawURL)).Debug("original saved")
	return nil
}
