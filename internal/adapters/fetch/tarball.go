package fetch

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 5 * time.Minute
	stagingPrefix     = ".extract-"
)

// TarballFetcher downloads and unpacks tar archives, optionally gzip compressed.
type TarballFetcher struct {
	httpClient *http.Client
}

// NewTarballFetcher creates a new TarballFetcher.
func NewTarballFetcher() *TarballFetcher {
	return newTarballFetcherWithClient(&http.Client{Timeout: httpClientTimeout})
}

// newTarballFetcherWithClient creates a TarballFetcher with a custom http client (used for testing).
func newTarballFetcherWithClient(client *http.Client) *TarballFetcher {
	return &TarballFetcher{httpClient: client}
}

// Fetch extracts the archive at origin.Location into dest. A single top-level
// directory in the archive is stripped. Archives have no revision.
func (f *TarballFetcher) Fetch(ctx context.Context, origin domain.Origin, dest string) (string, error) {
	body, err := f.open(ctx, origin.Location)
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck // Read-only stream

	if err := extract(body, dest); err != nil {
		return "", zerr.With(err, "url", origin.Location)
	}
	return "", nil
}

func (f *TarballFetcher) open(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid tarball url"), "url", location)
	}

	switch u.Scheme {
	case "file":
		file, err := os.Open(filepath.FromSlash(u.Path))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open tarball"), "url", location)
		}
		return file, nil
	case "http", "https":
		return f.download(ctx, location)
	default:
		return nil, zerr.With(zerr.New("unsupported tarball url scheme"), "url", location)
	}
}

func (f *TarballFetcher) download(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create request"), "url", location)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to download tarball"), "url", location)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		statusErr := zerr.With(zerr.New("unexpected response status"), "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "url", location)
	}

	return resp.Body, nil
}

// extract unpacks r into a staging directory below dest and then promotes its
// contents, stripping a lone top-level directory.
func extract(r io.Reader, dest string) error {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return zerr.Wrap(err, "failed to open gzip stream")
		}
		defer gz.Close() //nolint:errcheck // Read-only stream
		src = gz
	}

	staging, err := os.MkdirTemp(dest, stagingPrefix+"*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", dest)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Best effort cleanup

	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read tarball")
		}
		if err := writeEntry(tr, hdr, staging); err != nil {
			return err
		}
	}

	return promote(staging, dest)
}

func writeEntry(tr *tar.Reader, hdr *tar.Header, staging string) error {
	name, err := safeEntryName(hdr.Name)
	if err != nil {
		return err
	}
	if name == "." {
		return nil
	}
	target := filepath.Join(staging, filepath.FromSlash(name))

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
		}
	case tar.TypeReg:
		return writeRegular(tr, target, hdr.FileInfo().Mode().Perm())
	case tar.TypeSymlink:
		if !symlinkStaysInside(name, hdr.Linkname) {
			return zerr.With(domain.ErrUnsafeArchivePath, "entry", hdr.Name)
		}
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
		}
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create symlink"), "path", target)
		}
	}

	return nil
}

func writeRegular(r io.Reader, target string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", target)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Entry name validated
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", target)
	}
	if _, err := io.Copy(out, r); err != nil { //nolint:gosec // Archive size is bounded by the download
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", target)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", target)
	}
	return nil
}

// safeEntryName cleans an archive entry name and rejects names escaping the archive root.
func safeEntryName(name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	if path.IsAbs(slashed) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", zerr.With(domain.ErrUnsafeArchivePath, "entry", name)
	}

	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", zerr.With(domain.ErrUnsafeArchivePath, "entry", name)
	}
	return cleaned, nil
}

func symlinkStaysInside(name, link string) bool {
	if link == "" || path.IsAbs(link) || filepath.IsAbs(link) {
		return false
	}
	resolved := path.Clean(path.Join(path.Dir(name), filepath.ToSlash(link)))
	return resolved != ".." && !strings.HasPrefix(resolved, "../")
}

func promote(staging, dest string) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read staging directory"), "path", staging)
	}

	root := staging
	if len(entries) == 1 && entries[0].IsDir() {
		root = filepath.Join(staging, entries[0].Name())
		if entries, err = os.ReadDir(root); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read archive root"), "path", root)
		}
	}

	for _, e := range entries {
		from := filepath.Join(root, e.Name())
		to := filepath.Join(dest, e.Name())
		if err := os.Rename(from, to); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to move extracted entry"), "path", to)
		}
	}
	return nil
}
