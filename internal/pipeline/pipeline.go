// Package pipeline sequences one skin-tone estimation run: scratch
// space, image fetch, decode, face detection, sample-point resolution,
// pixel sampling, HSL averaging. Stages run strictly in order — the
// decoded image and the detection result must both exist before any
// sampling happens — and the first failure ends the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/mhrbek/facetone/internal/config"
	"github.com/mhrbek/facetone/internal/faceapi"
	"github.com/mhrbek/facetone/internal/geometry"
	"github.com/mhrbek/facetone/internal/sampler"
	"github.com/mhrbek/facetone/internal/tone"
)

// Detector is the face-landmark capability the pipeline needs. The real
// implementation is faceapi.Client; tests use synthetic fixtures.
type Detector interface {
	Detect(ctx context.Context, imageURL string) ([]faceapi.Face, error)
}

// Pipeline runs skin-tone estimations. Concurrent Estimate calls are
// safe: every run owns its own scratch file, decoded buffer and
// detection result.
type Pipeline struct {
	detector   Detector
	selectFace faceapi.FaceSelector
	resolver   geometry.Resolver
	hueMean    tone.HueMean
	scratchDir string
	fetch      *http.Client
}

// Option tweaks pipeline construction.
type Option func(*Pipeline)

// WithFaceSelector overrides the default first-face selection policy.
func WithFaceSelector(sel faceapi.FaceSelector) Option {
	return func(p *Pipeline) { p.selectFace = sel }
}

// New builds a pipeline from the loaded configuration.
func New(detector Detector, cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		detector:   detector,
		selectFace: faceapi.SelectFirst,
		resolver:   geometry.NewResolver(cfg.Sampling.ForeheadLiftPct, cfg.Sampling.CheekDropPct),
		hueMean:    tone.ParseHueMean(cfg.Sampling.HueMean),
		scratchDir: cfg.Scratch.Dir,
		fetch: &http.Client{
			Timeout: time.Duration(cfg.Scratch.FetchTimeoutSeconds) * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// run holds the state owned by a single estimation. Nothing here is
// shared between runs; the decoded buffer is discarded when the run ends.
type run struct {
	imageURL  string
	localPath string
	img       image.Image
	face      faceapi.Face
}

// Estimate runs the full pipeline for one image URL and returns the
// averaged skin tone, or the first stage failure. Scratch files are
// left behind for the caller to clean up.
func (p *Pipeline) Estimate(ctx context.Context, imageURL string) (tone.HSL, error) {
	r := &run{imageURL: imageURL}

	if err := p.ensureScratch(); err != nil {
		return tone.HSL{}, stageErr(StageScratch, err)
	}
	if err := p.fetchImage(ctx, r); err != nil {
		return tone.HSL{}, stageErr(StageFetch, err)
	}
	if err := p.decodeImage(r); err != nil {
		return tone.HSL{}, stageErr(StageDecode, err)
	}
	if err := p.detectFace(ctx, r); err != nil {
		return tone.HSL{}, stageErr(StageDetect, err)
	}

	points, err := p.resolver.SamplePoints(r.face)
	if err != nil {
		return tone.HSL{}, stageErr(StageResolve, err)
	}

	// Three in-memory pixel reads; sequenced to keep the forehead,
	// right cheek, left cheek order deterministic.
	colors := make([]tone.HSL, 0, len(points))
	for _, pt := range points {
		c, err := sampler.At(r.img, pt)
		if err != nil {
			return tone.HSL{}, stageErr(StageSample, err)
		}
		colors = append(colors, tone.FromRGB(c))
	}

	avg, err := tone.AverageWith(colors, p.hueMean)
	if err != nil {
		return tone.HSL{}, stageErr(StageAverage, err)
	}
	return avg, nil
}

// ensureScratch creates the scratch directory, succeeding if it already
// exists.
func (p *Pipeline) ensureScratch() error {
	if err := os.MkdirAll(p.scratchDir, 0750); err != nil {
		return fmt.Errorf("could not create scratch directory: %w", err)
	}
	return nil
}

// fetchImage streams the source image into a uniquely named scratch file.
func (p *Pipeline) fetchImage(ctx context.Context, r *run) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.imageURL, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	resp, err := p.fetch.Do(req)
	if err != nil {
		return fmt.Errorf("could not fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image fetch failed with status %d", resp.StatusCode)
	}

	r.localPath = filepath.Join(p.scratchDir, uuid.NewString()+scratchExt(r.imageURL))
	f, err := os.Create(r.localPath)
	if err != nil {
		return fmt.Errorf("could not create scratch file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("could not write scratch file: %w", err)
	}
	return nil
}

// scratchExt keeps the URL's file extension on the scratch copy so the
// directory stays inspectable; decoding sniffs the real format anyway.
func scratchExt(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ".img"
	}
	if ext := path.Ext(u.Path); ext != "" && len(ext) <= 6 {
		return ext
	}
	return ".img"
}

// decodeImage reads the fetched scratch file into a pixel-addressable
// buffer. jpeg/png come from the standard library, bmp/webp from
// golang.org/x/image via side-effect imports.
func (p *Pipeline) decodeImage(r *run) error {
	f, err := os.Open(r.localPath)
	if err != nil {
		return fmt.Errorf("could not open scratch file: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}
	r.img = img
	return nil
}

// detectFace queries the remote service with the original source URL
// (not the scratch copy — landmark coordinates must be in the source
// image's coordinate space) and applies the face selection policy.
func (p *Pipeline) detectFace(ctx context.Context, r *run) error {
	faces, err := p.detector.Detect(ctx, r.imageURL)
	if err != nil {
		return fmt.Errorf("face detection failed: %w", err)
	}

	face, err := p.selectFace(faces)
	if err != nil {
		if errors.Is(err, faceapi.ErrNoFaces) {
			return ErrNoFaceDetected
		}
		return err
	}
	r.face = face
	return nil
}
