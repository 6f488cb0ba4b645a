// Package recognition stages an uploaded photograph, classifies it once, and
// decides whether the result identifies a known site.
package recognition

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/corona10/goimagehash"
	"github.com/google/uuid"

	"github.com/JaimeStill/heritage/internal/classifier"
	"github.com/JaimeStill/heritage/internal/predictions"
)

// Upload is a photograph submitted for recognition.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Recorder persists recognition outcomes.
type Recorder interface {
	Record(ctx context.Context, cmd predictions.RecordCommand) (*predictions.Prediction, error)
}

// System recognizes cultural sites in uploaded photographs.
type System interface {
	Recognize(ctx context.Context, upload Upload) (*Decision, error)
}

type system struct {
	model    *classifier.Model
	gate     Gate
	recorder Recorder
	tempDir  string
	logger   *slog.Logger
}

// New creates a recognition System. Uploads are staged under tempDir,
// or the OS temp directory when empty.
func New(model *classifier.Model, gate Gate, recorder Recorder, tempDir string, logger *slog.Logger) System {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &system{
		model:    model,
		gate:     gate,
		recorder: recorder,
		tempDir:  tempDir,
		logger:   logger.With("system", "recognition"),
	}
}

// Recognize stages the upload in a uniquely named file, classifies it exactly once,
// and removes the file on every path out.
func (s *system) Recognize(ctx context.Context, upload Upload) (*Decision, error) {
	path, err := s.stage(upload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer s.remove(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer f.Close()

	img, err := s.model.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	dist, err := s.model.Classify(ctx, img)
	if err != nil {
		s.logger.Error("classification failed", "filename", upload.Filename, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	d := s.gate.Decide(dist, s.model.Labels())
	d.ImageHash = fingerprint(img)

	s.logger.Info("upload classified",
		"filename", upload.Filename,
		"known", d.Known,
		"label", d.Label,
		"confidence", d.Confidence,
	)

	s.record(ctx, upload.Filename, d)
	return &d, nil
}

func (s *system) stage(upload Upload) (string, error) {
	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.tempDir, uuid.NewString()+extension(upload.Filename))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, upload.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *system) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("temp upload not removed", "path", path, "error", err)
	}
}

func (s *system) record(ctx context.Context, filename string, d Decision) {
	if s.recorder == nil {
		return
	}

	cmd := predictions.RecordCommand{
		Confidence: d.Confidence,
		Known:      d.Known,
		Filename:   filename,
		ImageHash:  d.ImageHash,
	}
	if d.Known {
		cmd.Label = &d.Label
	}

	if _, err := s.recorder.Record(ctx, cmd); err != nil {
		if errors.Is(err, predictions.ErrDisabled) {
			return
		}
		s.logger.Warn("prediction not recorded", "error", err)
	}
}

// extension keeps a short, alphanumeric file extension from the client filename.
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func fingerprint(img image.Image) string {
	h, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return ""
	}
	return h.ToString()
}
