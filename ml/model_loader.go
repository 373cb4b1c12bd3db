package ml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	BMIModelFile      = "bmi_model.json"
	BodyFatModelFile  = "bodyfat_model.json"
	BodyFatScalerFile = "bodyfat_scaler.json"

	BMIFeatureWidth     = 3
	BodyFatFeatureWidth = 14
)

var ErrModelLoad = errors.New("load model artifact")

// Bundle holds the three loaded models. It is never mutated after
// construction and is safe to share between requests.
type Bundle struct {
	bmiClassifier    Classifier
	bodyFatRegressor Regressor
	bodyFatScaler    Transformer
}

func NewBundle(bmi Classifier, bodyFat Regressor, scaler Transformer) *Bundle {
	return &Bundle{
		bmiClassifier:    bmi,
		bodyFatRegressor: bodyFat,
		bodyFatScaler:    scaler,
	}
}

func (b *Bundle) BMIClassifier() Classifier {
	if b == nil {
		return nil
	}
	return b.bmiClassifier
}

func (b *Bundle) BodyFatRegressor() Regressor {
	if b == nil {
		return nil
	}
	return b.bodyFatRegressor
}

func (b *Bundle) BodyFatScaler() Transformer {
	if b == nil {
		return nil
	}
	return b.bodyFatScaler
}

type ArtifactStatus struct {
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
}

func (b *Bundle) Status() []ArtifactStatus {
	return []ArtifactStatus{
		{Name: BMIModelFile, Loaded: b.BMIClassifier() != nil},
		{Name: BodyFatModelFile, Loaded: b.BodyFatRegressor() != nil},
		{Name: BodyFatScalerFile, Loaded: b.BodyFatScaler() != nil},
	}
}

// LoadModels reads all three artifacts from fsys. If any of them fails, the
// returned bundle is empty and the error lists every failure; it is never nil.
func LoadModels(fsys fs.FS) (*Bundle, error) {
	var errs error

	bmi, err := loadArtifact(fsys, BMIModelFile, BMIFeatureWidth, DecodeClassifier)
	errs = multierr.Append(errs, err)
	bodyFat, err := loadArtifact(fsys, BodyFatModelFile, BodyFatFeatureWidth, DecodeRegressor)
	errs = multierr.Append(errs, err)
	scaler, err := loadArtifact(fsys, BodyFatScalerFile, BodyFatFeatureWidth, DecodeTransformer)
	errs = multierr.Append(errs, err)

	if errs != nil {
		return &Bundle{}, errs
	}
	return NewBundle(bmi, bodyFat, scaler), nil
}

func loadArtifact[T any](fsys fs.FS, name string, width int, decode func([]byte, int) (T, error)) (T, error) {
	var zero T
	payload, err := fs.ReadFile(fsys, name)
	if err != nil {
		return zero, fmt.Errorf("%w %s: %w", ErrModelLoad, name, err)
	}
	model, err := decode(payload, width)
	if err != nil {
		return zero, fmt.Errorf("%w %s: %w", ErrModelLoad, name, err)
	}
	return model, nil
}

// Loader loads the bundle at most once and hands out the cached result
// afterwards, including a cached failure.
type Loader struct {
	fsys   fs.FS
	source string
	logger *zap.Logger

	once   sync.Once
	bundle *Bundle
	err    error
}

func NewLoader(dir string, logger *zap.Logger) *Loader {
	return NewLoaderFS(os.DirFS(dir), dir, logger)
}

func NewLoaderFS(fsys fs.FS, source string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, source: source, logger: logger}
}

func (l *Loader) Load() (*Bundle, error) {
	l.once.Do(func() {
		l.bundle, l.err = LoadModels(l.fsys)
		if l.err != nil {
			for _, err := range multierr.Errors(l.err) {
				l.logger.Error("model artifact unavailable",
					zap.String("source", l.source),
					zap.Error(err))
			}
			return
		}
		l.logger.Info("models loaded", zap.String("source", l.source))
	})
	return l.bundle, l.err
}
