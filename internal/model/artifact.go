package model

import (
	"encoding/json"
	"os"

	"github.com/yanun0323/errors"
)

// ArtifactVersion is the current on-disk artifact format version.
const ArtifactVersion = 1

// FeatureCols is the fitted column order every artifact must declare.
var FeatureCols = [2]string{"spread_pct", "imbalance"}

// Artifact is the serialized form of a fitted linear model.
type Artifact struct {
	Version      int       `json:"version"`
	Instrument   string    `json:"instrument"`
	FeatureCols  []string  `json:"feature_cols"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// NewArtifact wraps a fitted model for serialization.
func NewArtifact(instrument string, m Linear) Artifact {
	return Artifact{
		Version:      ArtifactVersion,
		Instrument:   instrument,
		FeatureCols:  FeatureCols[:],
		Intercept:    m.Intercept,
		Coefficients: m.Coef[:],
	}
}

// Validate rejects artifacts from a different format version or fitted on a
// different feature shape.
func (a Artifact) Validate() error {
	if a.Version != ArtifactVersion {
		return errors.Errorf("unsupported artifact version: %d", a.Version)
	}
	if a.Instrument == "" {
		return errors.New("artifact instrument is empty")
	}
	if len(a.FeatureCols) != len(FeatureCols) {
		return errors.Errorf("unexpected feature columns: %v", a.FeatureCols)
	}
	for i, col := range FeatureCols {
		if a.FeatureCols[i] != col {
			return errors.Errorf("feature column %d is %q, want %q", i, a.FeatureCols[i], col)
		}
	}
	if len(a.Coefficients) != len(FeatureCols) {
		return errors.Errorf("unexpected coefficient count: %d", len(a.Coefficients))
	}
	return nil
}

// Model returns the regressor described by the artifact.
func (a Artifact) Model() Linear {
	var m Linear
	m.Intercept = a.Intercept
	copy(m.Coef[:], a.Coefficients)
	return m
}

// LoadArtifact reads and validates one model artifact file.
func LoadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "read artifact %s", path)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, errors.Wrapf(err, "decode artifact %s", path)
	}
	if err := a.Validate(); err != nil {
		return Artifact{}, errors.Wrapf(err, "validate artifact %s", path)
	}
	return a, nil
}

// SaveArtifact writes one model artifact file.
func SaveArtifact(path string, a Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode artifact")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "write artifact %s", path)
	}
	return nil
}
