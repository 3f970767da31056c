package geometry

import (
	"fmt"

	"github.com/mhrbek/facetone/internal/faceapi"
)

// Default offsets as a percentage of the detected face height. 12%
// places the forehead sample above the brow ridge but below the
// hairline; 15% puts the cheek samples on the flat of the cheek.
const (
	DefaultForeheadLiftPct = 12
	DefaultCheekDropPct    = 15
)

// Resolver derives skin sample points from face landmarks. All offsets
// are percentages of the face rectangle height so the geometry scales
// with the size of the face in the image, not a fixed pixel count.
type Resolver struct {
	ForeheadLiftPct float64
	CheekDropPct    float64
}

func NewResolver(foreheadLiftPct, cheekDropPct float64) Resolver {
	return Resolver{ForeheadLiftPct: foreheadLiftPct, CheekDropPct: cheekDropPct}
}

func DefaultResolver() Resolver {
	return NewResolver(DefaultForeheadLiftPct, DefaultCheekDropPct)
}

// MissingDataError reports a detection result without a usable face rectangle.
type MissingDataError struct {
	Field string
}

func (e MissingDataError) Error() string {
	return fmt.Sprintf("face detection result is missing %s", e.Field)
}

// MissingLandmarkError names a landmark the resolver needs but the
// detection response did not contain.
type MissingLandmarkError struct {
	Key string
}

func (e MissingLandmarkError) Error() string {
	return fmt.Sprintf("missing landmark %q in detection response", e.Key)
}

// FaceHeightFraction returns percent% of the detected face height.
func (r Resolver) FaceHeightFraction(percent float64, face faceapi.Face) (float64, error) {
	if face.FaceRectangle.Height <= 0 {
		return 0, MissingDataError{Field: "faceRectangle.height"}
	}
	return face.FaceRectangle.Height / 100 * percent, nil
}

func (r Resolver) landmark(face faceapi.Face, key string) (faceapi.Point, error) {
	pt, ok := face.FaceLandmarks[key]
	if !ok {
		return faceapi.Point{}, MissingLandmarkError{Key: key}
	}
	return pt, nil
}

// Forehead returns the midpoint of the two inner eyebrow landmarks with
// y shifted upward. The inner eyebrows are the most stable forehead
// reference across poses.
func (r Resolver) Forehead(face faceapi.Face) (faceapi.Point, error) {
	left, err := r.landmark(face, faceapi.LandmarkEyebrowLeftInner)
	if err != nil {
		return faceapi.Point{}, err
	}
	right, err := r.landmark(face, faceapi.LandmarkEyebrowRightInner)
	if err != nil {
		return faceapi.Point{}, err
	}
	lift, err := r.FaceHeightFraction(r.ForeheadLiftPct, face)
	if err != nil {
		return faceapi.Point{}, err
	}
	return faceapi.Point{
		X: (left.X + right.X) / 2,
		Y: (left.Y+right.Y)/2 - lift,
	}, nil
}

// Cheek returns a point directly below the given eye-bottom landmark.
// Pass LandmarkEyeLeftBottom for the left cheek, LandmarkEyeRightBottom
// for the right.
func (r Resolver) Cheek(face faceapi.Face, eyeBottomKey string) (faceapi.Point, error) {
	eye, err := r.landmark(face, eyeBottomKey)
	if err != nil {
		return faceapi.Point{}, err
	}
	drop, err := r.FaceHeightFraction(r.CheekDropPct, face)
	if err != nil {
		return faceapi.Point{}, err
	}
	return faceapi.Point{X: eye.X, Y: eye.Y + drop}, nil
}

// SamplePoints resolves the three skin sample points in order:
// forehead, right cheek, left cheek. Coordinates may be fractional;
// rounding is the sampler's job.
func (r Resolver) SamplePoints(face faceapi.Face) ([]faceapi.Point, error) {
	forehead, err := r.Forehead(face)
	if err != nil {
		return nil, err
	}
	rightCheek, err := r.Cheek(face, faceapi.LandmarkEyeRightBottom)
	if err != nil {
		return nil, err
	}
	leftCheek, err := r.Cheek(face, faceapi.LandmarkEyeLeftBottom)
	if err != nil {
		return nil, err
	}
	return []faceapi.Point{forehead, rightCheek, leftCheek}, nil
}
