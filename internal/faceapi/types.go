package faceapi

import "errors"

// Landmark keys the sample-point resolver depends on. The detection
// service reports many more; unknown keys stay in the map and are ignored.
const (
	LandmarkEyebrowLeftInner  = "eyebrowLeftInner"
	LandmarkEyebrowRightInner = "eyebrowRightInner"
	LandmarkEyeLeftBottom     = "eyeLeftBottom"
	LandmarkEyeRightBottom    = "eyeRightBottom"
)

// Point is a pixel coordinate in the source image's coordinate space
// (origin top-left, x right, y down). Landmark coordinates may be
// fractional.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle is the bounding box of a detected face. The resolver uses
// only its height, to derive proportional offsets.
type Rectangle struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Landmarks maps named anatomical reference points to image coordinates.
// A map (rather than a fixed struct) tolerates extra keys from the
// service and makes absent keys detectable.
type Landmarks map[string]Point

// Face is a single detection result.
type Face struct {
	FaceID        string    `json:"faceId"`
	FaceRectangle Rectangle `json:"faceRectangle"`
	FaceLandmarks Landmarks `json:"faceLandmarks"`
}

// ErrNoFaces means the detection response contained zero faces.
var ErrNoFaces = errors.New("no faces in detection response")

// FaceSelector picks the face of interest out of a detection response.
type FaceSelector func(faces []Face) (Face, error)

// SelectFirst is the default selection policy: the first face the
// service reports. Multi-face images are a documented simplification,
// not an accident, so the policy lives here where it can be swapped.
func SelectFirst(faces []Face) (Face, error) {
	if len(faces) == 0 {
		return Face{}, ErrNoFaces
	}
	return faces[0], nil
}
