package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/mhrbek/facetone/internal/faceapi"
)

// testFace is a detection fixture with a 200px tall face rectangle and
// a couple of extra landmarks the resolver must ignore.
func testFace() faceapi.Face {
	return faceapi.Face{
		FaceID: "test-face",
		FaceRectangle: faceapi.Rectangle{
			Top: 40, Left: 60, Width: 180, Height: 200,
		},
		FaceLandmarks: faceapi.Landmarks{
			faceapi.LandmarkEyebrowLeftInner:  {X: 100, Y: 80},
			faceapi.LandmarkEyebrowRightInner: {X: 140, Y: 80},
			faceapi.LandmarkEyeLeftBottom:     {X: 150, Y: 110},
			faceapi.LandmarkEyeRightBottom:    {X: 90, Y: 110},
			"noseTip":                         {X: 120, Y: 130},
			"mouthLeft":                       {X: 100, Y: 160},
		},
	}
}

func TestFaceHeightFraction(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		expected float64
	}{
		{name: "zero percent", percent: 0, expected: 0},
		{name: "full height", percent: 100, expected: 200},
		{name: "forehead lift", percent: 12, expected: 24},
		{name: "half height", percent: 50, expected: 100},
	}

	r := DefaultResolver()
	face := testFace()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.FaceHeightFraction(tt.percent, face)
			if err != nil {
				t.Fatalf("FaceHeightFraction(%v) returned error: %v", tt.percent, err)
			}
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("FaceHeightFraction(%v) = %v, want %v", tt.percent, result, tt.expected)
			}
		})
	}
}

func TestFaceHeightFraction_MissingRectangle(t *testing.T) {
	face := testFace()
	face.FaceRectangle = faceapi.Rectangle{}

	_, err := DefaultResolver().FaceHeightFraction(12, face)
	if err == nil {
		t.Fatal("expected error for missing face rectangle")
	}

	var missing MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDataError, got %T: %v", err, err)
	}
	if missing.Field != "faceRectangle.height" {
		t.Errorf("expected field 'faceRectangle.height', got %q", missing.Field)
	}
}

func TestForehead(t *testing.T) {
	pt, err := DefaultResolver().Forehead(testFace())
	if err != nil {
		t.Fatalf("Forehead failed: %v", err)
	}

	// Midpoint of (100,80) and (140,80), lifted by 12% of 200.
	if math.Abs(pt.X-120) > 0.0001 || math.Abs(pt.Y-56) > 0.0001 {
		t.Errorf("Forehead = (%v, %v), want (120, 56)", pt.X, pt.Y)
	}
}

func TestForehead_AboveBrowMidpoint(t *testing.T) {
	face := testFace()
	pt, err := DefaultResolver().Forehead(face)
	if err != nil {
		t.Fatalf("Forehead failed: %v", err)
	}

	browMidY := (face.FaceLandmarks[faceapi.LandmarkEyebrowLeftInner].Y +
		face.FaceLandmarks[faceapi.LandmarkEyebrowRightInner].Y) / 2
	if pt.Y >= browMidY {
		t.Errorf("forehead y %v should be strictly above brow midpoint y %v", pt.Y, browMidY)
	}
}

func TestForehead_MissingLandmark(t *testing.T) {
	face := testFace()
	delete(face.FaceLandmarks, faceapi.LandmarkEyebrowRightInner)

	_, err := DefaultResolver().Forehead(face)
	if err == nil {
		t.Fatal("expected error for missing landmark")
	}

	var missing MissingLandmarkError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingLandmarkError, got %T: %v", err, err)
	}
	if missing.Key != faceapi.LandmarkEyebrowRightInner {
		t.Errorf("expected missing key %q, got %q", faceapi.LandmarkEyebrowRightInner, missing.Key)
	}
}

func TestCheek(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		expectedX float64
		expectedY float64
	}{
		{
			name:      "right cheek below right eye",
			key:       faceapi.LandmarkEyeRightBottom,
			expectedX: 90,
			expectedY: 140, // 110 + 15% of 200
		},
		{
			name:      "left cheek below left eye",
			key:       faceapi.LandmarkEyeLeftBottom,
			expectedX: 150,
			expectedY: 140,
		},
	}

	r := DefaultResolver()
	face := testFace()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := r.Cheek(face, tt.key)
			if err != nil {
				t.Fatalf("Cheek(%s) failed: %v", tt.key, err)
			}
			if math.Abs(pt.X-tt.expectedX) > 0.0001 || math.Abs(pt.Y-tt.expectedY) > 0.0001 {
				t.Errorf("Cheek(%s) = (%v, %v), want (%v, %v)", tt.key, pt.X, pt.Y, tt.expectedX, tt.expectedY)
			}
		})
	}
}

func TestCheek_MissingLandmark(t *testing.T) {
	face := testFace()
	delete(face.FaceLandmarks, faceapi.LandmarkEyeLeftBottom)

	_, err := DefaultResolver().Cheek(face, faceapi.LandmarkEyeLeftBottom)

	var missing MissingLandmarkError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingLandmarkError, got %T: %v", err, err)
	}
	if missing.Key != faceapi.LandmarkEyeLeftBottom {
		t.Errorf("expected missing key %q, got %q", faceapi.LandmarkEyeLeftBottom, missing.Key)
	}
}

func TestSamplePoints(t *testing.T) {
	points, err := DefaultResolver().SamplePoints(testFace())
	if err != nil {
		t.Fatalf("SamplePoints failed: %v", err)
	}

	if len(points) != 3 {
		t.Fatalf("expected exactly 3 sample points, got %d", len(points))
	}

	// Order: forehead, right cheek, left cheek.
	expected := []faceapi.Point{
		{X: 120, Y: 56},
		{X: 90, Y: 140},
		{X: 150, Y: 140},
	}
	for i, want := range expected {
		if math.Abs(points[i].X-want.X) > 0.0001 || math.Abs(points[i].Y-want.Y) > 0.0001 {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, points[i].X, points[i].Y, want.X, want.Y)
		}
	}
}

func TestSamplePoints_MissingLandmark(t *testing.T) {
	face := testFace()
	delete(face.FaceLandmarks, faceapi.LandmarkEyeRightBottom)

	points, err := DefaultResolver().SamplePoints(face)
	if err == nil {
		t.Fatal("expected error for missing landmark")
	}
	if points != nil {
		t.Errorf("expected no partial points, got %v", points)
	}
}

func TestNewResolver_CustomOffsets(t *testing.T) {
	r := NewResolver(10, 20)
	face := testFace()

	forehead, err := r.Forehead(face)
	if err != nil {
		t.Fatalf("Forehead failed: %v", err)
	}
	if math.Abs(forehead.Y-60) > 0.0001 { // 80 - 10% of 200
		t.Errorf("forehead y = %v, want 60", forehead.Y)
	}

	cheek, err := r.Cheek(face, faceapi.LandmarkEyeRightBottom)
	if err != nil {
		t.Fatalf("Cheek failed: %v", err)
	}
	if math.Abs(cheek.Y-150) > 0.0001 { // 110 + 20% of 200
		t.Errorf("cheek y = %v, want 150", cheek.Y)
	}
}
