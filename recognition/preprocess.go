package recognition

import (
	"image"
	"log"

	"gocv.io/x/gocv"
)

// CanonicalFaceSize is the classifier's uniform input dimension.
const CanonicalFaceSize = 200

const (
	claheClipLimit = 2.0
	claheTileGrid  = 8
)

// Augmentation variants applied at enrollment.
const (
	augmentIdentity = iota
	augmentBrighten
	augmentDarken
	augmentBlur

	// EnrollmentAugmentations is how many variants feed one enrollment.
	EnrollmentAugmentations = 3
)

// preprocessFace normalizes a cropped grayscale face region into the canonical
// descriptor-ready form: fixed size, contrast-equalized, denoised. Any step
// failure degrades to a plain resize; this never fails outright.
func preprocessFace(face gocv.Mat) gocv.Mat {
	resized := gocv.NewMat()
	gocv.Resize(face, &resized, image.Pt(CanonicalFaceSize, CanonicalFaceSize), 0, 0, gocv.InterpolationLinear)

	equalized := gocv.NewMat()
	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileGrid, claheTileGrid))
	clahe.Apply(resized, &equalized)
	clahe.Close()
	if equalized.Empty() {
		log.Println("preprocess: contrast equalization produced empty output, falling back to plain resize")
		equalized.Close()
		return resized
	}

	blurred := gocv.NewMat()
	gocv.GaussianBlur(equalized, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)
	equalized.Close()
	if blurred.Empty() {
		log.Println("preprocess: denoise produced empty output, falling back to plain resize")
		blurred.Close()
		return resized
	}

	resized.Close()
	return blurred
}

// augmentFace produces a synthetic variant of a canonical sample. Variant 0 is
// the sample unchanged; unknown variants also return the sample unchanged.
func augmentFace(face gocv.Mat, variation int) gocv.Mat {
	switch variation {
	case augmentBrighten:
		brightened := gocv.NewMat()
		face.ConvertToWithParams(&brightened, gocv.MatTypeCV8U, 1.2, 10)
		return brightened
	case augmentDarken:
		darkened := gocv.NewMat()
		face.ConvertToWithParams(&darkened, gocv.MatTypeCV8U, 0.8, -10)
		return darkened
	case augmentBlur:
		blurred := gocv.NewMat()
		gocv.GaussianBlur(face, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault)
		return blurred
	default:
		return face.Clone()
	}
}

// meanIntensity returns the mean pixel value of a grayscale frame.
func meanIntensity(gray gocv.Mat) float64 {
	return gray.Mean().Val1
}
