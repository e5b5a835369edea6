package imaging

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// convertDICOMToPNG renders the first frame of a DICOM file as PNG so the
// vision model, which only accepts standard image formats, can analyze it.
func convertDICOMToPNG(data []byte) ([]byte, error) {
	dataset, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("parse dicom: %w", err)
	}

	pixelDataElement, err := dataset.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("dicom file has no pixel data: %w", err)
	}

	pixelDataInfo := dicom.MustGetPixelDataInfo(pixelDataElement.Value)
	if len(pixelDataInfo.Frames) == 0 {
		return nil, fmt.Errorf("dicom file contains no image frames")
	}

	img, err := pixelDataInfo.Frames[0].GetImage()
	if err != nil {
		return nil, fmt.Errorf("decode dicom frame: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
