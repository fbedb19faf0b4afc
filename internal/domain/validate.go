package domain

import (
	"highwayMonitor/pkg/e"
	"highwayMonitor/pkg/validator"
)

// Validate checks coordinates, description and the attached image.
func (r CreateIncidentRequest) Validate() error {
	if err := validator.ValidateStruct(r); err != nil {
		return err
	}
	return r.Image.Validate()
}

// Validate applies the evidence rules shared by create and add-image.
func (u ImageUpload) Validate() error {
	if len(u.Data) == 0 {
		return e.Invalid("image", "must not be empty")
	}
	if len(u.Data) > MaxImageBytes {
		return e.Invalid("image", "exceeds 5MB limit")
	}
	if _, ok := ImageExtension(u.MimeType); !ok {
		return e.Invalid("image", "only JPEG, PNG, GIF and WebP images are allowed")
	}
	return nil
}
