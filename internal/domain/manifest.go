package domain

// SchemaURL identifies the manifest schema version consumed by the
// client renderer. It is emitted verbatim in every generated manifest.
const SchemaURL = "https://stillframe.app/schema/manifest-v1.json"

// Manifest is the document the generator writes and the server publishes.
// Photo order is canonical; the renderer lays photos out in slice order.
type Manifest struct {
	Schema          string       `json:"$schema" validate:"required"`
	Photos          []PhotoEntry `json:"photos" validate:"dive"`
	DownloadArchive string       `json:"downloadArchive,omitempty"`
	HeroEyebrow     string       `json:"heroEyebrow,omitempty"`
	HeroTitle       string       `json:"heroTitle,omitempty"`
	HeroSubtitle    string       `json:"heroSubtitle,omitempty"`
	HeroImage       string       `json:"heroImage,omitempty"`
}
