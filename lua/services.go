package lua

// FormService exposes the invitation slots.
type FormService interface {
	SetField(field, value string) error
	GetField(field string) (string, error)
}

// AssetService manages backgrounds and fonts.
type AssetService interface {
	RegisterAsset(name, path string)
	AssetNames() []string
	RegisterFont(family, path string) error
}

// SystemService handles output location and logging.
type SystemService interface {
	SetOutputDir(dir string)
	Log(msg string)
}

// Host bundles every service.
type Host interface {
	FormService
	AssetService
	SystemService
}
