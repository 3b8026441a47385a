package storage

// Loader reads the persisted profile document
type Loader interface {
	Load() (*Document, error)
}

// Store defines the interface for profile storage
type Store interface {
	Loader
	Save(doc *Document) error
	SetProfile(name, apiKey string) error
	DeleteProfile(name string) error
	ListProfileNames() ([]string, error)
	Path() string
}
