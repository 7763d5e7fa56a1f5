package config

const (
	// MaxPageNameLength is the maximum length for page and folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxPageNameLength = 255

	// MaxImportFiles caps the listing size of a single import run.
	MaxImportFiles = 10000

	// MaxFetchedContentBytes caps the content fetched for one imported page.
	MaxFetchedContentBytes = 5 << 20
)
