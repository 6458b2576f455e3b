package handlers

// Handler holds the dependencies for the HTTP handlers. LogoDir is the
// only directory logo files may be loaded from; when empty, logo
// requests are rejected.
type Handler struct {
	LogoDir string
}

// New returns a new Handler instance.
func New(logoDir string) *Handler { return &Handler{LogoDir: logoDir} }
