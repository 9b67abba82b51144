package commands

type HandlerOpt func(*Handler)

// WithSaveDir confines the files used by save and load to dir.
func WithSaveDir(dir string) HandlerOpt {
	return func(h *Handler) {
		h.saveDir = dir
	}
}

// WithArchive enables the archive and restore handlers.
func WithArchive(a Archive) HandlerOpt {
	return func(h *Handler) {
		h.archive = a
	}
}
