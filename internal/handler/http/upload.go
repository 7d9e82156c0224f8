package http

import (
	"io/fs"
	"net/http"
	"os"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// SignedFiles opens locally stored files for links issued by the attachment endpoint.
type SignedFiles interface {
	OpenSigned(key, token string) (*os.File, fs.FileInfo, error)
}

type UploadHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	files SignedFiles
}

func NewUploadHandler(files SignedFiles) UploadHandler {
	return &uploadHandlerImpl{files: files}
}

// Serve streams one file. Directory listings are never produced.
func (h *uploadHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	file, info, err := h.files.OpenSigned(chi.URLParam(r, "*"), r.URL.Query().Get("token"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Cache-Control", "private, no-store")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
