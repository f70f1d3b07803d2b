package handlers

import (
	"io"
	"net/http"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/media"
	"github.com/labstack/echo/v4"
)

type MediaHandler struct {
	media *media.Service
}

func NewMediaHandler(mediaSvc *media.Service) *MediaHandler {
	return &MediaHandler{media: mediaSvc}
}

type updateMediaRequest struct {
	FileName *string `json:"fileName" validate:"omitempty,max=255"`
	AltText  *string `json:"altText" validate:"omitempty,max=255"`
	FolderID *string `json:"folderId"`
}

type createFolderRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	ParentID *string `json:"parentId"`
}

func (h *MediaHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperr.BadRequest("multipart form required")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return apperr.BadRequest("at least one file is required")
	}

	files := make([]media.UploadFile, 0, len(fileHeaders))
	altTexts := form.Value["altTexts"]
	for i, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return apperr.BadRequest("unreadable file in upload")
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return apperr.BadRequest("unreadable file in upload")
		}

		file := media.UploadFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		}
		if i < len(altTexts) {
			file.AltText = altTexts[i]
		}
		files = append(files, file)
	}

	items, err := h.media.Upload(c.Request().Context(), files, optionalString(c.FormValue("folderId")))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "files uploaded", items)
}

func (h *MediaHandler) List(c echo.Context) error {
	result, err := h.media.List(media.ListParams{
		FolderID: optionalString(c.QueryParam("folderId")),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "media retrieved", page{
		Items: result.Items, Total: result.Total, Page: result.Page, Limit: result.Limit,
	})
}

func (h *MediaHandler) Get(c echo.Context) error {
	item, err := h.media.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "media retrieved", item)
}

func (h *MediaHandler) Update(c echo.Context) error {
	var req updateMediaRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.media.Update(c.Param("id"), media.MediaUpdate{
		FileName: req.FileName,
		AltText:  req.AltText,
		FolderID: req.FolderID,
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "media updated", item)
}

func (h *MediaHandler) Delete(c echo.Context) error {
	if err := h.media.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "media deleted", nil)
}

func (h *MediaHandler) DeleteMany(c echo.Context) error {
	var req idsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deleted, err := h.media.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "media deleted", map[string]int64{"deleted": deleted})
}

func (h *MediaHandler) ListFolders(c echo.Context) error {
	folders, err := h.media.ListFolders()
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "folders retrieved", folders)
}

func (h *MediaHandler) CreateFolder(c echo.Context) error {
	var req createFolderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	folder, err := h.media.CreateFolder(req.Name, req.ParentID)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "folder created", folder)
}

func (h *MediaHandler) DeleteFolder(c echo.Context) error {
	if err := h.media.DeleteFolder(c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "folder deleted", nil)
}
