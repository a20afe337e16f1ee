package gallery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "image/gif"
	_ "image/png"
)

const (
	uploadDir = "static/gallerypic"
	thumbDir  = "static/gallerypic/thumb"
	maxUpload = 10 << 20
)

var allowedExts = []string{".jpg", ".jpeg", ".png", ".gif"}

func isExtensionAllowed(ext string) bool {
	for _, a := range allowedExts {
		if ext == a {
			return true
		}
	}
	return false
}

// Upload stores an admin-provided gallery image plus a 400px-wide
// thumbnail and records it in the gallery collection.
func Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext) {
		utils.RespondWithError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxUpload))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	name := uuid.NewString() + ext
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to prepare upload dir")
		return
	}
	if err := os.WriteFile(filepath.Join(uploadDir, name), buf, 0o644); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	thumbName, err := writeThumbnail(img, name)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save thumbnail")
		return
	}

	entry := models.GalleryImage{
		ImageID:   uuid.NewString(),
		Caption:   strings.TrimSpace(r.FormValue("caption")),
		FileName:  name,
		ThumbName: thumbName,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.GalleryCollection.InsertOne(ctx, entry); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "image": entry})
}

func writeThumbnail(img image.Image, baseFilename string) (string, error) {
	resized := imaging.Resize(img, 400, 0, imaging.Lanczos) // maintain aspect ratio
	name := strings.TrimSuffix(baseFilename, filepath.Ext(baseFilename)) + ".jpg"
	path := filepath.Join(thumbDir, name)

	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", thumbDir, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return name, nil
}

// List returns all gallery images, newest first. Public.
func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.GalleryCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.GalleryImage
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"images": list})
}

// Delete removes a gallery image record and its files. Admin only.
func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	imageID := ps.ByName("id")
	if imageID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var entry models.GalleryImage
	if err := db.GalleryCollection.FindOneAndDelete(ctx, bson.M{"imageid": imageID}).Decode(&entry); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "image not found")
		return
	}

	_ = os.Remove(filepath.Join(uploadDir, entry.FileName))
	_ = os.Remove(filepath.Join(thumbDir, entry.ThumbName))

	w.WriteHeader(http.StatusNoContent)
}
