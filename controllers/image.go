package controllers

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jortiz-dev/inmuebles_api/config"
	"github.com/jortiz-dev/inmuebles_api/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxUploadBytes bounds the in-memory portion of a multipart parse; the
// original service capped uploads at 50 MB.
const maxUploadBytes = 50 << 20

type UploadResponse struct {
	ImageIDs []primitive.ObjectID `json:"image_ids"`
	Message  string               `json:"message"`
}

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImages stores each file of the multipart field "imagenes" as a
// blob in the archivos collection, then links the generated ids to the
// property with a single $push/$each. The two writes are not transactional:
// a failure after the inserts leaves orphaned blobs, and linking to a
// non-existent property matches zero documents without error.
func UploadImages(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Printf("Failed to parse multipart form: %v", err)
			writeError(w, http.StatusBadRequest, "No se enviaron imágenes")
			return
		}

		files := r.MultipartForm.File["imagenes"]
		if len(files) == 0 {
			writeError(w, http.StatusBadRequest, "No se enviaron imágenes")
			return
		}

		imageIDs := make([]primitive.ObjectID, 0, len(files))
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				log.Printf("Failed to open uploaded file %s: %v", fileHeader.Filename, err)
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				log.Printf("Failed to read uploaded file %s: %v", fileHeader.Filename, err)
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}

			blob := models.ImageFile{
				ID:          primitive.NewObjectID(),
				Content:     content,
				Name:        fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				UploadDate:  time.Now(),
			}

			if _, err := config.FileCollection.InsertOne(r.Context(), blob); err != nil {
				log.Printf("Failed to store image %s: %v", fileHeader.Filename, err)
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			imageIDs = append(imageIDs, blob.ID)
		}

		update := bson.M{"$push": bson.M{"image_ids": bson.M{"$each": imageIDs}}}
		if _, err := config.PropertyCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, update); err != nil {
			log.Printf("Failed to link images to property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		go invalidateListingCache(redisClient)

		writeJSON(w, http.StatusCreated, UploadResponse{
			ImageIDs: imageIDs,
			Message:  "Imágenes subidas correctamente",
		})
	}
}

// GetImage answers with a ready-to-render data URI rather than the raw
// bytes; clients embed the string directly in an <img> src.
func GetImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(imageID)
		if err != nil {
			log.Printf("Invalid image ID %s: %v", imageID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var blob models.ImageFile
		err = config.FileCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&blob)
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "Imagen no encontrada")
			return
		}
		if err != nil {
			log.Printf("Error fetching image %s: %v", imageID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, ImageResponse{ImageURL: dataURI(blob.ContentType, blob.Content)})
	}
}

func dataURI(contentType string, content []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(content)
}
